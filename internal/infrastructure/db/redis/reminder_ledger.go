package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLedgerTTL = 48 * time.Hour

// ReminderLedger records sent due-date reminders in Redis.
// Key format: reminder:<card_id>:<user_id>:<yyyy-mm-dd>
type ReminderLedger struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReminderLedger creates a ledger whose entries expire after ttl
// (48h when ttl <= 0).
func NewReminderLedger(client *redis.Client, ttl time.Duration) *ReminderLedger {
	if ttl <= 0 {
		ttl = defaultLedgerTTL
	}
	return &ReminderLedger{client: client, ttl: ttl}
}

// Claim atomically reserves the reminder for (card, user, day). It returns
// false when the reminder was already claimed.
func (l *ReminderLedger) Claim(ctx context.Context, cardID, userID, day string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(cardID, userID, day), time.Now().UTC().Unix(), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reminder claim: %w", err)
	}
	return ok, nil
}

// Release drops a claim so the reminder is retried on a later sweep.
func (l *ReminderLedger) Release(ctx context.Context, cardID, userID, day string) error {
	if err := l.client.Del(ctx, l.key(cardID, userID, day)).Err(); err != nil {
		return fmt.Errorf("reminder release: %w", err)
	}
	return nil
}

func (l *ReminderLedger) key(cardID, userID, day string) string {
	return fmt.Sprintf("reminder:%s:%s:%s", cardID, userID, day)
}
