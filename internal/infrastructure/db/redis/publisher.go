package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taskboard/board-service/internal/core/domain"
)

// Publisher pushes notifications to per-user Redis channels, where the
// real-time gateway relays them to connected sockets.
// Channel format: notifications:<recipient_id>
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish serialises n and publishes it on the recipient's channel.
func (p *Publisher) Publish(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := p.client.Publish(ctx, Channel(n.RecipientID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Channel returns the pub/sub channel for a user's notifications.
func Channel(userID string) string {
	return "notifications:" + userID
}
