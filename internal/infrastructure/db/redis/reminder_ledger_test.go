package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, s
}

func TestReminderLedger_ClaimOnce(t *testing.T) {
	client, _ := newTestClient(t)
	ledger := NewReminderLedger(client, time.Hour)
	ctx := context.Background()

	first, err := ledger.Claim(ctx, "card1", "user1", "2026-03-10")
	if err != nil || !first {
		t.Fatalf("first claim: %v %v", first, err)
	}
	second, err := ledger.Claim(ctx, "card1", "user1", "2026-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if second {
		t.Error("second claim for the same day must fail")
	}

	nextDay, _ := ledger.Claim(ctx, "card1", "user1", "2026-03-11")
	otherUser, _ := ledger.Claim(ctx, "card1", "user2", "2026-03-10")
	if !nextDay || !otherUser {
		t.Errorf("claims are per user and per day: nextDay=%v otherUser=%v", nextDay, otherUser)
	}
}

func TestReminderLedger_Release(t *testing.T) {
	client, _ := newTestClient(t)
	ledger := NewReminderLedger(client, time.Hour)
	ctx := context.Background()

	_, _ = ledger.Claim(ctx, "card1", "user1", "2026-03-10")
	if err := ledger.Release(ctx, "card1", "user1", "2026-03-10"); err != nil {
		t.Fatal(err)
	}
	again, _ := ledger.Claim(ctx, "card1", "user1", "2026-03-10")
	if !again {
		t.Error("released claim must be claimable again")
	}
}

func TestReminderLedger_Expires(t *testing.T) {
	client, s := newTestClient(t)
	ledger := NewReminderLedger(client, time.Hour)
	ctx := context.Background()

	_, _ = ledger.Claim(ctx, "card1", "user1", "2026-03-10")
	if ttl := s.TTL("reminder:card1:user1:2026-03-10"); ttl != time.Hour {
		t.Errorf("expected 1h ttl, got %v", ttl)
	}
	s.FastForward(2 * time.Hour)

	again, _ := ledger.Claim(ctx, "card1", "user1", "2026-03-10")
	if !again {
		t.Error("expired claim must be claimable again")
	}
}

func TestReminderLedger_ConcurrentClaims(t *testing.T) {
	client, _ := newTestClient(t)
	ledger := NewReminderLedger(client, time.Hour)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := ledger.Claim(context.Background(), "card1", "user1", "2026-03-10"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Errorf("exactly one overlapping sweep may win, got %d", wins.Load())
	}
}

func TestReminderLedger_ServerDown(t *testing.T) {
	client, s := newTestClient(t)
	ledger := NewReminderLedger(client, time.Hour)
	s.Close()

	if _, err := ledger.Claim(context.Background(), "card1", "user1", "2026-03-10"); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
}
