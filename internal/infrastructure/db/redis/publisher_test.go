package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/taskboard/board-service/internal/core/domain"
)

func TestPublisher_PublishesToRecipientChannel(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, Channel("user1"))
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	n := domain.Notification{ID: "n1", RecipientID: "user1", Type: domain.NotificationCardDueSoon, Message: "due"}
	if err := NewPublisher(client).Publish(ctx, n); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var got domain.Notification
		if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if got.ID != "n1" || got.Type != domain.NotificationCardDueSoon {
			t.Errorf("unexpected payload: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}
