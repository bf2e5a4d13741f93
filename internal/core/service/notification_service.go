package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/board-service/internal/core/domain"
	"github.com/taskboard/board-service/internal/core/ports"
)

// NotificationQueue hands stored notifications to the real-time fan-out.
type NotificationQueue interface {
	Enqueue(n domain.Notification)
}

// NotificationService stores notifications and forwards them for live
// delivery. Only the store write is reported to the caller.
type NotificationService struct {
	repo  ports.NotificationRepository
	queue NotificationQueue
	log   zerolog.Logger
}

// NewNotificationService returns a Notifier. queue may be nil when live
// delivery is disabled.
func NewNotificationService(repo ports.NotificationRepository, queue NotificationQueue, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, queue: queue, log: log}
}

// Notify persists n and enqueues it for real-time delivery.
func (s *NotificationService) Notify(ctx context.Context, n domain.Notification) error {
	if n.RecipientID == "" {
		return fmt.Errorf("%w: missing recipient", domain.ErrInvalidInput)
	}
	if err := s.repo.Insert(ctx, &n); err != nil {
		return fmt.Errorf("notify: store: %w", err)
	}

	if s.queue != nil {
		s.queue.Enqueue(n)
	}

	s.log.Debug().
		Str("notification_id", n.ID).
		Str("recipient_id", n.RecipientID).
		Str("type", string(n.Type)).
		Msg("notification created")
	return nil
}
