package ports

import (
	"context"

	"github.com/taskboard/board-service/internal/core/domain"
)

// Notifier delivers a notification to its recipient. An error means the
// notification was not recorded.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// NotificationRepository persists notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
}

// NotificationPublisher pushes a stored notification to connected clients.
type NotificationPublisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}
