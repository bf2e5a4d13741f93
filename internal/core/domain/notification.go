package domain

import "time"

// NotificationType classifies why a notification was sent.
type NotificationType string

const (
	NotificationCardDueSoon NotificationType = "card_due_soon"
)

// Notification is a message addressed to a single user.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	Message     string           `json:"message"`
	WorkspaceID string           `json:"workspace_id,omitempty"`
	BoardID     string           `json:"board_id,omitempty"`
	CardID      string           `json:"card_id,omitempty"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}
