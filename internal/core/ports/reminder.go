package ports

import (
	"context"

	"github.com/taskboard/board-service/internal/core/domain"
)

// ReminderLedger records which reminders have already been sent.
// Claim is atomic: of two concurrent claims for the same key only one wins.
type ReminderLedger interface {
	Claim(ctx context.Context, cardID, userID, day string) (bool, error)
	Release(ctx context.Context, cardID, userID, day string) error
}

// ReminderService exposes the due-reminder operations.
type ReminderService interface {
	GetCardsDueForUser(ctx context.Context, userID string, daysAhead int, includeCompleted bool) ([]domain.Card, error)
	CheckDueReminders(ctx context.Context) (domain.SweepResult, error)
	SendImmediateDueReminder(ctx context.Context, cardID string) (bool, error)
}
