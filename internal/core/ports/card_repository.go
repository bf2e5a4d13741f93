package ports

import (
	"context"
	"time"

	"github.com/taskboard/board-service/internal/core/domain"
)

// DueCardsFilter selects cards by due date. Both bounds are inclusive.
type DueCardsFilter struct {
	MemberID         string // empty = any member
	From             time.Time
	To               time.Time
	IncludeCompleted bool
}

// CardRepository queries cards for the reminder scanner. Soft-deleted cards
// and cards without a due date are never returned.
type CardRepository interface {
	FindDue(ctx context.Context, filter DueCardsFilter) ([]domain.Card, error)
}
