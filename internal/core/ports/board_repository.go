package ports

import (
	"context"

	"github.com/taskboard/board-service/internal/core/domain"
)

// BoardRepository resolves board lineage records by id.
// Absent records are reported with the matching domain not-found sentinel.
type BoardRepository interface {
	FindBoard(ctx context.Context, id string) (*domain.Board, error)
	FindList(ctx context.Context, id string) (*domain.List, error)
	FindCard(ctx context.Context, id string) (*domain.Card, error)
	FindWorkspace(ctx context.Context, id string) (*domain.Workspace, error)
}

// IDValidator rejects identifiers that are not in the store's id format.
type IDValidator interface {
	Valid(id string) bool
}
