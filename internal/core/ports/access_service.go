package ports

import (
	"context"

	"github.com/taskboard/board-service/internal/core/domain"
)

// AccessResolver computes a user's effective role on a board through any of
// the three entry points. All expected outcomes are carried in the Decision.
type AccessResolver interface {
	ResolveRole(ctx context.Context, boardID, userID string) domain.Decision
	ResolveViaBoard(ctx context.Context, boardID, userID string) domain.Decision
	ResolveViaList(ctx context.Context, listID, userID string) domain.Decision
	ResolveViaCard(ctx context.Context, cardID, userID string) domain.Decision
	// Resolve dispatches to the entry point named by path.
	Resolve(ctx context.Context, path domain.AccessPath, id, userID string) domain.Decision
}
