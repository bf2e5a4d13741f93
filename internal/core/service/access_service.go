package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/taskboard/board-service/internal/core/domain"
	"github.com/taskboard/board-service/internal/core/ports"
)

// roleRule grants role when match holds. Rules are evaluated in order and the
// first match wins; rules with needsWorkspace only run once the board-level
// rules have all failed and the workspace could be loaded.
type roleRule struct {
	name           string
	role           domain.Role
	needsWorkspace bool
	match          func(userID string, b *domain.Board, ws *domain.Workspace) bool
}

var roleRules = []roleRule{
	{
		name: "board_owner",
		role: domain.RoleOwner,
		match: func(userID string, b *domain.Board, _ *domain.Workspace) bool {
			return b.OwnerID == userID
		},
	},
	{
		name: "board_member",
		role: domain.RoleEditor,
		match: func(userID string, b *domain.Board, _ *domain.Workspace) bool {
			return b.IsMember(userID)
		},
	},
	{
		name:           "workspace_owner",
		role:           domain.RoleEditor,
		needsWorkspace: true,
		match: func(userID string, _ *domain.Board, ws *domain.Workspace) bool {
			return ws.OwnerID == userID
		},
	},
	{
		name:           "workspace_member",
		role:           domain.RoleViewer,
		needsWorkspace: true,
		match: func(userID string, _ *domain.Board, ws *domain.Workspace) bool {
			return ws.IsMember(userID)
		},
	},
}

// AccessService resolves board roles. It only reads from the repository.
type AccessService struct {
	repo ports.BoardRepository
	ids  ports.IDValidator
	log  zerolog.Logger
}

// NewAccessService returns an AccessService backed by repo.
func NewAccessService(repo ports.BoardRepository, ids ports.IDValidator, log zerolog.Logger) *AccessService {
	return &AccessService{repo: repo, ids: ids, log: log}
}

// ResolveRole computes userID's effective role on boardID.
func (s *AccessService) ResolveRole(ctx context.Context, boardID, userID string) domain.Decision {
	if !s.ids.Valid(boardID) || !s.ids.Valid(userID) {
		return domain.Deny(domain.ErrInvalidID)
	}

	board, err := s.repo.FindBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, domain.ErrBoardNotFound) {
			return domain.Deny(domain.ErrBoardNotFound)
		}
		s.log.Error().Err(err).Str("board_id", boardID).Str("user_id", userID).Msg("board lookup failed")
		return domain.Deny(domain.ErrLookupFailed)
	}

	var (
		ws       *domain.Workspace
		wsLoaded bool
	)
	for _, rule := range roleRules {
		if rule.needsWorkspace {
			if !wsLoaded {
				ws, err = s.loadWorkspace(ctx, board)
				if err != nil {
					s.log.Error().Err(err).Str("board_id", boardID).Str("user_id", userID).Msg("workspace lookup failed")
					return domain.Decision{Board: board, Err: domain.ErrLookupFailed}
				}
				wsLoaded = true
			}
			if ws == nil {
				break
			}
		}
		if rule.match(userID, board, ws) {
			s.log.Debug().
				Str("board_id", boardID).
				Str("user_id", userID).
				Str("rule", rule.name).
				Str("role", string(rule.role)).
				Msg("board role resolved")
			return domain.Decision{HasAccess: true, Role: rule.role, Board: board}
		}
	}

	return domain.Decision{Board: board, Err: domain.ErrNoAccess}
}

// loadWorkspace returns the board's workspace, or nil when the board has none
// or it no longer exists.
func (s *AccessService) loadWorkspace(ctx context.Context, board *domain.Board) (*domain.Workspace, error) {
	if ws, ok := board.Workspace.Expanded(); ok {
		return ws, nil
	}
	id := board.Workspace.ID()
	if id == "" || !s.ids.Valid(id) {
		return nil, nil
	}
	ws, err := s.repo.FindWorkspace(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrWorkspaceNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ws, nil
}

// ResolveViaBoard is the board-id entry point.
func (s *AccessService) ResolveViaBoard(ctx context.Context, boardID, userID string) domain.Decision {
	return s.ResolveRole(ctx, boardID, userID)
}

// ResolveViaList resolves the role on the board owning listID.
func (s *AccessService) ResolveViaList(ctx context.Context, listID, userID string) domain.Decision {
	if !s.ids.Valid(listID) || !s.ids.Valid(userID) {
		return domain.Deny(domain.ErrInvalidID)
	}

	list, err := s.repo.FindList(ctx, listID)
	if err != nil {
		if errors.Is(err, domain.ErrListNotFound) {
			return domain.Deny(domain.ErrListNotFound)
		}
		s.log.Error().Err(err).Str("list_id", listID).Msg("list lookup failed")
		return domain.Deny(domain.ErrLookupFailed)
	}

	d := s.ResolveRole(ctx, list.Board.ID(), userID)
	d.List = list
	return d
}

// ResolveViaCard resolves the role on the board owning cardID.
func (s *AccessService) ResolveViaCard(ctx context.Context, cardID, userID string) domain.Decision {
	if !s.ids.Valid(cardID) || !s.ids.Valid(userID) {
		return domain.Deny(domain.ErrInvalidID)
	}

	card, err := s.repo.FindCard(ctx, cardID)
	if err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			return domain.Deny(domain.ErrCardNotFound)
		}
		s.log.Error().Err(err).Str("card_id", cardID).Msg("card lookup failed")
		return domain.Deny(domain.ErrLookupFailed)
	}

	d := s.ResolveRole(ctx, card.Board.ID(), userID)
	d.Card = card
	return d
}

// Resolve dispatches to the entry point named by path.
func (s *AccessService) Resolve(ctx context.Context, path domain.AccessPath, id, userID string) domain.Decision {
	switch path {
	case domain.PathList:
		return s.ResolveViaList(ctx, id, userID)
	case domain.PathCard:
		return s.ResolveViaCard(ctx, id, userID)
	default:
		return s.ResolveViaBoard(ctx, id, userID)
	}
}
