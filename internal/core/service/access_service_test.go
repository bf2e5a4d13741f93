package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboard/board-service/internal/core/domain"
)

func newAccessSvc(repo *stubBoardRepo) *AccessService {
	return NewAccessService(repo, hexIDs{}, discardLogger)
}

// ---------------------------------------------------------------------------
// Role priority
// ---------------------------------------------------------------------------

func TestResolveRole_Priorities(t *testing.T) {
	cases := []struct {
		name     string
		userID   string
		wantRole domain.Role
		wantErr  error
	}{
		{"board owner who is also workspace member", boardOwner, domain.RoleOwner, nil},
		{"board member who is also workspace member", boardMember, domain.RoleEditor, nil},
		{"workspace owner not on board", wsOwner, domain.RoleEditor, nil},
		{"workspace member", wsMember, domain.RoleViewer, nil},
		{"outsider", outsider, domain.RoleNone, domain.ErrNoAccess},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newAccessSvc(seededBoardRepo())
			d := svc.ResolveRole(context.Background(), boardID, tc.userID)

			if d.Role != tc.wantRole {
				t.Errorf("role: want %q, got %q", tc.wantRole, d.Role)
			}
			if d.HasAccess != (tc.wantErr == nil) {
				t.Errorf("hasAccess: want %v, got %v", tc.wantErr == nil, d.HasAccess)
			}
			if !errors.Is(d.Err, tc.wantErr) {
				t.Errorf("err: want %v, got %v", tc.wantErr, d.Err)
			}
			if d.Board == nil || d.Board.ID != boardID {
				t.Errorf("expected board snapshot, got %+v", d.Board)
			}
		})
	}
}

func TestResolveRole_BoardMemberWithoutWorkspaceMembership(t *testing.T) {
	repo := seededBoardRepo()
	repo.workspaces[wsID].MemberIDs = nil

	d := newAccessSvc(repo).ResolveRole(context.Background(), boardID, boardMember)
	if !d.HasAccess || d.Role != domain.RoleEditor {
		t.Fatalf("board member must resolve to EDITOR regardless of workspace, got %+v", d)
	}
}

func TestResolveRole_BoardRulesDoNotLoadWorkspace(t *testing.T) {
	repo := seededBoardRepo()
	svc := newAccessSvc(repo)

	svc.ResolveRole(context.Background(), boardID, boardOwner)
	if repo.calls != 1 {
		t.Errorf("owner resolution should only read the board, got %d store calls", repo.calls)
	}
}

func TestResolveRole_ExpandedWorkspaceSkipsLookup(t *testing.T) {
	repo := seededBoardRepo()
	ws := *repo.workspaces[wsID]
	repo.boards[boardID].Workspace = domain.RefTo(ws)
	delete(repo.workspaces, wsID)

	d := newAccessSvc(repo).ResolveRole(context.Background(), boardID, wsMember)
	if d.Role != domain.RoleViewer {
		t.Fatalf("expected VIEWER from expanded workspace, got %+v", d)
	}
	if repo.calls != 1 {
		t.Errorf("expected only the board lookup, got %d calls", repo.calls)
	}
}

func TestResolveRole_MissingWorkspaceKeepsBoardRules(t *testing.T) {
	repo := seededBoardRepo()
	delete(repo.workspaces, wsID)
	svc := newAccessSvc(repo)

	if d := svc.ResolveRole(context.Background(), boardID, boardMember); d.Role != domain.RoleEditor {
		t.Errorf("board member: expected EDITOR, got %+v", d)
	}
	d := svc.ResolveRole(context.Background(), boardID, wsOwner)
	if d.HasAccess || !errors.Is(d.Err, domain.ErrNoAccess) {
		t.Errorf("workspace rules must be skipped when workspace is gone, got %+v", d)
	}
}

func TestResolveRole_BoardNotFound(t *testing.T) {
	d := newAccessSvc(seededBoardRepo()).ResolveRole(context.Background(), "0000000000000000000000ff", boardOwner)
	if d.HasAccess || d.Board != nil || d.Reason() != "board not found" {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestResolveRole_InvalidIDsSkipStore(t *testing.T) {
	repo := seededBoardRepo()
	svc := newAccessSvc(repo)

	for _, ids := range [][2]string{{"not-an-id", boardOwner}, {boardID, "nope"}} {
		d := svc.ResolveRole(context.Background(), ids[0], ids[1])
		if d.HasAccess || d.Role != domain.RoleNone || d.Reason() != "invalid id" {
			t.Errorf("ResolveRole(%q, %q): unexpected decision %+v", ids[0], ids[1], d)
		}
	}
	if repo.calls != 0 {
		t.Errorf("invalid ids must not reach the store, got %d calls", repo.calls)
	}
}

func TestResolveRole_LookupFailureFailsClosed(t *testing.T) {
	repo := seededBoardRepo()
	repo.boardErr = errors.New("connection reset")

	d := newAccessSvc(repo).ResolveRole(context.Background(), boardID, boardOwner)
	if d.HasAccess || d.Reason() != "error checking access" {
		t.Fatalf("expected fail-closed decision, got %+v", d)
	}
}

func TestResolveRole_WorkspaceLookupFailureFailsClosed(t *testing.T) {
	repo := seededBoardRepo()
	repo.workspaceErr = errors.New("timeout")
	svc := newAccessSvc(repo)

	d := svc.ResolveRole(context.Background(), boardID, wsMember)
	if d.HasAccess || !errors.Is(d.Err, domain.ErrLookupFailed) {
		t.Fatalf("expected lookup failure, got %+v", d)
	}
	// Board-level rules still answer without touching the workspace.
	if d := svc.ResolveRole(context.Background(), boardID, boardOwner); d.Role != domain.RoleOwner {
		t.Errorf("owner must still resolve, got %+v", d)
	}
}

func TestResolveRole_SoftDeletedBoardStillResolves(t *testing.T) {
	repo := seededBoardRepo()
	repo.boards[boardID].Deleted = true

	d := newAccessSvc(repo).ResolveRole(context.Background(), boardID, boardOwner)
	if d.Role != domain.RoleOwner || !d.Board.Deleted {
		t.Fatalf("soft-deleted board must resolve unchanged, got %+v", d)
	}
}

// ---------------------------------------------------------------------------
// Entry points
// ---------------------------------------------------------------------------

func TestResolve_PathEquivalence(t *testing.T) {
	repo := seededBoardRepo()
	if err := domain.CheckCardLineage(repo.lists[listID], repo.cards[cardID]); err != nil {
		t.Fatalf("fixture violates lineage: %v", err)
	}
	svc := newAccessSvc(repo)
	ctx := context.Background()

	for _, user := range []string{boardOwner, boardMember, wsOwner, wsMember, outsider} {
		viaBoard := svc.ResolveViaBoard(ctx, boardID, user)
		viaList := svc.ResolveViaList(ctx, listID, user)
		viaCard := svc.ResolveViaCard(ctx, cardID, user)

		for name, d := range map[string]domain.Decision{"list": viaList, "card": viaCard} {
			if d.HasAccess != viaBoard.HasAccess || d.Role != viaBoard.Role {
				t.Errorf("user %s via %s: got {%v %q}, board path gave {%v %q}",
					user, name, d.HasAccess, d.Role, viaBoard.HasAccess, viaBoard.Role)
			}
		}
		if viaList.List == nil || viaList.List.ID != listID {
			t.Errorf("list path must return the list snapshot")
		}
		if viaCard.Card == nil || viaCard.Card.ID != cardID {
			t.Errorf("card path must return the card snapshot")
		}
	}
}

func TestResolveViaList_InvalidIDSkipsStore(t *testing.T) {
	repo := seededBoardRepo()
	d := newAccessSvc(repo).ResolveViaList(context.Background(), "not-an-id", boardOwner)

	if d.HasAccess || !errors.Is(d.Err, domain.ErrInvalidID) {
		t.Fatalf("expected invalid id, got %+v", d)
	}
	if repo.calls != 0 {
		t.Errorf("expected zero store queries, got %d", repo.calls)
	}
}

func TestResolveViaList_NotFound(t *testing.T) {
	d := newAccessSvc(seededBoardRepo()).ResolveViaList(context.Background(), "0000000000000000000000cf", boardOwner)
	if d.HasAccess || d.Reason() != "list not found" {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestResolveViaCard_NotFound(t *testing.T) {
	d := newAccessSvc(seededBoardRepo()).ResolveViaCard(context.Background(), "0000000000000000000000df", boardOwner)
	if d.HasAccess || d.Reason() != "card not found" {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestResolveViaCard_LookupFailure(t *testing.T) {
	repo := seededBoardRepo()
	repo.cardErr = errors.New("boom")

	d := newAccessSvc(repo).ResolveViaCard(context.Background(), cardID, boardOwner)
	if d.HasAccess || !errors.Is(d.Err, domain.ErrLookupFailed) {
		t.Fatalf("expected lookup failure, got %+v", d)
	}
}

func TestResolveViaCard_OrphanedBoard(t *testing.T) {
	repo := seededBoardRepo()
	delete(repo.boards, boardID)

	d := newAccessSvc(repo).ResolveViaCard(context.Background(), cardID, boardOwner)
	if !errors.Is(d.Err, domain.ErrBoardNotFound) || d.Card == nil {
		t.Fatalf("expected board not found with card attached, got %+v", d)
	}
}

func TestResolve_DispatchesByPath(t *testing.T) {
	svc := newAccessSvc(seededBoardRepo())
	ctx := context.Background()

	if d := svc.Resolve(ctx, domain.PathList, listID, boardMember); d.List == nil || d.Role != domain.RoleEditor {
		t.Errorf("list path: %+v", d)
	}
	if d := svc.Resolve(ctx, domain.PathCard, cardID, boardMember); d.Card == nil || d.Role != domain.RoleEditor {
		t.Errorf("card path: %+v", d)
	}
	if d := svc.Resolve(ctx, domain.PathBoard, boardID, boardMember); d.Board == nil || d.Role != domain.RoleEditor {
		t.Errorf("board path: %+v", d)
	}
}
