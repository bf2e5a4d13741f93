package service

import (
	"context"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/board-service/internal/core/domain"
	"github.com/taskboard/board-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

// hexIDs accepts 24-character hex strings, mirroring the ObjectID format.
type hexIDs struct{}

func (hexIDs) Valid(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

type stubBoardRepo struct {
	boards     map[string]*domain.Board
	lists      map[string]*domain.List
	cards      map[string]*domain.Card
	workspaces map[string]*domain.Workspace

	boardErr     error
	workspaceErr error
	cardErr      error

	calls int
}

func newStubBoardRepo() *stubBoardRepo {
	return &stubBoardRepo{
		boards:     make(map[string]*domain.Board),
		lists:      make(map[string]*domain.List),
		cards:      make(map[string]*domain.Card),
		workspaces: make(map[string]*domain.Workspace),
	}
}

func (r *stubBoardRepo) FindBoard(_ context.Context, id string) (*domain.Board, error) {
	r.calls++
	if r.boardErr != nil {
		return nil, r.boardErr
	}
	b, ok := r.boards[id]
	if !ok {
		return nil, domain.ErrBoardNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBoardRepo) FindList(_ context.Context, id string) (*domain.List, error) {
	r.calls++
	l, ok := r.lists[id]
	if !ok {
		return nil, domain.ErrListNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubBoardRepo) FindCard(_ context.Context, id string) (*domain.Card, error) {
	r.calls++
	if r.cardErr != nil {
		return nil, r.cardErr
	}
	c, ok := r.cards[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubBoardRepo) FindWorkspace(_ context.Context, id string) (*domain.Workspace, error) {
	r.calls++
	if r.workspaceErr != nil {
		return nil, r.workspaceErr
	}
	ws, ok := r.workspaces[id]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	clone := *ws
	return &clone, nil
}

// FindDue applies the same predicate the Mongo query uses.
func (r *stubBoardRepo) FindDue(_ context.Context, f ports.DueCardsFilter) ([]domain.Card, error) {
	r.calls++
	if r.cardErr != nil {
		return nil, r.cardErr
	}
	var out []domain.Card
	for _, c := range r.cards {
		if c.Deleted || c.DueDate == nil {
			continue
		}
		if !f.IncludeCompleted && c.Completed {
			continue
		}
		if f.MemberID != "" && !c.IsMember(f.MemberID) {
			continue
		}
		if !c.DueWithin(f.From, f.To) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

type memLedger struct {
	mu       sync.Mutex
	claimed  map[string]bool
	claimErr error
	released []string
}

func newMemLedger() *memLedger {
	return &memLedger{claimed: make(map[string]bool)}
}

func (l *memLedger) Claim(_ context.Context, cardID, userID, day string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.claimErr != nil {
		return false, l.claimErr
	}
	key := cardID + ":" + userID + ":" + day
	if l.claimed[key] {
		return false, nil
	}
	l.claimed[key] = true
	return true, nil
}

func (l *memLedger) Release(ctx context.Context, cardID, userID, day string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	key := cardID + ":" + userID + ":" + day
	delete(l.claimed, key)
	l.released = append(l.released, key)
	return nil
}

type stubNotifier struct {
	sent     []domain.Notification
	attempts []string // card ids, in order
	failFor  map[string]bool
}

var errDispatch = errors.New("dispatch unavailable")

func (n *stubNotifier) Notify(_ context.Context, note domain.Notification) error {
	n.attempts = append(n.attempts, note.CardID)
	if n.failFor[note.CardID] {
		return errDispatch
	}
	n.sent = append(n.sent, note)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const (
	wsID        = "0000000000000000000000a1"
	boardID     = "0000000000000000000000b1"
	listID      = "0000000000000000000000c1"
	cardID      = "0000000000000000000000d1"
	boardOwner  = "00000000000000000000f001"
	boardMember = "00000000000000000000f002"
	wsOwner     = "00000000000000000000f003"
	wsMember    = "00000000000000000000f004"
	outsider    = "00000000000000000000f005"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func seededBoardRepo() *stubBoardRepo {
	repo := newStubBoardRepo()
	repo.workspaces[wsID] = &domain.Workspace{
		ID:        wsID,
		OwnerID:   wsOwner,
		MemberIDs: []string{wsMember, boardOwner, boardMember},
	}
	repo.boards[boardID] = &domain.Board{
		ID:        boardID,
		Title:     "Roadmap",
		Workspace: domain.RefID[domain.Workspace](wsID),
		OwnerID:   boardOwner,
		MemberIDs: []string{boardMember},
	}
	repo.lists[listID] = &domain.List{
		ID:    listID,
		Board: domain.RefID[domain.Board](boardID),
	}
	repo.cards[cardID] = &domain.Card{
		ID:    cardID,
		List:  domain.RefID[domain.List](listID),
		Board: domain.RefID[domain.Board](boardID),
	}
	return repo
}
