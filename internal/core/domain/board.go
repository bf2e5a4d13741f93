package domain

import (
	"fmt"
	"slices"
	"time"
)

// Workspace groups boards and provides a fallback permission tier.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	MemberIDs []string  `json:"member_ids"`
	CreatedAt time.Time `json:"created_at"`
}

func (w Workspace) Identity() string { return w.ID }

// IsMember reports whether userID is in the workspace member set.
func (w *Workspace) IsMember(userID string) bool {
	return slices.Contains(w.MemberIDs, userID)
}

// Board is the unit of sharing and permission scoping.
type Board struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Workspace Ref[Workspace] `json:"-"`
	OwnerID   string         `json:"owner_id"`
	MemberIDs []string       `json:"member_ids"`
	Deleted   bool           `json:"deleted"`
	CreatedAt time.Time      `json:"created_at"`
}

func (b Board) Identity() string { return b.ID }

// IsMember reports whether userID is in the board member set.
func (b *Board) IsMember(userID string) bool {
	return slices.Contains(b.MemberIDs, userID)
}

// List is a column of cards on a board.
type List struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Board    Ref[Board] `json:"-"`
	Position int        `json:"position"`
}

func (l List) Identity() string { return l.ID }

// Card is a task. Board duplicates the owning list's board reference.
type Card struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	List      Ref[List]  `json:"-"`
	Board     Ref[Board] `json:"-"`
	MemberIDs []string   `json:"member_ids"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Completed bool       `json:"completed"`
	Deleted   bool       `json:"deleted"`
}

func (c Card) Identity() string { return c.ID }

// IsMember reports whether userID is assigned to the card.
func (c *Card) IsMember(userID string) bool {
	return slices.Contains(c.MemberIDs, userID)
}

// DueWithin reports whether the card has a due date in [from, to].
func (c *Card) DueWithin(from, to time.Time) bool {
	if c.DueDate == nil {
		return false
	}
	return !c.DueDate.Before(from) && !c.DueDate.After(to)
}

// WorkspaceID returns the workspace of the card's board when the board
// reference has been expanded.
func (c *Card) WorkspaceID() string {
	if b, ok := c.Board.Expanded(); ok {
		return b.Workspace.ID()
	}
	return ""
}

// CheckCardLineage verifies that a card's denormalized board reference
// agrees with the list it belongs to.
func CheckCardLineage(list *List, card *Card) error {
	if card.List.ID() != list.ID {
		return fmt.Errorf("%w: card %s is not in list %s", ErrLineageMismatch, card.ID, list.ID)
	}
	if card.Board.ID() != list.Board.ID() {
		return fmt.Errorf("%w: card %s board %s, list %s board %s",
			ErrLineageMismatch, card.ID, card.Board.ID(), list.ID, list.Board.ID())
	}
	return nil
}
