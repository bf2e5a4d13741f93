package handler

import (
	"time"

	"github.com/taskboard/board-service/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

const defaultDaysAhead = 7

// --- Request types ---

type dueCardsQuery struct {
	DaysAhead        int  `query:"days_ahead"        validate:"min=1,max=30"`
	IncludeCompleted bool `query:"include_completed"`
}

// --- Response types ---

type boardSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	Deleted     bool   `json:"deleted"`
}

type listSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	BoardID string `json:"board_id"`
}

type cardResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	ListID    string     `json:"list_id"`
	BoardID   string     `json:"board_id"`
	MemberIDs []string   `json:"member_ids"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Completed bool       `json:"completed"`
}

type accessResponse struct {
	HasAccess bool          `json:"has_access"`
	Role      string        `json:"role,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Board     *boardSummary `json:"board,omitempty"`
	List      *listSummary  `json:"list,omitempty"`
	Card      *cardResponse `json:"card,omitempty"`
}

type dueCardsResponse struct {
	DaysAhead int            `json:"days_ahead"`
	Count     int            `json:"count"`
	Cards     []cardResponse `json:"cards"`
}

type reminderResponse struct {
	CardID string `json:"card_id"`
	Sent   bool   `json:"sent"`
}

type sweepResponse struct {
	Cards   int `json:"cards"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// --- Domain → Response ---

// toAccessResponse renders a decision. Snapshots are included only when
// access is granted.
func toAccessResponse(d domain.Decision) accessResponse {
	resp := accessResponse{
		HasAccess: d.HasAccess,
		Role:      string(d.Role),
		Reason:    d.Reason(),
	}
	if !d.HasAccess {
		return resp
	}
	if d.Board != nil {
		resp.Board = &boardSummary{
			ID:          d.Board.ID,
			Title:       d.Board.Title,
			WorkspaceID: d.Board.Workspace.ID(),
			Deleted:     d.Board.Deleted,
		}
	}
	if d.List != nil {
		resp.List = &listSummary{ID: d.List.ID, Title: d.List.Title, BoardID: d.List.Board.ID()}
	}
	if d.Card != nil {
		card := toCardResponse(*d.Card)
		resp.Card = &card
	}
	return resp
}

func toCardResponse(c domain.Card) cardResponse {
	members := c.MemberIDs
	if members == nil {
		members = []string{}
	}
	return cardResponse{
		ID:        c.ID,
		Title:     c.Title,
		ListID:    c.List.ID(),
		BoardID:   c.Board.ID(),
		MemberIDs: members,
		DueDate:   c.DueDate,
		Completed: c.Completed,
	}
}

func toCardResponses(cards []domain.Card) []cardResponse {
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	return out
}

func toSweepResponse(r domain.SweepResult) sweepResponse {
	return sweepResponse{Cards: r.Cards, Sent: r.Sent, Skipped: r.Skipped, Failed: r.Failed}
}
