package handler

import (
	"context"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/board-service/internal/api/middleware"
	"github.com/taskboard/board-service/internal/core/domain"
)

type stubResolver struct {
	decisions map[domain.AccessPath]domain.Decision
	gotID     string
}

func (r *stubResolver) ResolveRole(ctx context.Context, boardID, userID string) domain.Decision {
	return r.Resolve(ctx, domain.PathBoard, boardID, userID)
}

func (r *stubResolver) ResolveViaBoard(ctx context.Context, boardID, userID string) domain.Decision {
	return r.Resolve(ctx, domain.PathBoard, boardID, userID)
}

func (r *stubResolver) ResolveViaList(ctx context.Context, listID, userID string) domain.Decision {
	return r.Resolve(ctx, domain.PathList, listID, userID)
}

func (r *stubResolver) ResolveViaCard(ctx context.Context, cardID, userID string) domain.Decision {
	return r.Resolve(ctx, domain.PathCard, cardID, userID)
}

func (r *stubResolver) Resolve(_ context.Context, path domain.AccessPath, id, _ string) domain.Decision {
	r.gotID = id
	return r.decisions[path]
}

type stubReminderService struct {
	dueFn       func(ctx context.Context, userID string, daysAhead int, includeCompleted bool) ([]domain.Card, error)
	immediateFn func(ctx context.Context, cardID string) (bool, error)
	sweepFn     func(ctx context.Context) (domain.SweepResult, error)
}

func (s *stubReminderService) GetCardsDueForUser(ctx context.Context, userID string, daysAhead int, includeCompleted bool) ([]domain.Card, error) {
	return s.dueFn(ctx, userID, daysAhead, includeCompleted)
}

func (s *stubReminderService) CheckDueReminders(ctx context.Context) (domain.SweepResult, error) {
	return s.sweepFn(ctx)
}

func (s *stubReminderService) SendImmediateDueReminder(ctx context.Context, cardID string) (bool, error) {
	return s.immediateFn(ctx, cardID)
}

// RunImmediately lets the stub double as a SweepRunner.
func (s *stubReminderService) RunImmediately(ctx context.Context) (domain.SweepResult, error) {
	return s.sweepFn(ctx)
}

// newRequestContext builds an echo context for target with the caller id set.
func newRequestContext(method, target, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.ContextKeyUserID, userID)
	}
	return c, rec
}
