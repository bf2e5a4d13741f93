package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/board-service/internal/core/domain"
	"github.com/taskboard/board-service/internal/core/ports"
)

// SweepRunner runs one reminder sweep on demand, serialised with the
// scheduled ones.
type SweepRunner interface {
	RunImmediately(ctx context.Context) (domain.SweepResult, error)
}

// ReminderHandler exposes due-card queries and reminder triggers.
type ReminderHandler struct {
	service ports.ReminderService
	sweeper SweepRunner
}

func NewReminderHandler(service ports.ReminderService, sweeper SweepRunner) *ReminderHandler {
	return &ReminderHandler{service: service, sweeper: sweeper}
}

// DueCards handles GET /v1/me/cards/due.
//
// @Summary      List the caller's cards due soon
// @Tags         reminders
// @Produce      json
// @Security     BearerAuth
// @Param        days_ahead         query     int   false  "Window size in days (1-30)"  default(7)
// @Param        include_completed  query     bool  false  "Include completed cards"
// @Success      200                {object}  dueCardsResponse
// @Failure      400                {object}  errorResponse
// @Failure      500                {object}  errorResponse
// @Router       /v1/me/cards/due [get]
func (h *ReminderHandler) DueCards(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	q := dueCardsQuery{DaysAhead: defaultDaysAhead}
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cards, err := h.service.GetCardsDueForUser(c.Request().Context(), userID, q.DaysAhead, q.IncludeCompleted)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dueCardsResponse{
		DaysAhead: q.DaysAhead,
		Count:     len(cards),
		Cards:     toCardResponses(cards),
	})
}

// SendReminder handles POST /v1/cards/:card_id/reminders. The caller must be
// at least EDITOR on the card's board; RequireBoardRole enforces that.
//
// @Summary      Send a due-date reminder for a card now
// @Tags         reminders
// @Produce      json
// @Security     BearerAuth
// @Param        card_id  path      string  true  "Card id"
// @Success      200      {object}  reminderResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /v1/cards/{card_id}/reminders [post]
func (h *ReminderHandler) SendReminder(c echo.Context) error {
	cardID := c.Param("card_id")
	sent, err := h.service.SendImmediateDueReminder(c.Request().Context(), cardID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reminderResponse{CardID: cardID, Sent: sent})
}

// Sweep handles POST /v1/admin/reminders/sweep.
//
// @Summary      Run the due-reminder sweep now
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sweepResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/admin/reminders/sweep [post]
func (h *ReminderHandler) Sweep(c echo.Context) error {
	res, err := h.sweeper.RunImmediately(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweepResponse(res))
}
