package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/board-service/internal/api/middleware"
	"github.com/taskboard/board-service/internal/core/domain"
	"github.com/taskboard/board-service/internal/core/ports"
)

// AccessHandler reports the caller's effective role on a board, reached
// through a board, list or card id.
type AccessHandler struct {
	resolver ports.AccessResolver
}

func NewAccessHandler(resolver ports.AccessResolver) *AccessHandler {
	return &AccessHandler{resolver: resolver}
}

// Board handles GET /v1/boards/:board_id/access.
//
// @Summary      Resolve the caller's role on a board
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Param        board_id  path      string  true  "Board id"
// @Success      200       {object}  accessResponse
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /v1/boards/{board_id}/access [get]
func (h *AccessHandler) Board(c echo.Context) error {
	return h.resolve(c, domain.PathBoard, "board_id")
}

// List handles GET /v1/lists/:list_id/access.
//
// @Summary      Resolve the caller's role on the board owning a list
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Param        list_id  path      string  true  "List id"
// @Success      200      {object}  accessResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /v1/lists/{list_id}/access [get]
func (h *AccessHandler) List(c echo.Context) error {
	return h.resolve(c, domain.PathList, "list_id")
}

// Card handles GET /v1/cards/:card_id/access.
//
// @Summary      Resolve the caller's role on the board owning a card
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Param        card_id  path      string  true  "Card id"
// @Success      200      {object}  accessResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /v1/cards/{card_id}/access [get]
func (h *AccessHandler) Card(c echo.Context) error {
	return h.resolve(c, domain.PathCard, "card_id")
}

// resolve answers 200 for both a granted and a "no access" decision; other
// denials are errors rendered by the central error handler.
func (h *AccessHandler) resolve(c echo.Context, path domain.AccessPath, param string) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	d := h.resolver.Resolve(c.Request().Context(), path, c.Param(param), userID)
	middleware.RecordDecision(path, d)

	if d.HasAccess || errors.Is(d.Err, domain.ErrNoAccess) {
		return c.JSON(http.StatusOK, toAccessResponse(d))
	}
	return d.Err
}
