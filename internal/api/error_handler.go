package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/board-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	code, msg, known := classifyError(err)
	if known {
		if errors.Is(err, domain.ErrNotificationFailed) {
			log.Warn().Err(err).Str("path", c.Path()).Msg("reminder dispatch failed")
		}
		return code, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return code, msg
}

// classifyError maps err to a status code and client message. known is false
// for errors that have no mapping and render as a generic 500.
func classifyError(err error) (code int, msg string, known bool) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), true
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidID), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, rootMessage(err), true
	case domain.IsNotFound(err):
		return http.StatusNotFound, rootMessage(err), true
	case errors.Is(err, domain.ErrNoAccess), errors.Is(err, domain.ErrInsufficient):
		return http.StatusForbidden, rootMessage(err), true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", true
	case errors.Is(err, domain.ErrNotificationFailed):
		return http.StatusBadGateway, "notification dispatch failed", true
	}

	return http.StatusInternalServerError, "internal server error", false
}

// statusCode reports the status an error will be rendered with.
func statusCode(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	code, _, _ := classifyError(err)
	return code
}

// rootMessage returns the message of the domain sentinel wrapped by err, so
// wrapping context never reaches the client. Invalid-input errors keep their
// detail.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrInvalidID,
		domain.ErrBoardNotFound,
		domain.ErrListNotFound,
		domain.ErrCardNotFound,
		domain.ErrWorkspaceNotFound,
		domain.ErrNoAccess,
		domain.ErrInsufficient,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
