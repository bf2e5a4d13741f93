package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/board-service/internal/api/middleware"
)

// ctxUserID extracts the caller id injected by the Auth middleware. An empty
// value means the middleware did not run, so the request is rejected before
// any service call.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextKeyUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
