package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/taskboard/board-service/internal/core/domain"
)

// RequireAccountRole admits callers whose token role is one of allowedRoles.
// It guards operator endpoints; board-level permissions use RequireBoardRole.
func RequireAccountRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
