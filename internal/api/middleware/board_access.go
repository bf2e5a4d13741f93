package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/board-service/internal/core/domain"
	"github.com/taskboard/board-service/internal/core/ports"
	"github.com/taskboard/board-service/internal/pkg/metrics"
)

// ContextKeyDecision holds the domain.Decision resolved by RequireBoardRole.
const ContextKeyDecision = "access_decision"

// RequireBoardRole resolves the caller's role on the board reached through
// path, using the route parameter param as the entry id, and rejects the
// request unless the role satisfies required. Must run after Auth.
func RequireBoardRole(resolver ports.AccessResolver, path domain.AccessPath, param string, required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(ContextKeyUserID).(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			d := resolver.Resolve(c.Request().Context(), path, c.Param(param), userID)
			RecordDecision(path, d)
			c.Set(ContextKeyDecision, d)

			if !d.HasAccess {
				return d.Err
			}
			if !domain.HasPermission(d.Role, required) {
				return domain.ErrInsufficient
			}
			return next(c)
		}
	}
}

// DecisionFrom returns the decision stored by RequireBoardRole.
func DecisionFrom(c echo.Context) (domain.Decision, bool) {
	d, ok := c.Get(ContextKeyDecision).(domain.Decision)
	return d, ok
}

// RecordDecision counts a resolved decision by entry path and outcome.
func RecordDecision(path domain.AccessPath, d domain.Decision) {
	metrics.AccessDecisionsTotal.WithLabelValues(string(path), decisionOutcome(d)).Inc()
}

func decisionOutcome(d domain.Decision) string {
	switch {
	case d.HasAccess:
		return "granted"
	case errors.Is(d.Err, domain.ErrNoAccess):
		return "denied"
	case errors.Is(d.Err, domain.ErrInvalidID):
		return "invalid"
	case domain.IsNotFound(d.Err):
		return "not_found"
	default:
		return "error"
	}
}
