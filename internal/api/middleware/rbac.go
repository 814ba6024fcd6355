package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigsly/gigsly-client/internal/api/metrics"
	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

// RBAC gates a route behind the access rule for action. It must run after
// Auth. Unknown actions deny everyone.
func RBAC(action domain.Action) echo.MiddlewareFunc {
	rule, known := domain.RuleFor(action)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get(ports.ActorContextKey).(ports.Actor)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !known || !rule.Permits(actor.Role) {
				metrics.RBACDenialsTotal.WithLabelValues(string(action)).Inc()
				msg := "forbidden"
				if known {
					msg = rule.Notice.Description
				}
				return echo.NewHTTPError(http.StatusForbidden, msg)
			}
			return next(c)
		}
	}
}
