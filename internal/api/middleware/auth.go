package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gigsly/gigsly-client/internal/core/ports"
	"github.com/gigsly/gigsly-client/internal/core/service"
)

// Auth validates the bearer token and injects the caller as a ports.Actor
// under ports.ActorContextKey.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := service.ParseToken(parts[1], jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			actor, err := claims.Actor()
			if err != nil || !actor.Role.Valid() {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ports.ActorContextKey, actor)
			return next(c)
		}
	}
}
