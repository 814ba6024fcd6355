package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gigsly/gigsly-client/internal/core/ports"
)

// actorFromContext returns the caller injected by the Auth middleware.
// A missing or incomplete actor means the route was wired without Auth.
func actorFromContext(c echo.Context) (ports.Actor, error) {
	actor, ok := c.Get(ports.ActorContextKey).(ports.Actor)
	if !ok || actor.UserID == 0 || actor.Role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

// idParam parses a positive numeric path parameter.
func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
