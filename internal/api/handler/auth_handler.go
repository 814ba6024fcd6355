package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /api/auth/signup and returns 201 with a token.
// Duplicate emails map to 409, invalid input to 400.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Signup(c.Request().Context(), toSignupInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

// Login handles POST /api/auth/login. Wrong credentials map to 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Me handles GET /api/auth/me. A token whose user no longer exists is
// answered with 401 so clients drop it.
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /api/users?role=PROFESSIONAL.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	role := domain.ParseRole(c.QueryParam("role"))
	if role == "" {
		role = domain.RoleProfessional
	}

	users, err := h.authService.ListByRole(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(users))
}
