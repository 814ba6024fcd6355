package ports

import (
	"context"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// AuthService issues and validates bearer tokens for the dev backend.
type AuthService interface {
	Signup(ctx context.Context, input domain.SignupInput) (*domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Me(ctx context.Context, userID int64) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

// ActorContextKey is the echo.Context key holding the authenticated Actor.
const ActorContextKey = "actor"

// Actor is the authenticated caller as resolved from the bearer token.
type Actor struct {
	UserID int64
	Name   string
	Email  string
	Role   domain.Role
}
