package ports

import (
	"context"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// AuthAPI is the backend authentication contract consumed by the session
// controller.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Signup(ctx context.Context, input domain.SignupInput) (*domain.AuthResult, error)
	// Me returns the user owning the currently stored token.
	Me(ctx context.Context) (*domain.User, error)
}
