package ports

import (
	"context"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Create stores user and returns it with its assigned ID.
	// Returns domain.ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
