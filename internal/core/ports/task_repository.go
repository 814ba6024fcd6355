package ports

import (
	"context"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// ListTasksFilter carries the optional filters for listing tasks.
type ListTasksFilter struct {
	ClientID               int64  // zero = any client
	AssignedProfessionalID int64  // zero = any professional
	Status                 string // optional
	CategoryID             int64  // zero = any category
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	// Create inserts t and assigns t.ID.
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
}
