package ports

import (
	"context"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// ProposalRepository defines persistence operations for proposals.
type ProposalRepository interface {
	// Create inserts p and assigns p.ID.
	Create(ctx context.Context, p *domain.Proposal) error
	FindByID(ctx context.Context, id int64) (*domain.Proposal, error)
	ListByProfessional(ctx context.Context, professionalID int64) ([]*domain.Proposal, error)
	ListByTask(ctx context.Context, taskID int64) ([]*domain.Proposal, error)
	Exists(ctx context.Context, taskID, professionalID int64) (bool, error)
	Update(ctx context.Context, p *domain.Proposal) error
}
