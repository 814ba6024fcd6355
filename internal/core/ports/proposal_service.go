package ports

import (
	"context"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// ProposalService defines use-case operations for proposals.
type ProposalService interface {
	Submit(ctx context.Context, actor Actor, draft domain.ProposalDraft) (*domain.Proposal, error)
	Mine(ctx context.Context, actor Actor) ([]*domain.Proposal, error)
	ForTask(ctx context.Context, actor Actor, taskID int64) ([]*domain.Proposal, error)
	UpdateStatus(ctx context.Context, actor Actor, proposalID int64, status domain.ProposalStatus) (*domain.Proposal, error)
}
