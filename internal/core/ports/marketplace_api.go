package ports

import (
	"context"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// MarketplaceAPI is the backend contract used by the marketplace pages.
type MarketplaceAPI interface {
	ListTasks(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error)
	MyTasks(ctx context.Context) ([]domain.Task, error)
	PostTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID int64, status domain.TaskStatus) (*domain.Task, error)

	SubmitProposal(ctx context.Context, draft domain.ProposalDraft) (*domain.Proposal, error)
	MyProposals(ctx context.Context) ([]domain.Proposal, error)
	TaskProposals(ctx context.Context, taskID int64) ([]domain.Proposal, error)
	UpdateProposalStatus(ctx context.Context, proposalID int64, status domain.ProposalStatus) (*domain.Proposal, error)

	LeaveReview(ctx context.Context, review domain.Review) error
	ListProfessionals(ctx context.Context) ([]domain.User, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	SendContactQuery(ctx context.Context, query domain.ContactQuery) error
}
