package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// MarketplaceAPI implements ports.MarketplaceAPI over the gateway client.
type MarketplaceAPI struct {
	client *Client
}

func NewMarketplaceAPI(client *Client) *MarketplaceAPI {
	return &MarketplaceAPI{client: client}
}

func (m *MarketplaceAPI) ListTasks(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {string(status)}}
	}
	var tasks []domain.Task
	if err := m.client.Get(ctx, "/tasks", q, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (m *MarketplaceAPI) MyTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := m.client.Get(ctx, "/tasks/mine", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (m *MarketplaceAPI) PostTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	var t domain.Task
	if err := m.client.Post(ctx, "/tasks", draft, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

type statusRequest struct {
	Status string `json:"status"`
}

func (m *MarketplaceAPI) UpdateTaskStatus(ctx context.Context, taskID int64, status domain.TaskStatus) (*domain.Task, error) {
	var t domain.Task
	if err := m.client.Post(ctx, fmt.Sprintf("/tasks/%d/status", taskID), statusRequest{Status: string(status)}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (m *MarketplaceAPI) SubmitProposal(ctx context.Context, draft domain.ProposalDraft) (*domain.Proposal, error) {
	var p domain.Proposal
	if err := m.client.Post(ctx, "/proposals", draft, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *MarketplaceAPI) MyProposals(ctx context.Context) ([]domain.Proposal, error) {
	var ps []domain.Proposal
	if err := m.client.Get(ctx, "/proposals/mine", nil, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (m *MarketplaceAPI) TaskProposals(ctx context.Context, taskID int64) ([]domain.Proposal, error) {
	var ps []domain.Proposal
	if err := m.client.Get(ctx, fmt.Sprintf("/proposals/task/%d", taskID), nil, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (m *MarketplaceAPI) UpdateProposalStatus(ctx context.Context, proposalID int64, status domain.ProposalStatus) (*domain.Proposal, error) {
	var p domain.Proposal
	if err := m.client.Post(ctx, fmt.Sprintf("/proposals/%d/status", proposalID), statusRequest{Status: string(status)}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *MarketplaceAPI) LeaveReview(ctx context.Context, review domain.Review) error {
	return m.client.Post(ctx, "/reviews", review, nil)
}

func (m *MarketplaceAPI) ListProfessionals(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	q := url.Values{"role": {string(domain.RoleProfessional)}}
	if err := m.client.Get(ctx, "/users", q, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (m *MarketplaceAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cs []domain.Category
	if err := m.client.Get(ctx, "/categories", nil, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (m *MarketplaceAPI) SendContactQuery(ctx context.Context, query domain.ContactQuery) error {
	return m.client.Post(ctx, "/contact-queries", query, nil)
}
