package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigsly/gigsly-client/internal/api/metrics"
	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

type ProposalService struct {
	proposals ports.ProposalRepository
	tasks     ports.TaskRepository
	log       zerolog.Logger
	now       func() time.Time
}

func NewProposalService(proposals ports.ProposalRepository, tasks ports.TaskRepository, log zerolog.Logger) *ProposalService {
	return &ProposalService{proposals: proposals, tasks: tasks, log: log, now: time.Now}
}

// Submit records a professional's bid on an open task. A professional may bid
// once per task.
func (s *ProposalService) Submit(ctx context.Context, actor ports.Actor, draft domain.ProposalDraft) (*domain.Proposal, error) {
	if !domain.AccessRules[domain.ActionApply].Permits(actor.Role) {
		return nil, fmt.Errorf("submit proposal: %w", domain.ErrForbidden)
	}
	if err := validateProposalDraft(draft); err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, draft.TaskID)
	if err != nil {
		return nil, fmt.Errorf("submit proposal: %w", err)
	}
	if task.Status != domain.TaskOpen {
		return nil, fmt.Errorf("submit proposal: %w (task %d is %s)", domain.ErrInvalidTransition, task.ID, task.Status)
	}
	if task.ClientID == actor.UserID {
		return nil, fmt.Errorf("submit proposal on own task: %w", domain.ErrForbidden)
	}

	exists, err := s.proposals.Exists(ctx, task.ID, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("submit proposal: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateProposal
	}

	now := s.now().UTC()
	p := &domain.Proposal{
		TaskID:            task.ID,
		TaskTitle:         task.Title,
		ProfessionalID:    actor.UserID,
		ProfessionalName:  actor.Name,
		Message:           strings.TrimSpace(draft.Message),
		ProposedAmount:    draft.ProposedAmount,
		EstimatedDuration: draft.EstimatedDuration,
		Status:            domain.ProposalPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.proposals.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("submit proposal: %w", err)
	}

	metrics.ProposalsTotal.WithLabelValues(string(domain.ProposalPending)).Inc()
	s.log.Info().
		Int64("proposal_id", p.ID).
		Int64("task_id", task.ID).
		Int64("professional_id", actor.UserID).
		Msg("proposal submitted")
	return p, nil
}

func (s *ProposalService) Mine(ctx context.Context, actor ports.Actor) ([]*domain.Proposal, error) {
	if !domain.AccessRules[domain.ActionMyProposals].Permits(actor.Role) {
		return nil, fmt.Errorf("list proposals: %w", domain.ErrForbidden)
	}
	return s.proposals.ListByProfessional(ctx, actor.UserID)
}

// ForTask lists the proposals on a task. Only the task owner or an admin may
// see them.
func (s *ProposalService) ForTask(ctx context.Context, actor ports.Actor, taskID int64) ([]*domain.Proposal, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !ownsTask(actor, task) {
		return nil, fmt.Errorf("list proposals for task %d: %w", taskID, domain.ErrForbidden)
	}
	return s.proposals.ListByTask(ctx, taskID)
}

// UpdateStatus decides a pending proposal. The task owner accepts or rejects;
// the professional who sent it may withdraw it. Accepting assigns the
// professional and moves the task to IN_PROGRESS.
func (s *ProposalService) UpdateStatus(ctx context.Context, actor ports.Actor, proposalID int64, status domain.ProposalStatus) (*domain.Proposal, error) {
	p, err := s.proposals.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if p.Status.Decided() {
		return nil, fmt.Errorf("update proposal %d: %w (already %s)", proposalID, domain.ErrInvalidTransition, p.Status)
	}

	task, err := s.tasks.FindByID(ctx, p.TaskID)
	if err != nil {
		return nil, fmt.Errorf("update proposal %d: %w", proposalID, err)
	}

	now := s.now().UTC()
	switch status {
	case domain.ProposalAccepted:
		if !ownsTask(actor, task) {
			return nil, fmt.Errorf("accept proposal %d: %w", proposalID, domain.ErrForbidden)
		}
		if !task.Status.CanTransitionTo(domain.TaskInProgress) {
			return nil, fmt.Errorf("accept proposal %d: %w (task is %s)", proposalID, domain.ErrInvalidTransition, task.Status)
		}
		p.AcceptedAt = &now

		proID := p.ProfessionalID
		task.AssignedProfessionalID = &proID
		task.AssignedProfessionalName = p.ProfessionalName
		task.Status = domain.TaskInProgress
		task.UpdatedAt = now
		if err := s.tasks.Update(ctx, task); err != nil {
			return nil, fmt.Errorf("accept proposal %d: update task: %w", proposalID, err)
		}
	case domain.ProposalRejected:
		if !ownsTask(actor, task) {
			return nil, fmt.Errorf("reject proposal %d: %w", proposalID, domain.ErrForbidden)
		}
		p.RejectedAt = &now
	case domain.ProposalWithdrawn:
		if actor.UserID != p.ProfessionalID {
			return nil, fmt.Errorf("withdraw proposal %d: %w", proposalID, domain.ErrForbidden)
		}
	default:
		return nil, domain.NewFieldError(map[string]string{"status": "Status must be ACCEPTED, REJECTED or WITHDRAWN"})
	}

	p.Status = status
	p.UpdatedAt = now
	if err := s.proposals.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update proposal %d: %w", proposalID, err)
	}

	metrics.ProposalsTotal.WithLabelValues(string(status)).Inc()
	s.log.Info().
		Int64("proposal_id", proposalID).
		Str("status", string(status)).
		Int64("actor_id", actor.UserID).
		Msg("proposal decided")
	return p, nil
}

func validateProposalDraft(d domain.ProposalDraft) error {
	fields := map[string]string{}
	if d.TaskID <= 0 {
		fields["taskId"] = "Task id is required"
	}
	if strings.TrimSpace(d.Message) == "" {
		fields["message"] = "Proposal message is required"
	}
	if d.ProposedAmount != nil && *d.ProposedAmount <= 0 {
		fields["proposedAmount"] = "Proposed amount must be greater than zero"
	}
	if len(fields) > 0 {
		return domain.NewFieldError(fields)
	}
	return nil
}
