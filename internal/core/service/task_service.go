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

type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger, now: time.Now}
}

// CreateTask posts a new OPEN task owned by actor. Only roles allowed to post
// tasks may call it.
func (s *TaskService) CreateTask(ctx context.Context, actor ports.Actor, draft domain.TaskDraft) (*domain.Task, error) {
	if !domain.AccessRules[domain.ActionPostTask].Permits(actor.Role) {
		return nil, fmt.Errorf("create task: %w", domain.ErrForbidden)
	}

	now := s.now().UTC()
	if err := validateTaskDraft(draft, now); err != nil {
		return nil, err
	}

	priority := draft.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		Title:             strings.TrimSpace(draft.Title),
		Description:       strings.TrimSpace(draft.Description),
		Status:            domain.TaskOpen,
		Priority:          priority,
		BudgetMin:         draft.BudgetMin,
		BudgetMax:         draft.BudgetMax,
		Deadline:          draft.Deadline,
		RequiredSkills:    draft.RequiredSkills,
		Location:          draft.Location,
		Remote:            draft.Remote,
		EstimatedDuration: draft.EstimatedDuration,
		ClientID:          actor.UserID,
		ClientName:        actor.Name,
		CategoryID:        draft.CategoryID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()
	s.logger.Info().Int64("task_id", task.ID).Int64("client_id", actor.UserID).Msg("task created")
	return task, nil
}

// ListTasks returns every task, optionally narrowed to one status.
func (s *TaskService) ListTasks(ctx context.Context, status string) ([]*domain.Task, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "" && !validTaskStatus(domain.TaskStatus(status)) {
		return nil, domain.NewFieldError(map[string]string{"status": "Unknown task status " + status})
	}
	return s.repo.List(ctx, ports.ListTasksFilter{Status: status})
}

// MyTasks lists the tasks a client posted, or the tasks a professional has
// been assigned.
func (s *TaskService) MyTasks(ctx context.Context, actor ports.Actor) ([]*domain.Task, error) {
	if actor.Role == domain.RoleProfessional {
		return s.repo.List(ctx, ports.ListTasksFilter{AssignedProfessionalID: actor.UserID})
	}
	return s.repo.List(ctx, ports.ListTasksFilter{ClientID: actor.UserID})
}

// UpdateStatus moves a task through its state machine. Only the owning
// client or an admin may do so.
func (s *TaskService) UpdateStatus(ctx context.Context, actor ports.Actor, taskID int64, status domain.TaskStatus) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !ownsTask(actor, task) {
		return nil, fmt.Errorf("update task %d: %w", taskID, domain.ErrForbidden)
	}
	if !task.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("update task %d: %w (from %s to %s)", taskID, domain.ErrInvalidTransition, task.Status, status)
	}
	if (status == domain.TaskInProgress || status == domain.TaskCompleted) && task.AssignedProfessionalID == nil {
		return nil, fmt.Errorf("update task %d: %w (assign a professional before moving to %s)", taskID, domain.ErrInvalidTransition, status)
	}

	task.Status = status
	task.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("task_id", taskID).Str("status", string(status)).Msg("task status updated")
	return task, nil
}

func ownsTask(actor ports.Actor, task *domain.Task) bool {
	return actor.Role == domain.RoleAdmin || (actor.Role == domain.RoleClient && task.ClientID == actor.UserID)
}

func validTaskStatus(s domain.TaskStatus) bool {
	switch s {
	case domain.TaskOpen, domain.TaskInProgress, domain.TaskCompleted, domain.TaskCancelled, domain.TaskClosed:
		return true
	}
	return false
}

func validateTaskDraft(d domain.TaskDraft, now time.Time) error {
	fields := map[string]string{}
	if strings.TrimSpace(d.Title) == "" {
		fields["title"] = "Title is required"
	}
	if strings.TrimSpace(d.Description) == "" {
		fields["description"] = "Description is required"
	}
	switch d.Priority {
	case "", domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityUrgent:
	default:
		fields["priority"] = "Priority must be LOW, MEDIUM, HIGH or URGENT"
	}
	if d.BudgetMin != nil && d.BudgetMax != nil && *d.BudgetMin > *d.BudgetMax {
		fields["budgetMin"] = "Minimum budget cannot exceed maximum budget"
	}
	if d.Deadline != nil && d.Deadline.Before(now) {
		fields["deadline"] = "Deadline must be in the future"
	}
	if len(fields) > 0 {
		return domain.NewFieldError(fields)
	}
	return nil
}
