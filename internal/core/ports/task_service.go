package ports

import (
	"context"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// TaskService defines use-case operations for tasks.
type TaskService interface {
	CreateTask(ctx context.Context, actor Actor, draft domain.TaskDraft) (*domain.Task, error)
	ListTasks(ctx context.Context, status string) ([]*domain.Task, error)
	MyTasks(ctx context.Context, actor Actor) ([]*domain.Task, error)
	UpdateStatus(ctx context.Context, actor Actor, taskID int64, status domain.TaskStatus) (*domain.Task, error)
}
