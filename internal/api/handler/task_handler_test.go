package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

type stubTaskService struct {
	createFn func(ctx context.Context, actor ports.Actor, draft domain.TaskDraft) (*domain.Task, error)
	listFn   func(ctx context.Context, status string) ([]*domain.Task, error)
	mineFn   func(ctx context.Context, actor ports.Actor) ([]*domain.Task, error)
	updateFn func(ctx context.Context, actor ports.Actor, taskID int64, status domain.TaskStatus) (*domain.Task, error)
}

func (s *stubTaskService) CreateTask(ctx context.Context, actor ports.Actor, draft domain.TaskDraft) (*domain.Task, error) {
	return s.createFn(ctx, actor, draft)
}

func (s *stubTaskService) ListTasks(ctx context.Context, status string) ([]*domain.Task, error) {
	return s.listFn(ctx, status)
}

func (s *stubTaskService) MyTasks(ctx context.Context, actor ports.Actor) ([]*domain.Task, error) {
	return s.mineFn(ctx, actor)
}

func (s *stubTaskService) UpdateStatus(ctx context.Context, actor ports.Actor, taskID int64, status domain.TaskStatus) (*domain.Task, error) {
	return s.updateFn(ctx, actor, taskID, status)
}

var clientCaller = ports.Actor{UserID: 1, Name: "Cleo", Role: domain.RoleClient}

func TestTaskHandler_Create_Success(t *testing.T) {
	e := newEcho()
	handler := NewTaskHandler(&stubTaskService{
		createFn: func(ctx context.Context, actor ports.Actor, draft domain.TaskDraft) (*domain.Task, error) {
			if actor.UserID != 1 {
				t.Fatalf("unexpected actor %+v", actor)
			}
			if draft.Title != "Fix sink" || draft.Priority != domain.PriorityHigh || !draft.Remote {
				t.Fatalf("unexpected draft %+v", draft)
			}
			return &domain.Task{ID: 11, Title: draft.Title, Status: domain.TaskOpen, Priority: draft.Priority, ClientID: actor.UserID}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodPost, "/api/tasks",
		`{"title":"Fix sink","description":"Leaking","priority":"HIGH","remote":true,"budgetMax":120}`)
	withActor(c, clientCaller)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var task domain.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if task.ID != 11 || task.Status != domain.TaskOpen {
		t.Fatalf("unexpected task %+v", task)
	}
}

func TestTaskHandler_Create_Validation(t *testing.T) {
	e := newEcho()
	handler := NewTaskHandler(&stubTaskService{})

	c, _ := jsonContext(e, http.MethodPost, "/api/tasks", `{"priority":"SOON"}`)
	withActor(c, clientCaller)

	err := handler.Create(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["title"]; !ok {
		t.Fatalf("expected title message, got %v", ve.Fields)
	}
	if _, ok := ve.Fields["priority"]; !ok {
		t.Fatalf("expected priority message, got %v", ve.Fields)
	}
}

func TestTaskHandler_List_PassesStatus(t *testing.T) {
	e := newEcho()
	handler := NewTaskHandler(&stubTaskService{
		listFn: func(ctx context.Context, status string) ([]*domain.Task, error) {
			if status != "OPEN" {
				t.Fatalf("expected status OPEN, got %q", status)
			}
			return []*domain.Task{{ID: 1, Title: "A"}}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodGet, "/api/tasks?status=OPEN", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var tasks []domain.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil || len(tasks) != 1 {
		t.Fatalf("unexpected body %s (%v)", rec.Body.String(), err)
	}
}

func TestTaskHandler_Mine_RequiresActor(t *testing.T) {
	e := newEcho()
	handler := NewTaskHandler(&stubTaskService{})

	c, _ := jsonContext(e, http.MethodGet, "/api/tasks/mine", "")
	var he *echo.HTTPError
	if err := handler.Mine(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestTaskHandler_UpdateStatus(t *testing.T) {
	e := newEcho()
	handler := NewTaskHandler(&stubTaskService{
		updateFn: func(ctx context.Context, actor ports.Actor, taskID int64, status domain.TaskStatus) (*domain.Task, error) {
			if taskID != 42 || status != domain.TaskCancelled {
				t.Fatalf("unexpected args %d %s", taskID, status)
			}
			return &domain.Task{ID: taskID, Status: status}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodPost, "/api/tasks/42/status", `{"status":"CANCELLED"}`)
	withActor(c, clientCaller)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = jsonContext(e, http.MethodPost, "/api/tasks/abc/status", `{"status":"CANCELLED"}`)
	withActor(c, clientCaller)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	var he *echo.HTTPError
	if err := handler.UpdateStatus(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %v", err)
	}
}
