package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks?status=OPEN.
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.service.ListTasks(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(tasks))
}

// Mine handles GET /api/tasks/mine.
func (h *TaskHandler) Mine(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.MyTasks(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(tasks))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Request().Context(), actor, toTaskDraft(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateStatus handles POST /api/tasks/:id/status.
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.UpdateStatus(c.Request().Context(), actor, id, domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}
