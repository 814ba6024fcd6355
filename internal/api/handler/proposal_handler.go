package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

type ProposalHandler struct {
	service ports.ProposalService
}

func NewProposalHandler(service ports.ProposalService) *ProposalHandler {
	return &ProposalHandler{service: service}
}

// Submit handles POST /api/proposals.
func (h *ProposalHandler) Submit(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req createProposalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Submit(c.Request().Context(), actor, toProposalDraft(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Mine handles GET /api/proposals/mine.
func (h *ProposalHandler) Mine(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	proposals, err := h.service.Mine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(proposals))
}

// ForTask handles GET /api/proposals/task/:id.
func (h *ProposalHandler) ForTask(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	taskID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	proposals, err := h.service.ForTask(c.Request().Context(), actor, taskID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(proposals))
}

// UpdateStatus handles POST /api/proposals/:id/status.
func (h *ProposalHandler) UpdateStatus(c echo.Context) error {
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

	p, err := h.service.UpdateStatus(c.Request().Context(), actor, id, domain.ProposalStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
