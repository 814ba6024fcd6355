package handler

import (
	"strings"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// --- Request → domain input ---

func toSignupInput(req signupRequest) domain.SignupInput {
	return domain.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.ParseRole(req.Role),
	}
}

func toTaskDraft(req createTaskRequest) domain.TaskDraft {
	return domain.TaskDraft{
		Title:             req.Title,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		BudgetMin:         req.BudgetMin,
		BudgetMax:         req.BudgetMax,
		Priority:          domain.TaskPriority(strings.ToUpper(req.Priority)),
		Deadline:          req.Deadline,
		RequiredSkills:    req.RequiredSkills,
		Location:          req.Location,
		Remote:            req.Remote,
		EstimatedDuration: req.EstimatedDuration,
	}
}

func toProposalDraft(req createProposalRequest) domain.ProposalDraft {
	return domain.ProposalDraft{
		TaskID:            req.TaskID,
		Message:           req.Message,
		ProposedAmount:    req.ProposedAmount,
		EstimatedDuration: req.EstimatedDuration,
	}
}

// nonNil keeps empty result sets encoded as [] rather than null.
func nonNil[T any](items []*T) []*T {
	if items == nil {
		return []*T{}
	}
	return items
}
