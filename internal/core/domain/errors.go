package domain

import (
	"errors"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrValidation         = errors.New("validation failed")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")

	// ErrUnauthorized signals that the stored token is no longer accepted.
	ErrUnauthorized = errors.New("session expired")

	ErrTaskNotFound      = errors.New("task not found")
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateProposal = errors.New("proposal already submitted for this task")
	ErrDuplicateReview   = errors.New("review already submitted for this task and user")
)

// ValidationError carries per-field validation messages. Fields maps a field
// name to its message; Messages is the same content flattened for display.
type ValidationError struct {
	Message  string
	Messages []string
	Fields   map[string]string
}

// NewFieldError builds a ValidationError from a field map.
func NewFieldError(fields map[string]string) *ValidationError {
	keys := lo.Keys(fields)
	slices.Sort(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, k+": "+fields[k])
	}
	return &ValidationError{Message: ErrValidation.Error(), Messages: msgs, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		if e.Message == "" {
			return ErrValidation.Error()
		}
		return e.Message
	}
	return strings.Join(e.Messages, "; ")
}

// Is lets errors.Is(err, ErrValidation) match any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
