package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/samber/lo"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

const maxErrorBody = 64 << 10

// APIError is a non-2xx backend response. The body follows the backend error
// envelope {status, error, message, path, validationErrors}.
type APIError struct {
	Status           int               `json:"status"`
	Reason           string            `json:"error"`
	Message          string            `json:"message"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Reason
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, msg)
}

// Is makes a 401 match domain.ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// FieldMessages flattens ValidationErrors into "field: message" lines sorted
// by field.
func (e *APIError) FieldMessages() []string {
	fields := lo.Keys(e.ValidationErrors)
	slices.Sort(fields)

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f+": "+e.ValidationErrors[f])
	}
	return out
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func decodeError(resp *http.Response, path string) *APIError {
	apiErr := &APIError{}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if len(data) > 0 {
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr.Message = string(data)
		}
	}
	apiErr.Status = resp.StatusCode
	if apiErr.Path == "" {
		apiErr.Path = path
	}
	return apiErr
}
