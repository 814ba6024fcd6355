package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. The
// client gateway decodes the same shape.
type errorResponse struct {
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders every failure in the errorResponse envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := resolveError(err, log, c)
		resp.Error = http.StatusText(resp.Status)
		resp.Path = c.Request().URL.Path

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(resp.Status)
			return
		}
		_ = c.JSON(resp.Status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) errorResponse {
	// Echo's own errors (bind failures, 404 from router, middleware rejections)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return errorResponse{Status: he.Code, Message: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		msg := ve.Message
		if msg == "" {
			msg = domain.ErrValidation.Error()
		}
		return errorResponse{Status: http.StatusBadRequest, Message: msg, ValidationErrors: ve.Fields}
	}

	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errorResponse{Status: http.StatusConflict, Message: "email already registered"}
	case errors.Is(err, domain.ErrDuplicateProposal), errors.Is(err, domain.ErrDuplicateReview):
		return errorResponse{Status: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errorResponse{Status: http.StatusUnauthorized, Message: "invalid credentials"}
	case errors.Is(err, domain.ErrUnauthorized):
		return errorResponse{Status: http.StatusUnauthorized, Message: "invalid token"}
	case errors.Is(err, domain.ErrForbidden):
		return errorResponse{Status: http.StatusForbidden, Message: "access forbidden"}
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrProposalNotFound):
		return errorResponse{Status: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidTransition):
		return errorResponse{Status: http.StatusUnprocessableEntity, Message: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return errorResponse{Status: http.StatusInternalServerError, Message: "internal server error"}
}
