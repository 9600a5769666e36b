package mcp

import (
	"errors"
	"fmt"

	"github.com/oneclickai/opsdeck/internal/backend"
	"github.com/oneclickai/opsdeck/internal/domain/activity"
	"github.com/oneclickai/opsdeck/internal/domain/session"
	"github.com/oneclickai/opsdeck/internal/visualize"
)

// ErrNoBackend indicates a backend probe without a configured backend.
var ErrNoBackend = errors.New("no backend configured")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var connErr *backend.ConnectionError
	switch {
	case errors.Is(err, session.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid ids"}
	case errors.Is(err, session.ErrAlreadyRunning):
		return &APIError{Code: "ALREADY_RUNNING", Message: "project already has a run in flight", RecoveryHint: "Wait for it to finish or call reset_project"}
	case errors.Is(err, session.ErrNotRunning):
		return &APIError{Code: "NOT_RUNNING", Message: "project is not running"}
	case errors.Is(err, session.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, session.ErrClosed):
		return &APIError{Code: "SHUTTING_DOWN", Message: "session store closed"}
	case errors.Is(err, session.ErrNoRunner), errors.Is(err, ErrNoBackend):
		return &APIError{Code: "NO_BACKEND", Message: "no run backend configured", RecoveryHint: "Set backend.base_url or OPSDECK_BACKEND_URL"}
	case errors.As(err, &connErr):
		return &APIError{Code: "BACKEND_UNREACHABLE", Message: connErr.Error(), RecoveryHint: connErr.Hint}
	case errors.Is(err, visualize.ErrNoPlan):
		return &APIError{Code: "NO_PLAN", Message: "project has no plan yet", RecoveryHint: "Run the project to completion first"}
	case errors.Is(err, visualize.ErrUnknownView):
		return &APIError{Code: "UNKNOWN_VIEW", Message: err.Error(), RecoveryHint: "Use one of timeline, graph, map, lanes"}
	default:
		return nil
	}
}

func mapError(err error) *APIError {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return &APIError{Code: "INTERNAL", Message: err.Error()}
}
