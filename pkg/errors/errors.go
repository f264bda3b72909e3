package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the turn runner
var (
	// ErrNoAssistantReply indicates a run completed without producing an
	// assistant-authored message.
	ErrNoAssistantReply = errors.New("run completed but no assistant reply found")

	// ErrTimeout indicates the caller-configured wait budget was exhausted
	// while the run was still active. The remote run is left untouched.
	ErrTimeout = errors.New("timed out waiting for run to reach a terminal status")
)

// ErrorResponse represents an error payload from the assistants API
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Param   string `json:"param,omitempty"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
}

// ToError converts the ErrorResponse to a Go error
func (e ErrorResponse) ToError(status int) error {
	return &APIError{
		Status:  status,
		Type:    e.Error.Type,
		Code:    e.Error.Code,
		Message: e.Error.Message,
		Param:   e.Error.Param,
	}
}

// APIError represents an error returned by the assistants API
type APIError struct {
	Status  int
	Type    string
	Code    string
	Message string
	Param   string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("assistants api error %d (%s): %s", e.Status, e.Type, e.Message)
	}
	return fmt.Sprintf("assistants api error %d: %s", e.Status, e.Message)
}

// IsRateLimited returns true if the request was rate limited
func (e *APIError) IsRateLimited() bool {
	return e.Status == 429
}

// IsNotFound returns true if the referenced resource does not exist
func (e *APIError) IsNotFound() bool {
	return e.Status == 404
}

// IsAuthError returns true for credential problems
func (e *APIError) IsAuthError() bool {
	return e.Status == 401 || e.Status == 403
}

// TransportError wraps a failure of one protocol step (posting the message,
// starting the run, polling it, or listing messages). The step that failed is
// preserved; the underlying cause is reachable via Unwrap.
type TransportError struct {
	Step string
	Err  error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// RunFailedError indicates the remote run reached the failed status. Detail
// carries the service-reported cause and is opaque to this layer.
type RunFailedError struct {
	Detail string
}

// Error implements the error interface
func (e *RunFailedError) Error() string {
	if e.Detail == "" {
		return "run failed"
	}
	return fmt.Sprintf("run failed: %s", e.Detail)
}

// RunTerminatedError indicates the remote run reached a terminal status other
// than completed or failed (cancelled or expired).
type RunTerminatedError struct {
	Status string
}

// Error implements the error interface
func (e *RunTerminatedError) Error() string {
	return fmt.Sprintf("run terminated without completing: %s", e.Status)
}
