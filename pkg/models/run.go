package models

// RunStatus represents the lifecycle state of an asynchronous run
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCancelling RunStatus = "cancelling"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
	RunStatusCancelled  RunStatus = "cancelled"
	RunStatusExpired    RunStatus = "expired"
)

// Terminal reports whether no further status transitions can occur
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// Run represents one asynchronous execution of an assistant over a thread
type Run struct {
	ID          string    `json:"id"`
	Object      string    `json:"object"`
	ThreadID    string    `json:"thread_id"`
	AssistantID string    `json:"assistant_id"`
	Status      RunStatus `json:"status"`
	LastError   *RunError `json:"last_error,omitempty"`
	CreatedAt   int64     `json:"created_at"`
	StartedAt   *int64    `json:"started_at,omitempty"`
	CompletedAt *int64    `json:"completed_at,omitempty"`
}

// RunError carries the service-reported cause of a failed run
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
