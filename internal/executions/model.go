package executions

import (
	"time"

	"github.com/qaforge/qaforge/internal/docstore"
)

// Status is the outcome recorded for a step execution.
type Status string

// Execution statuses.
const (
	StatusNotExecuted Status = "not_executed"
	StatusPass        Status = "pass"
	StatusFail        Status = "fail"
	StatusSkipped     Status = "skipped"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNotExecuted, StatusPass, StatusFail, StatusSkipped:
		return true
	}
	return false
}

// Execution records one run of a test step.
type Execution struct {
	ID           string       `json:"_id"`
	TestStepID   docstore.Ref `json:"test_step_id"`
	ExecutedBy   docstore.Ref `json:"executed_by"`
	ExecutedAt   *time.Time   `json:"executed_at,omitempty"`
	Status       Status       `json:"status"`
	ActualResult string       `json:"actual_result,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	IsDeleted    bool         `json:"isDeleted"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
