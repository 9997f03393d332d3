package executions

import "time"

// CreateExecutionRequest is the body of POST /api/test-step-executions.
type CreateExecutionRequest struct {
	TestStepID   string     `json:"test_step_id" validate:"required"`
	ExecutedBy   string     `json:"executed_by"`
	ExecutedAt   *time.Time `json:"executed_at"`
	Status       string     `json:"status" validate:"omitempty,oneof=not_executed pass fail skipped"`
	ActualResult string     `json:"actual_result" validate:"max=4000"`
	Notes        string     `json:"notes" validate:"max=4000"`
}

// UpdateExecutionRequest carries the fields of a partial update.
type UpdateExecutionRequest struct {
	ExecutedBy   *string    `json:"executed_by"`
	ExecutedAt   *time.Time `json:"executed_at"`
	Status       *string    `json:"status" validate:"omitempty,oneof=not_executed pass fail skipped"`
	ActualResult *string    `json:"actual_result" validate:"omitempty,max=4000"`
	Notes        *string    `json:"notes" validate:"omitempty,max=4000"`
}
