package testplans

// CreateTestPlanRequest is the body of POST /api/test-plans.
type CreateTestPlanRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	ProjectID   string   `json:"project_id" validate:"required"`
	CreatedBy   string   `json:"created_by"`
	Steps       []string `json:"steps" validate:"dive,required"`
}

// UpdateTestPlanRequest carries the fields of a partial update.
type UpdateTestPlanRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	ProjectID   *string   `json:"project_id"`
	CreatedBy   *string   `json:"created_by"`
	Steps       *[]string `json:"steps" validate:"omitempty,dive,required"`
}
