package teststeps

// CreateTestStepRequest is the body of POST /api/test-steps.
type CreateTestStepRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Description    string `json:"description" validate:"max=2000"`
	ExpectedResult string `json:"expected_result" validate:"max=2000"`
	TestPlanID     string `json:"test_plan_id" validate:"required"`
}

// UpdateTestStepRequest carries the fields of a partial update.
type UpdateTestStepRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	ExpectedResult *string `json:"expected_result" validate:"omitempty,max=2000"`
	TestPlanID     *string `json:"test_plan_id"`
}
