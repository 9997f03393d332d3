package teststeps

import (
	"time"

	"github.com/qaforge/qaforge/internal/docstore"
)

// TestStep is one instruction of a test plan with its expected outcome.
type TestStep struct {
	ID             string       `json:"_id"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	ExpectedResult string       `json:"expected_result,omitempty"`
	TestPlanID     docstore.Ref `json:"test_plan_id"`
	IsDeleted      bool         `json:"isDeleted"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
