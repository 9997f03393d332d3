package teststeps

import (
	"strings"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/shared"
)

func (req CreateTestStepRequest) document() (docstore.Document, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, shared.Validation("test step name is required", "name")
	}
	planID := strings.TrimSpace(req.TestPlanID)
	if planID == "" {
		return nil, shared.Validation("test plan is required", "test_plan_id")
	}
	return docstore.Document{
		"name":            name,
		"description":     strings.TrimSpace(req.Description),
		"expected_result": strings.TrimSpace(req.ExpectedResult),
		"test_plan_id":    planID,
	}, nil
}

func (req UpdateTestStepRequest) changes() (docstore.Document, error) {
	set := docstore.Document{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, shared.Validation("test step name cannot be empty", "name")
		}
		set["name"] = name
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.ExpectedResult != nil {
		set["expected_result"] = strings.TrimSpace(*req.ExpectedResult)
	}
	if req.TestPlanID != nil {
		planID := strings.TrimSpace(*req.TestPlanID)
		if planID == "" {
			return nil, shared.Validation("test plan cannot be empty", "test_plan_id")
		}
		set["test_plan_id"] = planID
	}
	if len(set) == 0 {
		return nil, shared.Validation("no updatable field supplied")
	}
	return set, nil
}
