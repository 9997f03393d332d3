package teststeps

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

// Service implements test step use cases.
type Service struct {
	repo    Repository
	checker *shared.Checker
}

// NewService constructs a Service.
func NewService(repo Repository, checker *shared.Checker) *Service {
	return &Service{repo: repo, checker: checker}
}

// List returns one page of test steps.
func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[TestStep], error) {
	return s.repo.List(ctx, params)
}

// ListByPlan returns the steps referencing planID.
func (s *Service) ListByPlan(ctx context.Context, planID string, params listquery.Params) (listquery.Page[TestStep], error) {
	if err := s.checker.Exists(ctx, catalog.TestPlans, "test plan", planID); err != nil {
		return listquery.Page[TestStep]{}, err
	}
	return s.repo.ListScoped(ctx, docstore.Filter{docstore.Eq("test_plan_id", planID)}, params)
}

// Get returns a single test step.
func (s *Service) Get(ctx context.Context, id string, includeDeleted bool) (TestStep, error) {
	return s.repo.Get(ctx, id, includeDeleted)
}

// Create stores a new test step under an existing plan.
func (s *Service) Create(ctx context.Context, req CreateTestStepRequest) (TestStep, error) {
	doc, err := req.document()
	if err != nil {
		return TestStep{}, err
	}
	if err := s.checker.Reference(ctx, catalog.TestPlans, "test_plan_id", doc["test_plan_id"].(string)); err != nil {
		return TestStep{}, err
	}
	return s.repo.Create(ctx, doc)
}

// Update applies the supplied fields only.
func (s *Service) Update(ctx context.Context, id string, req UpdateTestStepRequest) (TestStep, error) {
	set, err := req.changes()
	if err != nil {
		return TestStep{}, err
	}
	if planID, ok := set["test_plan_id"].(string); ok {
		if err := s.checker.Reference(ctx, catalog.TestPlans, "test_plan_id", planID); err != nil {
			return TestStep{}, err
		}
	}
	return s.repo.Update(ctx, id, set)
}

// Delete soft-deletes a test step.
func (s *Service) Delete(ctx context.Context, id string) (TestStep, error) {
	return s.repo.SoftDelete(ctx, id)
}
