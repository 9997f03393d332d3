package testplans

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

// Service implements test plan use cases.
type Service struct {
	repo    Repository
	checker *shared.Checker
}

// NewService constructs a Service.
func NewService(repo Repository, checker *shared.Checker) *Service {
	return &Service{repo: repo, checker: checker}
}

// List returns one page of test plans.
func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[TestPlan], error) {
	return s.repo.List(ctx, params)
}

// Get returns a single test plan.
func (s *Service) Get(ctx context.Context, id string, includeDeleted bool) (TestPlan, error) {
	return s.repo.Get(ctx, id, includeDeleted)
}

// Create stores a new test plan once every reference resolves.
func (s *Service) Create(ctx context.Context, req CreateTestPlanRequest) (TestPlan, error) {
	doc, err := req.document()
	if err != nil {
		return TestPlan{}, err
	}
	if err := s.checkReferences(ctx, doc); err != nil {
		return TestPlan{}, err
	}
	return s.repo.Create(ctx, doc)
}

// Update applies the supplied fields only.
func (s *Service) Update(ctx context.Context, id string, req UpdateTestPlanRequest) (TestPlan, error) {
	set, err := req.changes()
	if err != nil {
		return TestPlan{}, err
	}
	if err := s.checkReferences(ctx, set); err != nil {
		return TestPlan{}, err
	}
	return s.repo.Update(ctx, id, set)
}

// Delete soft-deletes a test plan.
func (s *Service) Delete(ctx context.Context, id string) (TestPlan, error) {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) checkReferences(ctx context.Context, doc docstore.Document) error {
	if projectID, ok := doc["project_id"].(string); ok {
		if err := s.checker.Reference(ctx, catalog.Projects, "project_id", projectID); err != nil {
			return err
		}
	}
	if createdBy, ok := doc["created_by"].(string); ok {
		if err := s.checker.Reference(ctx, catalog.Users, "created_by", createdBy); err != nil {
			return err
		}
	}
	if steps, ok := doc["steps"].([]any); ok {
		if err := s.checker.References(ctx, catalog.TestSteps, "steps", anyStrings(steps)); err != nil {
			return err
		}
	}
	return nil
}
