package executions

import (
	"context"
	"time"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

// Service implements execution use cases.
type Service struct {
	repo    Repository
	checker *shared.Checker
	now     func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, checker *shared.Checker) *Service {
	return &Service{repo: repo, checker: checker, now: func() time.Time { return time.Now().UTC() }}
}

// List returns one page of executions.
func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[Execution], error) {
	return s.repo.List(ctx, params)
}

// ListByStep returns the executions of stepID.
func (s *Service) ListByStep(ctx context.Context, stepID string, params listquery.Params) (listquery.Page[Execution], error) {
	if err := s.checker.Exists(ctx, catalog.TestSteps, "test step", stepID); err != nil {
		return listquery.Page[Execution]{}, err
	}
	return s.repo.ListScoped(ctx, docstore.Filter{docstore.Eq("test_step_id", stepID)}, params)
}

// Get returns a single execution.
func (s *Service) Get(ctx context.Context, id string, includeDeleted bool) (Execution, error) {
	return s.repo.Get(ctx, id, includeDeleted)
}

// Create records an execution of an existing step.
func (s *Service) Create(ctx context.Context, req CreateExecutionRequest) (Execution, error) {
	doc, err := req.document(s.now())
	if err != nil {
		return Execution{}, err
	}
	if err := s.checkReferences(ctx, doc); err != nil {
		return Execution{}, err
	}
	return s.repo.Create(ctx, doc)
}

// Update applies the supplied fields only.
func (s *Service) Update(ctx context.Context, id string, req UpdateExecutionRequest) (Execution, error) {
	current, err := s.repo.Document(ctx, id)
	if err != nil {
		return Execution{}, err
	}
	status, _ := current["status"].(string)
	_, hasExecutedAt := current["executed_at"]
	set, err := req.changes(Status(status), hasExecutedAt, s.now())
	if err != nil {
		return Execution{}, err
	}
	if err := s.checkReferences(ctx, set); err != nil {
		return Execution{}, err
	}
	return s.repo.Update(ctx, id, set)
}

// Delete soft-deletes an execution.
func (s *Service) Delete(ctx context.Context, id string) (Execution, error) {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) checkReferences(ctx context.Context, doc docstore.Document) error {
	if stepID, ok := doc["test_step_id"].(string); ok {
		if err := s.checker.Reference(ctx, catalog.TestSteps, "test_step_id", stepID); err != nil {
			return err
		}
	}
	if executedBy, ok := doc["executed_by"].(string); ok {
		if err := s.checker.Reference(ctx, catalog.Users, "executed_by", executedBy); err != nil {
			return err
		}
	}
	return nil
}
