package projects

import (
	"context"

	"github.com/qaforge/qaforge/internal/listquery"
)

// Service implements project use cases.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of projects.
func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[Project], error) {
	return s.repo.List(ctx, params)
}

// Get returns a single project.
func (s *Service) Get(ctx context.Context, id string, includeDeleted bool) (Project, error) {
	return s.repo.Get(ctx, id, includeDeleted)
}

// Create stores a new project.
func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (Project, error) {
	doc, err := req.document()
	if err != nil {
		return Project{}, err
	}
	return s.repo.Create(ctx, doc)
}

// Update applies the supplied fields only.
func (s *Service) Update(ctx context.Context, id string, req UpdateProjectRequest) (Project, error) {
	set, err := req.changes()
	if err != nil {
		return Project{}, err
	}
	return s.repo.Update(ctx, id, set)
}

// Delete soft-deletes a project.
func (s *Service) Delete(ctx context.Context, id string) (Project, error) {
	return s.repo.SoftDelete(ctx, id)
}
