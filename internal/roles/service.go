package roles

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

// Service handles role business logic.
type Service struct {
	repo    Repository
	checker *shared.Checker
}

// NewService builds Service instance.
func NewService(repo Repository, checker *shared.Checker) *Service {
	return &Service{repo: repo, checker: checker}
}

// List returns one page of roles.
func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[Role], error) {
	return s.repo.List(ctx, params)
}

// Get returns a single role with its permissions expanded.
func (s *Service) Get(ctx context.Context, id string, includeDeleted bool) (Role, error) {
	return s.repo.Get(ctx, id, includeDeleted)
}

// Create stores a role. Name and key must be unique and every permission must
// exist; nothing is written otherwise.
func (s *Service) Create(ctx context.Context, req CreateRoleRequest) (Role, error) {
	doc, perms, err := req.document()
	if err != nil {
		return Role{}, err
	}
	if err := s.check(ctx, doc, perms, ""); err != nil {
		return Role{}, err
	}
	return s.repo.Create(ctx, doc)
}

// Update applies the supplied fields only.
func (s *Service) Update(ctx context.Context, id string, req UpdateRoleRequest) (Role, error) {
	set, perms, err := req.changes()
	if err != nil {
		return Role{}, err
	}
	if err := s.check(ctx, set, perms, id); err != nil {
		return Role{}, err
	}
	return s.repo.Update(ctx, id, set)
}

// Delete soft-deletes a role.
func (s *Service) Delete(ctx context.Context, id string) (Role, error) {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) check(ctx context.Context, doc docstore.Document, perms []string, selfID string) error {
	for _, field := range []string{"name", "key"} {
		value, ok := doc[field]
		if !ok {
			continue
		}
		if err := s.checker.Unique(ctx, catalog.Roles, "role", field, value, selfID); err != nil {
			return err
		}
	}
	return s.checker.References(ctx, catalog.Permissions, "permissions", perms)
}
