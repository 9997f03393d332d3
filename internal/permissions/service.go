package permissions

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

// Service implements permission use cases.
type Service struct {
	repo    Repository
	checker *shared.Checker
}

// NewService constructs a Service.
func NewService(repo Repository, checker *shared.Checker) *Service {
	return &Service{repo: repo, checker: checker}
}

// List returns one page of permissions.
func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[Permission], error) {
	return s.repo.List(ctx, params)
}

// Get returns a single permission.
func (s *Service) Get(ctx context.Context, id string, includeDeleted bool) (Permission, error) {
	return s.repo.Get(ctx, id, includeDeleted)
}

// Create stores a permission with a unique key and name.
func (s *Service) Create(ctx context.Context, req CreatePermissionRequest) (Permission, error) {
	doc, err := req.document()
	if err != nil {
		return Permission{}, err
	}
	if err := s.checkUnique(ctx, doc, ""); err != nil {
		return Permission{}, err
	}
	return s.repo.Create(ctx, doc)
}

// Update applies the supplied fields only. The key identifies the permission
// in role grants and the catalog reset, so it cannot change.
func (s *Service) Update(ctx context.Context, id string, req UpdatePermissionRequest) (Permission, error) {
	current, err := s.repo.Document(ctx, id)
	if err != nil {
		return Permission{}, err
	}
	key, _ := current["key"].(string)
	set, err := req.changes(key)
	if err != nil {
		return Permission{}, err
	}
	if err := s.checkUnique(ctx, set, id); err != nil {
		return Permission{}, err
	}
	return s.repo.Update(ctx, id, set)
}

// Delete soft-deletes a permission.
func (s *Service) Delete(ctx context.Context, id string) (Permission, error) {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) checkUnique(ctx context.Context, doc docstore.Document, selfID string) error {
	for _, field := range []string{"key", "name"} {
		value, ok := doc[field]
		if !ok {
			continue
		}
		if err := s.checker.Unique(ctx, catalog.Permissions, "permission", field, value, selfID); err != nil {
			return err
		}
	}
	return nil
}
