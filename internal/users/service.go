package users

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/rbac"
	"github.com/qaforge/qaforge/internal/shared"
)

// Service handles user business logic.
type Service struct {
	repo     Repository
	checker  *shared.Checker
	resolver *rbac.Resolver
	hashCost int
}

// NewService builds Service instance. hashCost of zero uses bcrypt.DefaultCost.
func NewService(repo Repository, checker *shared.Checker, resolver *rbac.Resolver, hashCost int) *Service {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, checker: checker, resolver: resolver, hashCost: hashCost}
}

// List returns one page of users with roles expanded.
func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[User], error) {
	return s.repo.List(ctx, params)
}

// Get returns a user merged with its effective permissions, derived from the
// roles and permissions as they are now.
func (s *Service) Get(ctx context.Context, id string, includeDeleted bool) (Detail, error) {
	user, err := s.repo.Get(ctx, id, includeDeleted)
	if err != nil {
		return Detail{}, err
	}
	grants, err := user.grants()
	if err != nil {
		return Detail{}, shared.Storage(err)
	}
	perms := s.resolver.Aggregator().Effective(grants).Sorted()
	return Detail{User: user, EffectivePermissions: perms}, nil
}

// Permissions returns the sorted effective permission keys of a user.
func (s *Service) Permissions(ctx context.Context, id string) ([]string, error) {
	set, err := s.resolver.ForUser(ctx, id)
	if err != nil {
		return nil, shared.FromStore(err, "user")
	}
	return set.Sorted(), nil
}

// Create stores a user with a unique email and existing roles.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	doc, roles, err := req.document()
	if err != nil {
		return User{}, err
	}
	if err := s.check(ctx, doc, roles, ""); err != nil {
		return User{}, err
	}
	if req.Password != "" {
		hash, err := s.hash(req.Password)
		if err != nil {
			return User{}, err
		}
		doc[passwordField] = hash
	}
	return s.repo.Create(ctx, doc)
}

// Update applies the supplied fields only. A new password is re-hashed.
func (s *Service) Update(ctx context.Context, id string, req UpdateUserRequest) (User, error) {
	current, err := s.repo.Document(ctx, id)
	if err != nil {
		return User{}, err
	}
	set, roles, err := req.changes(current)
	if err != nil {
		return User{}, err
	}
	if err := s.check(ctx, set, roles, id); err != nil {
		return User{}, err
	}
	if req.Password != nil {
		hash, err := s.hash(*req.Password)
		if err != nil {
			return User{}, err
		}
		set[passwordField] = hash
	}
	return s.repo.Update(ctx, id, set)
}

// Delete soft-deletes a user.
func (s *Service) Delete(ctx context.Context, id string) (User, error) {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) check(ctx context.Context, doc docstore.Document, roles []string, selfID string) error {
	if email, ok := doc["email"]; ok {
		if err := s.checker.Unique(ctx, catalog.Users, "user", "email", email, selfID); err != nil {
			return err
		}
	}
	return s.checker.References(ctx, catalog.Roles, "roles", roles)
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
