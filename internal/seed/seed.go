// Package seed writes the demo dataset used by local environments.
package seed

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/rbac"
)

// DemoProjectName marks the demo project; seeding stops early when it exists.
const DemoProjectName = "Alpha"

// Options tune the demo dataset.
type Options struct {
	// Password for the seeded local users.
	Password string
	// HashCost for bcrypt; zero uses bcrypt.DefaultCost.
	HashCost int
}

// Result counts created documents per collection.
type Result struct {
	Created map[string]int
	// Skipped is true when the demo project already existed.
	Skipped bool
}

func (r *Result) add(collection string) {
	if r.Created == nil {
		r.Created = make(map[string]int)
	}
	r.Created[collection]++
}

type seeder struct {
	store  docstore.Store
	result Result
}

func (s *seeder) insert(ctx context.Context, collection string, doc docstore.Document) (string, error) {
	stored, err := s.store.Insert(ctx, collection, doc)
	if err != nil {
		return "", fmt.Errorf("seed %s: %w", collection, err)
	}
	s.result.add(collection)
	return stored.ID(), nil
}

// findOne returns the id of the first document with field == value.
func (s *seeder) findOne(ctx context.Context, collection, field string, value any) (string, error) {
	docs, err := s.store.Find(ctx, collection, docstore.Query{
		Filter: docstore.Filter{docstore.Eq(field, value)},
		Limit:  1,
		Fields: []string{docstore.FieldID},
	})
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", nil
	}
	return docs[0].ID(), nil
}

// Demo resets the permission catalog and writes a small project with a test
// plan, steps, executions, a viewer role and two users. It is idempotent.
func Demo(ctx context.Context, store docstore.Store, opts Options) (Result, error) {
	s := &seeder{store: store}
	reset, err := rbac.Reset(ctx, store)
	if err != nil {
		return s.result, err
	}
	for i := 0; i < reset.Created; i++ {
		s.result.add(catalog.Permissions)
	}

	existing, err := s.findOne(ctx, catalog.Projects, "name", DemoProjectName)
	if err != nil {
		return s.result, err
	}
	if existing != "" {
		s.result.Skipped = true
		return s.result, nil
	}

	viewerID, err := s.viewerRole(ctx)
	if err != nil {
		return s.result, err
	}
	hash, err := hashPassword(opts)
	if err != nil {
		return s.result, err
	}
	adminUser, err := s.user(ctx, "Ada Admin", "admin@qaforge.local", hash, reset.AdminID)
	if err != nil {
		return s.result, err
	}
	viewerUser, err := s.user(ctx, "Vic Viewer", "viewer@qaforge.local", hash, viewerID)
	if err != nil {
		return s.result, err
	}

	projectID, err := s.insert(ctx, catalog.Projects, docstore.Document{
		"name":        DemoProjectName,
		"description": "Demo project",
	})
	if err != nil {
		return s.result, err
	}
	planID, err := s.insert(ctx, catalog.TestPlans, docstore.Document{
		"name":        "Smoke",
		"description": "Smoke checks for every release",
		"project_id":  projectID,
		"created_by":  adminUser,
		"steps":       []any{},
	})
	if err != nil {
		return s.result, err
	}

	steps := []struct{ name, expected, status string }{
		{"Open login page", "Login form is shown", "pass"},
		{"Sign in with valid credentials", "Dashboard is shown", "fail"},
		{"Sign out", "Login form is shown again", "not_executed"},
	}
	stepIDs := make([]any, 0, len(steps))
	for _, step := range steps {
		stepID, err := s.insert(ctx, catalog.TestSteps, docstore.Document{
			"name":            step.name,
			"expected_result": step.expected,
			"test_plan_id":    planID,
		})
		if err != nil {
			return s.result, err
		}
		stepIDs = append(stepIDs, stepID)
		if _, err := s.insert(ctx, catalog.TestExecutions, docstore.Document{
			"test_step_id": stepID,
			"executed_by":  viewerUser,
			"status":       step.status,
		}); err != nil {
			return s.result, err
		}
	}
	if _, err := store.Update(ctx, catalog.TestPlans, planID, docstore.Document{"steps": stepIDs}); err != nil {
		return s.result, fmt.Errorf("seed plan steps: %w", err)
	}
	return s.result, nil
}

func (s *seeder) viewerRole(ctx context.Context) (string, error) {
	id, err := s.findOne(ctx, catalog.Roles, "key", "viewer")
	if err != nil || id != "" {
		return id, err
	}
	var viewKeys []string
	for _, key := range rbac.CatalogKeys() {
		if strings.HasPrefix(key, rbac.ActView) {
			viewKeys = append(viewKeys, key)
		}
	}
	perms, err := s.store.Find(ctx, catalog.Permissions, docstore.Query{
		Filter: docstore.Filter{docstore.In("key", viewKeys)},
		Fields: []string{docstore.FieldID},
	})
	if err != nil {
		return "", err
	}
	ids := make([]any, 0, len(perms))
	for _, p := range perms {
		ids = append(ids, p.ID())
	}
	return s.insert(ctx, catalog.Roles, docstore.Document{
		"name":        "Viewer",
		"key":         "viewer",
		"permissions": ids,
	})
}

func (s *seeder) user(ctx context.Context, name, email, hash, roleID string) (string, error) {
	id, err := s.findOne(ctx, catalog.Users, "email", email)
	if err != nil || id != "" {
		return id, err
	}
	return s.insert(ctx, catalog.Users, docstore.Document{
		"name":     name,
		"email":    email,
		"password": hash,
		"provider": "local",
		"roles":    []any{roleID},
	})
}

func hashPassword(opts Options) (string, error) {
	password := opts.Password
	if password == "" {
		password = "qaforge-demo"
	}
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash demo password: %w", err)
	}
	return string(hash), nil
}
