package app

import (
	"log/slog"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/executions"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/permissions"
	"github.com/qaforge/qaforge/internal/platform/httpx"
	"github.com/qaforge/qaforge/internal/projects"
	"github.com/qaforge/qaforge/internal/rbac"
	"github.com/qaforge/qaforge/internal/roles"
	"github.com/qaforge/qaforge/internal/shared"
	"github.com/qaforge/qaforge/internal/testplans"
	"github.com/qaforge/qaforge/internal/teststeps"
	"github.com/qaforge/qaforge/internal/users"
)

// Handlers groups the entity HTTP handlers.
type Handlers struct {
	Projects    *projects.Handler
	TestPlans   *testplans.Handler
	TestSteps   *teststeps.Handler
	Executions  *executions.Handler
	Permissions *permissions.Handler
	Roles       *roles.Handler
	Users       *users.Handler
}

// HandlerDeps collects what the entity packages need.
type HandlerDeps struct {
	Logger      *slog.Logger
	Store       docstore.Store
	Idempotency httpx.KeyStore
	// IncludeDeletedGrants counts soft-deleted roles and permissions when
	// computing effective permissions.
	IncludeDeletedGrants bool
	BcryptCost           int
}

// NewHandlers wires repositories, services and handlers for every entity.
func NewHandlers(deps HandlerDeps) Handlers {
	store := deps.Store
	checker := shared.NewChecker(store)
	resolver := rbac.NewResolver(listquery.NewEngine(store), rbac.Aggregator{IncludeDeleted: deps.IncludeDeletedGrants})
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return Handlers{
		Projects: projects.NewHandler(logger,
			projects.NewService(projects.NewRepository(store)), deps.Idempotency),
		TestPlans: testplans.NewHandler(logger,
			testplans.NewService(testplans.NewRepository(store), checker), deps.Idempotency),
		TestSteps: teststeps.NewHandler(logger,
			teststeps.NewService(teststeps.NewRepository(store), checker), deps.Idempotency),
		Executions: executions.NewHandler(logger,
			executions.NewService(executions.NewRepository(store), checker), deps.Idempotency),
		Permissions: permissions.NewHandler(logger,
			permissions.NewService(permissions.NewRepository(store), checker), deps.Idempotency),
		Roles: roles.NewHandler(logger,
			roles.NewService(roles.NewRepository(store), checker), deps.Idempotency),
		Users: users.NewHandler(logger,
			users.NewService(users.NewRepository(store), checker, resolver, deps.BcryptCost), deps.Idempotency),
	}
}
