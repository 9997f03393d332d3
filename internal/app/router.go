package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qaforge/qaforge/internal/observability"
	"github.com/qaforge/qaforge/internal/platform/httpx"
	"github.com/qaforge/qaforge/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger     *slog.Logger
	Config     *Config
	Handlers   Handlers
	JobHandler *jobs.Handler
	Metrics    *observability.Metrics
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", "")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	h := params.Handlers
	r.Route("/api", func(r chi.Router) {
		if h.Projects != nil {
			r.Route("/projects", h.Projects.MountRoutes)
		}
		if h.TestPlans != nil {
			r.Route("/test-plans", func(r chi.Router) {
				h.TestPlans.MountRoutes(r)
				if h.TestSteps != nil {
					r.Get("/{id}/steps", h.TestSteps.ListByPlan)
				}
			})
		}
		if h.TestSteps != nil {
			r.Route("/test-steps", func(r chi.Router) {
				h.TestSteps.MountRoutes(r)
				if h.Executions != nil {
					r.Get("/{id}/executions", h.Executions.ListByStep)
				}
			})
		}
		if h.Executions != nil {
			r.Route("/test-step-executions", h.Executions.MountRoutes)
		}
		if h.Permissions != nil {
			r.Route("/permissions", h.Permissions.MountRoutes)
		}
		if h.Roles != nil {
			r.Route("/roles", h.Roles.MountRoutes)
		}
		if h.Users != nil {
			r.Route("/users", h.Users.MountRoutes)
		}
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
