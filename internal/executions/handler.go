package executions

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/qaforge/qaforge/internal/platform/httpx"
)

// Handler serves the execution endpoints.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	validate    *validator.Validate
	idempotency httpx.KeyStore
}

// NewHandler builds a Handler. idempotency may be nil.
func NewHandler(logger *slog.Logger, service *Service, idempotency httpx.KeyStore) *Handler {
	return &Handler{logger: logger, service: service, validate: httpx.NewValidator(), idempotency: idempotency}
}

// MountRoutes registers execution routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.With(httpx.Idempotent(h.idempotency, "test-step-executions", h.logger)).Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Patch("/{id}", h.update)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), httpx.ListParams(r))
	if err != nil {
		httpx.Fail(w, h.logger, "list executions failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, page.Body("testStepExecutions"))
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id := httpx.PathID(r)
	execution, err := h.service.Get(r.Context(), id, httpx.IncludeDeleted(r))
	if err != nil {
		httpx.Fail(w, h.logger, "get execution failed", err, slog.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"testStepExecution": execution})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateExecutionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, h.logger, "decode execution", err)
		return
	}
	if err := httpx.ValidateStruct(h.validate, req); err != nil {
		httpx.Fail(w, h.logger, "validate execution", err)
		return
	}
	execution, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Fail(w, h.logger, "create execution failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"testStepExecution": execution})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := httpx.PathID(r)
	var req UpdateExecutionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, h.logger, "decode execution", err)
		return
	}
	if err := httpx.ValidateStruct(h.validate, req); err != nil {
		httpx.Fail(w, h.logger, "validate execution", err)
		return
	}
	execution, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.Fail(w, h.logger, "update execution failed", err, slog.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"testStepExecution": execution})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := httpx.PathID(r)
	execution, err := h.service.Delete(r.Context(), id)
	if err != nil {
		httpx.Fail(w, h.logger, "delete execution failed", err, slog.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"testStepExecution": execution})
}

// ListByStep serves GET /api/test-steps/{id}/executions.
func (h *Handler) ListByStep(w http.ResponseWriter, r *http.Request) {
	stepID := httpx.PathID(r)
	page, err := h.service.ListByStep(r.Context(), stepID, httpx.ListParams(r))
	if err != nil {
		httpx.Fail(w, h.logger, "list step executions failed", err, slog.String("step_id", stepID))
		return
	}
	httpx.JSON(w, http.StatusOK, page.Body("testStepExecutions"))
}
