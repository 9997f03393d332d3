package projects

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/qaforge/qaforge/internal/platform/httpx"
)

// Handler serves the project endpoints.
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

// MountRoutes registers project routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.With(httpx.Idempotent(h.idempotency, "projects", h.logger)).Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Patch("/{id}", h.update)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), httpx.ListParams(r))
	if err != nil {
		httpx.Fail(w, h.logger, "list projects failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, page.Body("projects"))
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id := httpx.PathID(r)
	project, err := h.service.Get(r.Context(), id, httpx.IncludeDeleted(r))
	if err != nil {
		httpx.Fail(w, h.logger, "get project failed", err, slog.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"project": project})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, h.logger, "decode project", err)
		return
	}
	if err := httpx.ValidateStruct(h.validate, req); err != nil {
		httpx.Fail(w, h.logger, "validate project", err)
		return
	}
	project, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Fail(w, h.logger, "create project failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"project": project})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := httpx.PathID(r)
	var req UpdateProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, h.logger, "decode project", err)
		return
	}
	if err := httpx.ValidateStruct(h.validate, req); err != nil {
		httpx.Fail(w, h.logger, "validate project", err)
		return
	}
	project, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.Fail(w, h.logger, "update project failed", err, slog.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"project": project})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := httpx.PathID(r)
	project, err := h.service.Delete(r.Context(), id)
	if err != nil {
		httpx.Fail(w, h.logger, "delete project failed", err, slog.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"project": project})
}
