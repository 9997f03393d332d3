package permissions

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/qaforge/qaforge/internal/platform/httpx"
)

// Handler serves the permission endpoints.
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

// MountRoutes registers permission routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.With(httpx.Idempotent(h.idempotency, "permissions", h.logger)).Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Patch("/{id}", h.update)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), httpx.ListParams(r))
	if err != nil {
		httpx.Fail(w, h.logger, "list permissions failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, page.Body("permissions"))
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id := httpx.PathID(r)
	permission, err := h.service.Get(r.Context(), id, httpx.IncludeDeleted(r))
	if err != nil {
		httpx.Fail(w, h.logger, "get permission failed", err, slog.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"permission": permission})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreatePermissionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, h.logger, "decode permission", err)
		return
	}
	if err := httpx.ValidateStruct(h.validate, req); err != nil {
		httpx.Fail(w, h.logger, "validate permission", err)
		return
	}
	permission, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Fail(w, h.logger, "create permission failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"permission": permission})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := httpx.PathID(r)
	var req UpdatePermissionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, h.logger, "decode permission", err)
		return
	}
	if err := httpx.ValidateStruct(h.validate, req); err != nil {
		httpx.Fail(w, h.logger, "validate permission", err)
		return
	}
	permission, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.Fail(w, h.logger, "update permission failed", err, slog.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"permission": permission})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := httpx.PathID(r)
	permission, err := h.service.Delete(r.Context(), id)
	if err != nil {
		httpx.Fail(w, h.logger, "delete permission failed", err, slog.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"permission": permission})
}
