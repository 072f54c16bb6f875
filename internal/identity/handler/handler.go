// Package handler manages the guardian's active dependent selection.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rutasegura/internal/identity"
	"rutasegura/internal/identity/store"
	dErrors "rutasegura/pkg/domain-errors"
	"rutasegura/pkg/platform/httputil"
	"rutasegura/pkg/platform/sentinel"
)

type Handler struct {
	selections store.SelectionStore
	logger     *slog.Logger
}

func New(selections store.SelectionStore, logger *slog.Logger) *Handler {
	return &Handler{selections: selections, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/me", func(r chi.Router) {
		r.Get("/", h.me)
		r.Put("/dependent", h.selectDependent)
		r.Delete("/dependent", h.clearDependent)
	})
}

type meResponse struct {
	RUT               string `json:"rut"`
	Role              string `json:"role"`
	SelectedDependent string `json:"selectedDependent,omitempty"`
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id, err := identity.FromRequest(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	resp := meResponse{RUT: id.UserRUT, Role: string(id.Role)}
	if id.Role == identity.RoleGuardian {
		selected, err := h.selections.ActiveDependent(r.Context(), id.UserRUT)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "loading selection"))
			return
		}
		resp.SelectedDependent = selected
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type selectRequest struct {
	DependentRUT string `json:"rut"`
}

func (h *Handler) selectDependent(w http.ResponseWriter, r *http.Request) {
	id, err := identity.FromRequest(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if id.Role != identity.RoleGuardian {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "only guardians select dependents"))
		return
	}
	req, ok := httputil.Decode[selectRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.DependentRUT == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "dependent rut is required"))
		return
	}
	if err := h.selections.SetActiveDependent(r.Context(), id.UserRUT, req.DependentRUT); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "saving selection"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearDependent(w http.ResponseWriter, r *http.Request) {
	id, err := identity.FromRequest(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.selections.ClearActiveDependent(r.Context(), id.UserRUT); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "clearing selection"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
