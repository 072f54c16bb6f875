// Package handler serves dependent records and their medical documents.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dependentservice "rutasegura/internal/dependent/service"
	"rutasegura/internal/identity"
	medrecordservice "rutasegura/internal/medrecord/service"
	"rutasegura/pkg/platform/httputil"
)

type Handler struct {
	dependents *dependentservice.Service
	documents  *medrecordservice.Service
	logger     *slog.Logger
}

func New(dependents *dependentservice.Service, documents *medrecordservice.Service, logger *slog.Logger) *Handler {
	return &Handler{dependents: dependents, documents: documents, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/dependents", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{rut}", h.get)
		r.Get("/{rut}/medical-record", h.medicalRecord)
	})
}

// list returns the authenticated guardian's dependents.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, err := identity.FromRequest(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.dependents.ListByGuardian(r.Context(), id.UserRUT)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	if _, err := identity.FromRequest(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	dep, err := h.dependents.Get(r.Context(), chi.URLParam(r, "rut"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dep)
}

// medicalRecord decrypts and serves the dependent's medical document. The
// passphrase derives from the guardian stored on the record, so drivers
// viewing a child on their route can open it too.
func (h *Handler) medicalRecord(w http.ResponseWriter, r *http.Request) {
	if _, err := identity.FromRequest(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	doc, err := h.documents.Fetch(r.Context(), chi.URLParam(r, "rut"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}
