// Package home assembles the guardian home screen: the dependents under
// the guardian, the currently selected dependent, and the broadcast alert
// feed, loaded concurrently and returned in one payload.
package home

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	alertmodels "rutasegura/internal/alert/models"
	alertservice "rutasegura/internal/alert/service"
	dependentmodels "rutasegura/internal/dependent/models"
	dependentservice "rutasegura/internal/dependent/service"
	"rutasegura/internal/identity"
	identitystore "rutasegura/internal/identity/store"
	"rutasegura/pkg/platform/httputil"
	"rutasegura/pkg/platform/sentinel"
)

type Handler struct {
	alerts     *alertservice.Service
	dependents *dependentservice.Service
	selections identitystore.SelectionStore
	logger     *slog.Logger
}

func New(alerts *alertservice.Service, dependents *dependentservice.Service, selections identitystore.SelectionStore, logger *slog.Logger) *Handler {
	return &Handler{alerts: alerts, dependents: dependents, selections: selections, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/home", h.home)
}

type response struct {
	Dependents        []*dependentmodels.Dependent `json:"dependents"`
	SelectedDependent string                       `json:"selectedDependent,omitempty"`
	Alerts            []*alertmodels.Alert         `json:"alerts"`
}

// home loads the three sections in parallel. The sections are independent
// reads; one request fans out, the first failure cancels the rest.
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	id, err := identity.FromRequest(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var resp response
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		list, err := h.dependents.ListByGuardian(ctx, id.UserRUT)
		if err != nil {
			return err
		}
		resp.Dependents = list
		return nil
	})
	g.Go(func() error {
		alerts, err := h.alerts.GuardianFeed(ctx, id.UserRUT)
		if err != nil {
			return err
		}
		resp.Alerts = alerts
		return nil
	})
	g.Go(func() error {
		selected, err := h.selections.ActiveDependent(ctx, id.UserRUT)
		if err != nil {
			// No selection yet is a normal home-screen state.
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return err
		}
		resp.SelectedDependent = selected
		return nil
	})
	if err := g.Wait(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if resp.Dependents == nil {
		resp.Dependents = []*dependentmodels.Dependent{}
	}
	if resp.Alerts == nil {
		resp.Alerts = []*alertmodels.Alert{}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
