// Package handler exposes alert publishing and the poll-based feeds over
// HTTP. Feeds are plain GETs returning a snapshot; clients poll, there is
// no push channel.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rutasegura/internal/alert/models"
	"rutasegura/internal/alert/service"
	"rutasegura/internal/identity"
	dErrors "rutasegura/pkg/domain-errors"
	"rutasegura/pkg/platform/httputil"
)

type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/alerts", func(r chi.Router) {
		r.Post("/", h.publish)
		r.Get("/feed", h.feed)
		r.Post("/emergency-contact", h.emergencyContact)
	})
}

type publishRequest struct {
	Kind        string            `json:"kind"`
	Description string            `json:"description"`
	TargetRUT   string            `json:"targetUserId"`
	DriverRUT   string            `json:"driverId"`
	Route       string            `json:"route"`
	RouteParams map[string]string `json:"routeParams"`
}

type publishResponse struct {
	ID string `json:"id"`
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[publishRequest](w, r, h.logger)
	if !ok {
		return
	}
	id, err := h.service.Publish(r.Context(), service.PublishRequest{
		Kind:        req.Kind,
		Description: req.Description,
		TargetRUT:   req.TargetRUT,
		DriverRUT:   req.DriverRUT,
		Route:       req.Route,
		RouteParams: req.RouteParams,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, publishResponse{ID: id})
}

type feedResponse struct {
	Alerts []*models.Alert `json:"alerts"`
}

// feed returns the role-appropriate feed for the authenticated user:
// guardians get the unfiltered broadcast feed, drivers the capped
// postulation feed.
func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	id, err := identity.FromRequest(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var alerts []*models.Alert
	switch id.Role {
	case identity.RoleDriver:
		alerts, err = h.service.DriverFeed(r.Context(), id.UserRUT)
	default:
		alerts, err = h.service.GuardianFeed(r.Context(), id.UserRUT)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if alerts == nil {
		alerts = []*models.Alert{}
	}
	httputil.WriteJSON(w, http.StatusOK, feedResponse{Alerts: alerts})
}

type emergencyContactRequest struct {
	DependentRUT string `json:"rutHijo"`
	DriverRUT    string `json:"rutConductor"`
}

type emergencyContactResponse struct {
	Route         string            `json:"route"`
	Params        map[string]string `json:"params"`
	AlertRecorded bool              `json:"alertRecorded"`
}

// emergencyContact records the escalation and returns the chat route the
// client must navigate to. The route is returned even when recording the
// alert failed; alertRecorded tells the client whether to show a notice.
func (h *Handler) emergencyContact(w http.ResponseWriter, r *http.Request) {
	id, err := identity.FromRequest(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.Decode[emergencyContactRequest](w, r, h.logger)
	if !ok {
		return
	}

	target, err := h.service.PublishEmergencyContact(r.Context(), req.DependentRUT, id.UserRUT, req.DriverRUT)
	if err != nil && !dErrors.HasCode(err, dErrors.CodeStoreUnavailable) {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, emergencyContactResponse{
		Route:         target.Route,
		Params:        target.Params,
		AlertRecorded: err == nil,
	})
}
