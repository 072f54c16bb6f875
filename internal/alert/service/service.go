// Package service implements alert publishing and the pull-based feed
// pipeline. Every read is a fresh snapshot of the store: there is no
// subscription, no local cache, and a publish may or may not be visible in
// the very next fetch.
package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"rutasegura/internal/alert/metrics"
	"rutasegura/internal/alert/models"
	"rutasegura/internal/alert/store"
	dErrors "rutasegura/pkg/domain-errors"
	"rutasegura/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks NavigationBridge,DependentDirectory

// postulationFeedCap bounds the driver postulation feed. Presentation
// policy only; the store keeps everything.
const postulationFeedCap = 10

// NavigationBridge resolves a route plus parameters into a screen
// transition on the client. The core calls it with values pulled verbatim
// off an alert and never validates route legality.
type NavigationBridge interface {
	Navigate(route string, params map[string]string)
}

// DependentDirectory resolves a dependent's display name for alert text.
type DependentDirectory interface {
	DisplayName(ctx context.Context, rut string) (string, error)
}

// Service is the alert publisher and feed reader.
type Service struct {
	store      store.Store
	bridge     NavigationBridge
	dependents DependentDirectory
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithDependentDirectory(d DependentDirectory) Option {
	return func(s *Service) { s.dependents = d }
}

// New constructs a Service.
func New(st store.Store, bridge NavigationBridge, opts ...Option) *Service {
	s := &Service{
		store:  st,
		bridge: bridge,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PublishRequest carries the inputs for a simple alert creation.
type PublishRequest struct {
	Kind        string
	Description string
	TargetRUT   string
	DriverRUT   string
	Route       string
	RouteParams map[string]string
}

// Publish appends exactly one alert and returns its ID. The creation
// timestamp is stamped server-side in canonical form. No retry: a failed
// write surfaces to the caller, and composition adds retries if it wants
// them.
func (s *Service) Publish(ctx context.Context, req PublishRequest) (string, error) {
	alert := &models.Alert{
		ID:          uuid.NewString(),
		Kind:        req.Kind,
		Description: req.Description,
		CreatedAt:   models.NewTimestamp(requestcontext.Now(ctx)),
		TargetRUT:   req.TargetRUT,
		DriverRUT:   req.DriverRUT,
		Route:       req.Route,
		RouteParams: req.RouteParams,
	}
	if err := alert.Validate(); err != nil {
		return "", err
	}
	if err := s.store.Append(ctx, alert); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to publish alert")
	}
	s.incrementAlertsPublished()
	return alert.ID, nil
}

// NavigationTarget is the route handoff produced by an emergency contact.
type NavigationTarget struct {
	Route  string            `json:"route"`
	Params map[string]string `json:"params"`
}

// PublishEmergencyContact records the escalation as a durable alert
// targeted at the guardian and hands the chat route to the navigation
// bridge. The alert is a side-channel notification, not a gate: navigation
// happens with the identical parameters whether or not the publish
// succeeded, and the publish error is returned only so the caller can show
// a notice.
func (s *Service) PublishEmergencyContact(ctx context.Context, childRUT, guardianRUT, driverRUT string) (NavigationTarget, error) {
	params := map[string]string{
		models.ParamGuardianRUT:  guardianRUT,
		models.ParamDriverRUT:    driverRUT,
		models.ParamDependentRUT: childRUT,
	}
	target := NavigationTarget{Route: models.RouteChatValidation, Params: params}

	if childRUT == "" || guardianRUT == "" || driverRUT == "" {
		return target, dErrors.New(dErrors.CodeMissingIdentity, "emergency contact requires child, guardian and driver identifiers")
	}

	description := "Solicitan hablar sobre el menor."
	if s.dependents != nil {
		if name, err := s.dependents.DisplayName(ctx, childRUT); err == nil && name != "" {
			description = "Solicitan hablar sobre " + name + "."
		}
	}

	read := false
	alert := &models.Alert{
		ID:          uuid.NewString(),
		Kind:        models.KindEmergency,
		Description: description,
		CreatedAt:   models.NewTimestamp(requestcontext.Now(ctx)),
		TargetRUT:   guardianRUT,
		Route:       models.RouteChatValidation,
		RouteParams: params,
		Read:        &read,
	}

	var publishErr error
	if err := s.store.Append(ctx, alert); err != nil {
		publishErr = dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to record emergency contact alert")
		s.logger.ErrorContext(ctx, "emergency contact alert not recorded",
			"request_id", requestcontext.RequestID(ctx),
			"guardian_rut", guardianRUT,
			"error", err,
		)
	} else {
		s.incrementAlertsPublished()
	}
	s.incrementEmergencyContacts()

	s.bridge.Navigate(target.Route, target.Params)
	return target, publishErr
}

// FeedRequest describes one feed fetch.
type FeedRequest struct {
	// ActiveRUT is the identity reading the feed; required.
	ActiveRUT string
	// Filter is pushed down to the store (equality predicates only).
	Filter store.Filter
	// Cap bounds the result after sorting; zero means uncapped.
	Cap int
}

// FetchFeed materializes one role-appropriate, ordered, bounded feed:
// query, visibility filter, sort by creation time descending, cap. The
// result is a finite snapshot; call again to observe new data. A store
// failure yields an empty feed plus an error, never a panic.
func (s *Service) FetchFeed(ctx context.Context, req FeedRequest) ([]*models.Alert, error) {
	if req.ActiveRUT == "" {
		return nil, dErrors.New(dErrors.CodeMissingIdentity, "no active user for feed")
	}
	start := time.Now()
	defer s.observeFeedFetch(start)

	alerts, err := s.store.Query(ctx, req.Filter)
	if err != nil {
		s.incrementFeedFetchFailures()
		s.logger.ErrorContext(ctx, "feed query failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to load alerts")
	}

	visible := alerts[:0]
	for _, a := range alerts {
		if a.VisibleTo(req.ActiveRUT) {
			visible = append(visible, a)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.Compare(visible[j].CreatedAt) > 0
	})

	if req.Cap > 0 && len(visible) > req.Cap {
		visible = visible[:req.Cap]
	}
	return visible, nil
}

// GuardianFeed is the broadcast-style feed on the guardian home screen:
// no server-side predicates, no cap.
func (s *Service) GuardianFeed(ctx context.Context, guardianRUT string) ([]*models.Alert, error) {
	return s.FetchFeed(ctx, FeedRequest{ActiveRUT: guardianRUT})
}

// DriverFeed is the postulation feed: pre-filtered server-side to
// postulation alerts addressed to this driver, capped to the ten most
// recent.
func (s *Service) DriverFeed(ctx context.Context, driverRUT string) ([]*models.Alert, error) {
	return s.FetchFeed(ctx, FeedRequest{
		ActiveRUT: driverRUT,
		Filter:    store.Filter{Kind: models.KindPostulation, DriverRUT: driverRUT},
		Cap:       postulationFeedCap,
	})
}

func (s *Service) incrementAlertsPublished() {
	if s.metrics != nil {
		s.metrics.IncrementAlertsPublished()
	}
}

func (s *Service) incrementEmergencyContacts() {
	if s.metrics != nil {
		s.metrics.IncrementEmergencyContacts()
	}
}

func (s *Service) incrementFeedFetchFailures() {
	if s.metrics != nil {
		s.metrics.IncrementFeedFetchFailures()
	}
}

func (s *Service) observeFeedFetch(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveFeedFetch(start)
	}
}
