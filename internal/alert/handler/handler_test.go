package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"rutasegura/internal/alert/models"
	"rutasegura/internal/alert/service"
	"rutasegura/internal/alert/store"
	"rutasegura/pkg/requestcontext"
)

type noopBridge struct{}

func (noopBridge) Navigate(string, map[string]string) {}

func newServer(t *testing.T, st store.Store) *chi.Mux {
	t.Helper()
	svc := service.New(st, noopBridge{})
	h := New(svc, slog.New(slog.DiscardHandler))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func doAs(t *testing.T, r http.Handler, rut, role string, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	ctx := requestcontext.WithUserRUT(req.Context(), rut)
	ctx = requestcontext.WithRole(ctx, role)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func TestPublish(t *testing.T) {
	st := store.NewInMemory()
	srv := newServer(t, st)

	body, _ := json.Marshal(map[string]any{
		"kind":        models.KindTraffic,
		"description": "Atasco en ruta 5",
	})
	req := httptest.NewRequest(http.MethodPost, "/alerts", bytes.NewReader(body))
	rec := doAs(t, srv, "11111111-1", "guardian", req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)

	stored, err := st.Query(req.Context(), store.Filter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestPublishRejectsMissingKind(t *testing.T) {
	srv := newServer(t, store.NewInMemory())

	req := httptest.NewRequest(http.MethodPost, "/alerts", bytes.NewReader([]byte(`{"description":"x"}`)))
	rec := doAs(t, srv, "11111111-1", "guardian", req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedGuardianSeesBroadcastAndTargeted(t *testing.T) {
	st := store.NewInMemory()
	srv := newServer(t, st)
	seed := service.New(st, noopBridge{})

	ctx := requestcontext.WithUserRUT(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "seed")
	_, err := seed.Publish(ctx, service.PublishRequest{Kind: models.KindTraffic, Description: "broadcast"})
	require.NoError(t, err)
	_, err = seed.Publish(ctx, service.PublishRequest{Kind: models.KindChildIssue, Description: "targeted", TargetRUT: "11111111-1"})
	require.NoError(t, err)
	_, err = seed.Publish(ctx, service.PublishRequest{Kind: models.KindChildIssue, Description: "someone else", TargetRUT: "22222222-2"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/alerts/feed", nil)
	rec := doAs(t, srv, "11111111-1", "guardian", req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Alerts []*models.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Alerts, 2)
}

func TestFeedDriverGetsPostulationsOnly(t *testing.T) {
	st := store.NewInMemory()
	srv := newServer(t, st)
	seed := service.New(st, noopBridge{})

	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	_, err := seed.Publish(ctx, service.PublishRequest{Kind: models.KindTraffic, Description: "not for drivers"})
	require.NoError(t, err)
	_, err = seed.Publish(ctx, service.PublishRequest{Kind: models.KindPostulation, Description: "postulacion", DriverRUT: "33333333-3"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/alerts/feed", nil)
	rec := doAs(t, srv, "33333333-3", "driver", req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Alerts []*models.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Alerts, 1)
	require.Equal(t, models.KindPostulation, resp.Alerts[0].Kind)
}

func TestFeedRequiresIdentity(t *testing.T) {
	srv := newServer(t, store.NewInMemory())

	req := httptest.NewRequest(http.MethodGet, "/alerts/feed", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestEmergencyContactReturnsRoute(t *testing.T) {
	srv := newServer(t, store.NewInMemory())

	body := []byte(`{"rutHijo":"22222222-2","rutConductor":"33333333-3"}`)
	req := httptest.NewRequest(http.MethodPost, "/alerts/emergency-contact", bytes.NewReader(body))
	rec := doAs(t, srv, "11111111-1", "guardian", req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Route         string            `json:"route"`
		Params        map[string]string `json:"params"`
		AlertRecorded bool              `json:"alertRecorded"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.RouteChatValidation, resp.Route)
	require.Equal(t, "11111111-1", resp.Params[models.ParamGuardianRUT])
	require.Equal(t, "33333333-3", resp.Params[models.ParamDriverRUT])
	require.Equal(t, "22222222-2", resp.Params[models.ParamDependentRUT])
	require.True(t, resp.AlertRecorded)
}

type failingStore struct{}

func (failingStore) Append(context.Context, *models.Alert) error { return errors.New("down") }
func (failingStore) Query(context.Context, store.Filter) ([]*models.Alert, error) {
	return nil, errors.New("down")
}

func TestEmergencyContactNavigatesDespiteStoreFailure(t *testing.T) {
	srv := newServer(t, failingStore{})

	body := []byte(`{"rutHijo":"22222222-2","rutConductor":"33333333-3"}`)
	req := httptest.NewRequest(http.MethodPost, "/alerts/emergency-contact", bytes.NewReader(body))
	rec := doAs(t, srv, "11111111-1", "guardian", req)

	// The chat route still comes back; only the recorded flag changes.
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Route         string `json:"route"`
		AlertRecorded bool   `json:"alertRecorded"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.RouteChatValidation, resp.Route)
	require.False(t, resp.AlertRecorded)
}
