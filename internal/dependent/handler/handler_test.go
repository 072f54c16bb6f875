package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"rutasegura/internal/dependent/models"
	dependentservice "rutasegura/internal/dependent/service"
	"rutasegura/internal/dependent/store"
	"rutasegura/internal/medrecord/codec"
	medrecordservice "rutasegura/internal/medrecord/service"
	"rutasegura/pkg/requestcontext"
)

const guardianRUT = "11111111-1"

func newServer(t *testing.T, mem *store.InMemory) *chi.Mux {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	h := New(dependentservice.New(mem), medrecordservice.New(mem), logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func getAs(t *testing.T, r http.Handler, rut, path string) *httptest.ResponseRecorder {
	t.Helper()
	return getWithRole(t, r, rut, "guardian", path)
}

func getWithRole(t *testing.T, r http.Handler, rut, role, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	ctx := requestcontext.WithUserRUT(req.Context(), rut)
	ctx = requestcontext.WithRole(ctx, role)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func TestListDependents(t *testing.T) {
	mem := store.NewInMemory()
	require.NoError(t, mem.Put(context.Background(), &models.Dependent{RUT: "22222222-2", GuardianRUT: guardianRUT}))
	require.NoError(t, mem.Put(context.Background(), &models.Dependent{RUT: "33333333-3", GuardianRUT: "99999999-9"}))
	srv := newServer(t, mem)

	rec := getAs(t, srv, guardianRUT, "/dependents/")

	require.Equal(t, http.StatusOK, rec.Code)
	var list []*models.Dependent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "22222222-2", list[0].RUT)
}

func TestGetDependent(t *testing.T) {
	mem := store.NewInMemory()
	require.NoError(t, mem.Put(context.Background(), &models.Dependent{
		RUT: "22222222-2", FirstNames: "Pedro", GuardianRUT: guardianRUT,
	}))
	srv := newServer(t, mem)

	rec := getAs(t, srv, guardianRUT, "/dependents/22222222-2")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = getAs(t, srv, guardianRUT, "/dependents/99999999-9")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMedicalRecord(t *testing.T) {
	body := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 ficha"))
	sealed, err := codec.Encrypt([]byte(body), guardianRUT)
	require.NoError(t, err)

	mem := store.NewInMemory()
	require.NoError(t, mem.Put(context.Background(), &models.Dependent{
		RUT:         "22222222-2",
		GuardianRUT: guardianRUT,
		MedicalRecord: &models.MedicalRecord{
			FileName:   "ficha.pdf",
			CipherText: sealed,
		},
	}))
	require.NoError(t, mem.Put(context.Background(), &models.Dependent{
		RUT: "33333333-3", GuardianRUT: guardianRUT,
	}))
	srv := newServer(t, mem)

	rec := getAs(t, srv, guardianRUT, "/dependents/22222222-2/medical-record")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		FileName string `json:"fileName"`
		DataURI  string `json:"dataUri"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, "ficha.pdf", doc.FileName)
	require.Contains(t, doc.DataURI, "data:application/pdf;base64,")

	// The key comes off the record, not the viewer: a driver opens it too.
	rec = getWithRole(t, srv, "55555555-5", "driver", "/dependents/22222222-2/medical-record")
	require.Equal(t, http.StatusOK, rec.Code)

	// No document on file is 404.
	rec = getAs(t, srv, guardianRUT, "/dependents/33333333-3/medical-record")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
