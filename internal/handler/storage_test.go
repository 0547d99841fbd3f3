package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/vivekraina7/Windows-Error/internal/storage"
)

func newStorageRouter(t *testing.T) *chi.Mux {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "widget.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewStorageHandler(store)
	r := chi.NewRouter()
	r.Route("/api/v1/storage/{key}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Put)
		r.Delete("/", h.Delete)
	})
	return r
}

func putValue(t *testing.T, router http.Handler, key, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/storage/"+key, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStoragePutGetRoundtrip(t *testing.T) {
	router := newStorageRouter(t)

	rec := putValue(t, router, "widget-prefs", `{"theme":"dark","expanded":true}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec2 := doJSON(t, router, http.MethodGet, "/api/v1/storage/widget-prefs", nil)
	require.Equal(t, http.StatusOK, rec2.Code)

	var resp storageValue
	require.NoError(t, json.NewDecoder(rec2.Body).Decode(&resp))
	require.Equal(t, "widget-prefs", resp.Key)
	require.JSONEq(t, `{"theme":"dark","expanded":true}`, string(resp.Value))
}

func TestStorageGetMissing(t *testing.T) {
	router := newStorageRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/storage/absent", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoragePutRejectsInvalidJSON(t *testing.T) {
	router := newStorageRouter(t)

	rec := putValue(t, router, "broken", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoragePutRejectsOversizedValue(t *testing.T) {
	router := newStorageRouter(t)

	big := `"` + strings.Repeat("x", maxStorageValueBytes) + `"`
	rec := putValue(t, router, "big", big)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestStorageDelete(t *testing.T) {
	router := newStorageRouter(t)

	putValue(t, router, "ephemeral", `"value"`)

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/storage/ephemeral", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/storage/ephemeral", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Deleting again is still a 204.
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/storage/ephemeral", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStorageKeyLengthLimit(t *testing.T) {
	router := newStorageRouter(t)

	long := strings.Repeat("k", 129)
	rec := putValue(t, router, long, `1`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
