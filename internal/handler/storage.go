package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vivekraina7/Windows-Error/internal/storage"
)

const maxStorageValueBytes = 64 * 1024

// StorageHandler exposes the page key-value store over HTTP, standing in
// for the browser's local storage: pages stash JSON values under string
// keys and read them back with a default on miss.
type StorageHandler struct {
	store *storage.Store
}

// NewStorageHandler creates a storage handler.
func NewStorageHandler(store *storage.Store) *StorageHandler {
	return &StorageHandler{store: store}
}

type storageValue struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Get handles GET /api/v1/storage/{key}
func (h *StorageHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := validateStorageKey(key); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var value json.RawMessage
	if !h.store.Get(r.Context(), key, &value) {
		writeError(w, http.StatusNotFound, "key not found")
		return
	}

	writeJSON(w, http.StatusOK, storageValue{Key: key, Value: value})
}

// Put handles PUT /api/v1/storage/{key}. The body is the value, any JSON.
func (h *StorageHandler) Put(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := validateStorageKey(key); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxStorageValueBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) > maxStorageValueBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "value exceeds maximum size")
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "value must be valid JSON")
		return
	}

	h.store.Put(r.Context(), key, json.RawMessage(body))
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/storage/{key}
func (h *StorageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := validateStorageKey(key); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.store.Delete(r.Context(), key)
	w.WriteHeader(http.StatusNoContent)
}

func validateStorageKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > 128 {
		return errors.New("key exceeds maximum length")
	}
	return nil
}
