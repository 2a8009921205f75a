// Package handlers implements the reference server's HTTP surface:
// the resource-oriented entity endpoints the engine's wire contract
// depends on, plus the health endpoint.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/clinicore/syncengine/internal/server/storage"
	"github.com/clinicore/syncengine/pkg/api"
)

// EntitiesHandler serves the versioned entity CRUD endpoints
type EntitiesHandler struct {
	logger  *slog.Logger
	storage storage.EntityStorage
}

// NewEntitiesHandler creates a new entities handler
func NewEntitiesHandler(logger *slog.Logger, store storage.EntityStorage) *EntitiesHandler {
	return &EntitiesHandler{
		logger:  logger,
		storage: store,
	}
}

// Register wires the handler's routes onto the mux
func (h *EntitiesHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/{entityType}", h.handleCreate)
	mux.HandleFunc("GET /api/v1/{entityType}", h.handleList)
	mux.HandleFunc("GET /api/v1/{entityType}/{id}", h.handleGet)
	mux.HandleFunc("PUT /api/v1/{entityType}/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/v1/{entityType}/{id}", h.handleDelete)
}

// handleCreate handles POST /api/v1/{entityType}
func (h *EntitiesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWrite(w, r, true)
	if !ok {
		return
	}

	record, err := h.storage.CreateEntity(r.Context(), r.PathValue("entityType"), *req)
	if err != nil {
		h.writeStorageError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, api.WriteResponse{Record: *record})
}

// handleUpdate handles PUT /api/v1/{entityType}/{id}
func (h *EntitiesHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWrite(w, r, true)
	if !ok {
		return
	}

	record, err := h.storage.UpdateEntity(r.Context(), r.PathValue("entityType"), r.PathValue("id"), *req)
	if err != nil {
		h.writeStorageError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.WriteResponse{Record: *record})
}

// handleDelete handles DELETE /api/v1/{entityType}/{id}
func (h *EntitiesHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWrite(w, r, false)
	if !ok {
		return
	}

	record, err := h.storage.DeleteEntity(r.Context(), r.PathValue("entityType"), r.PathValue("id"), *req)
	if err != nil {
		h.writeStorageError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.WriteResponse{Record: *record})
}

// handleGet handles GET /api/v1/{entityType}/{id}
func (h *EntitiesHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.storage.GetEntity(r.Context(), r.PathValue("entityType"), r.PathValue("id"))
	if err != nil {
		h.writeStorageError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, record)
}

// handleList handles GET /api/v1/{entityType}
func (h *EntitiesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.storage.ListEntities(r.Context(), r.PathValue("entityType"))
	if err != nil {
		h.writeStorageError(w, r, err)
		return
	}

	if records == nil {
		records = []api.EntityRecord{}
	}
	h.writeJSON(w, http.StatusOK, records)
}

// decodeWrite parses and validates a write body. requireData is false
// for deletes, which carry only the token and base version.
func (h *EntitiesHandler) decodeWrite(w http.ResponseWriter, r *http.Request, requireData bool) (*api.WriteRequest, bool) {
	var req api.WriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_body", "failed to decode request body")
		return nil, false
	}

	if req.IdempotencyToken == "" {
		h.writeError(w, http.StatusBadRequest, "missing_token", "idempotency_token is required")
		return nil, false
	}
	if requireData && !json.Valid(req.Data) {
		h.writeError(w, http.StatusUnprocessableEntity, "invalid_payload", "data is not valid JSON")
		return nil, false
	}

	return &req, true
}

func (h *EntitiesHandler) writeStorageError(w http.ResponseWriter, r *http.Request, err error) {
	var conflictErr *storage.VersionConflictError
	switch {
	case errors.As(err, &conflictErr):
		h.writeJSON(w, http.StatusConflict, api.ConflictResponse{
			Message: conflictErr.Error(),
			Current: conflictErr.Current,
		})
	case errors.Is(err, storage.ErrEntityNotFound):
		h.writeError(w, http.StatusNotFound, "not_found", "entity not found")
	default:
		h.logger.Error("storage failure",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		h.writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func (h *EntitiesHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *EntitiesHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, api.ErrorResponse{Error: code, Message: message})
}
