package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/partstock/internal/model"
	"github.com/erazemk/partstock/internal/store"
)

// InventoryHandler serves the inventory table.
type InventoryHandler struct {
	DB *sql.DB
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	parts, err := store.ListParts(r.Context(), h.DB)
	if err != nil {
		serverError(w, r, "failed to list parts", err)
		return
	}
	jsonResponse(w, http.StatusOK, parts)
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewPart
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	part, err := store.CreatePart(r.Context(), h.DB, req)
	if err != nil {
		serverError(w, r, "failed to create part", err)
		return
	}

	slog.Info("part created", "id", part.ID, "name", part.Name, "key", keyLabel(r))
	jsonResponse(w, http.StatusCreated, part)
}

// Get handles GET /api/inventory/{id}.
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid part id")
		return
	}

	part, err := store.GetPart(r.Context(), h.DB, id)
	if err != nil {
		serverError(w, r, "failed to get part", err)
		return
	}
	if part == nil {
		jsonError(w, http.StatusNotFound, "part not found")
		return
	}
	jsonResponse(w, http.StatusOK, part)
}

// Update handles PATCH /api/inventory/{id}.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid part id")
		return
	}

	var patch model.Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		jsonError(w, http.StatusBadRequest, "name must not be empty")
		return
	}

	part, err := store.UpdatePart(r.Context(), h.DB, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "part not found")
		return
	}
	if err != nil {
		serverError(w, r, "failed to update part", err)
		return
	}

	slog.Info("part updated", "id", part.ID, "name", part.Name, "key", keyLabel(r))
	jsonResponse(w, http.StatusOK, part)
}

// Delete handles DELETE /api/inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid part id")
		return
	}

	err = store.DeletePart(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "part not found")
		return
	}
	if err != nil {
		serverError(w, r, "failed to delete part", err)
		return
	}

	slog.Info("part deleted", "id", id, "key", keyLabel(r))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "part deleted"})
}

// keyLabel names the service key that made the request, for audit logs.
func keyLabel(r *http.Request) string {
	if claims := GetClaims(r.Context()); claims != nil {
		return claims.Label
	}
	return ""
}
