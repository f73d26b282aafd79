package nutrition

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/userctx"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for nutrition targets.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGetTargets handles GET /v1/nutrition/targets?client_id=
func (h *Handler) HandleGetTargets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := userctx.OwnerID(ctx)

	clientIDStr := r.URL.Query().Get("client_id")
	if clientIDStr == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "client_id is required")
		return
	}

	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid client_id format")
		return
	}

	targets, isDefault, err := h.service.GetOrDefault(ctx, ownerUserID, clientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			writeError(w, http.StatusNotFound, "client_not_found", "Client not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get nutrition targets")
		return
	}

	writeJSON(w, http.StatusOK, GetTargetsResponse{
		Targets:   targets,
		IsDefault: isDefault,
	})
}

// HandleUpsertTargets handles PUT /v1/nutrition/targets
func (h *Handler) HandleUpsertTargets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := userctx.OwnerID(ctx)

	var req UpsertTargetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	targets, err := h.service.Upsert(ctx, ownerUserID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrClientNotFound):
			writeError(w, http.StatusNotFound, "client_not_found", "Client not found")
		case errors.Is(err, ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), ErrInvalidRequest.Error()+": "))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to upsert nutrition targets")
		}
		return
	}

	writeJSON(w, http.StatusOK, targets)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
