package foodselection

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/userctx"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for food selections and the catalog.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGetSelection handles GET /v1/food/selection?client_id=
func (h *Handler) HandleGetSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientID, err := uuid.Parse(r.URL.Query().Get("client_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "valid client_id is required")
		return
	}

	sel, err := h.service.Get(ctx, userctx.OwnerID(ctx), clientID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get food selection")
		return
	}

	writeJSON(w, http.StatusOK, sel)
}

// HandlePutSelection handles PUT /v1/food/selection
func (h *Handler) HandlePutSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PutSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	if req.ClientID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "client_id is required")
		return
	}

	sel, err := h.service.Put(ctx, userctx.OwnerID(ctx), req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to save food selection")
		return
	}

	writeJSON(w, http.StatusOK, sel)
}

// HandleCatalog handles GET /v1/food/catalog?q=&category=&slot=&limit=&offset=
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := CatalogFilter{
		Query:    q.Get("q"),
		Category: catalog.Category(q.Get("category")),
	}
	if raw := q.Get("slot"); raw != "" {
		slot, err := catalog.ParseMealSlot(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		filter.Slot = slot
	}

	limit := parseIntQuery(r, "limit", 50)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := parseIntQuery(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	items, total := h.service.Catalog(filter, limit, offset)

	writeJSON(w, http.StatusOK, CatalogResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrClientNotFound):
		writeError(w, http.StatusNotFound, "client_not_found", "Client not found")
	case errors.Is(err, ErrUnknownFoods):
		writeError(w, http.StatusBadRequest, "unknown_food_ids", err.Error())
	case errors.Is(err, ErrTooManyFoods):
		writeError(w, http.StatusBadRequest, "limit_reached", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", fallback)
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}

	var val int
	if _, err := fmt.Sscanf(valStr, "%d", &val); err != nil {
		return defaultValue
	}

	return val
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
