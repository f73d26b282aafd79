package mealplans

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/export"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/userctx"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for meal plans.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGenerate handles POST /v1/meal/plan/generate
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := userctx.OwnerID(ctx)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	if req.ClientID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "client_id is required")
		return
	}

	plan, created, err := h.service.Generate(ctx, ownerUserID, req)
	if err != nil {
		sendServiceError(w, err, "Failed to generate meal plan")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, GenerateResponse{Plan: *plan, Created: created})
}

// HandleGet handles GET /v1/meal/plan?client_id=
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, ok := clientIDParam(w, r)
	if !ok {
		return
	}

	plan, found, err := h.service.GetActive(ctx, userctx.OwnerID(ctx), clientID)
	if err != nil {
		sendServiceError(w, err, "Failed to get meal plan")
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, GetMealPlanResponse{Plan: nil})
		return
	}
	writeJSON(w, http.StatusOK, GetMealPlanResponse{Plan: plan})
}

// HandleDelete handles DELETE /v1/meal/plan?client_id=
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, ok := clientIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteActive(ctx, userctx.OwnerID(ctx), clientID); err != nil {
		sendServiceError(w, err, "Failed to delete meal plan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetToday handles GET /v1/meal/today?client_id=&date=YYYY-MM-DD
func (h *Handler) HandleGetToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, ok := clientIDParam(w, r)
	if !ok {
		return
	}

	today, err := h.service.GetToday(ctx, userctx.OwnerID(ctx), clientID, r.URL.Query().Get("date"))
	if err != nil {
		sendServiceError(w, err, "Failed to get today's meal plan")
		return
	}
	writeJSON(w, http.StatusOK, today)
}

// HandleGrocery handles GET /v1/meal/plan/grocery?client_id=
func (h *Handler) HandleGrocery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, ok := clientIDParam(w, r)
	if !ok {
		return
	}

	list, err := h.service.Grocery(ctx, userctx.OwnerID(ctx), clientID)
	if err != nil {
		sendServiceError(w, err, "Failed to build grocery list")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleVersions handles GET /v1/meal/plan/versions?client_id=
func (h *Handler) HandleVersions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, ok := clientIDParam(w, r)
	if !ok {
		return
	}

	versions, err := h.service.ListVersions(ctx, userctx.OwnerID(ctx), clientID)
	if err != nil {
		sendServiceError(w, err, "Failed to list meal plan versions")
		return
	}
	writeJSON(w, http.StatusOK, VersionsResponse{Versions: versions})
}

// HandleExport handles GET /v1/meal/plan/export?client_id=&format=pdf|csv|json&kind=plan|grocery
//
// Returns a presigned link when the export was uploaded, the file bytes otherwise.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, ok := clientIDParam(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	kind, err := export.ParseKind(q.Get("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	res, err := h.service.Export(ctx, userctx.OwnerID(ctx), clientID, kind, format)
	if err != nil {
		sendServiceError(w, err, "Failed to export meal plan")
		return
	}

	if res.URL != "" {
		writeJSON(w, http.StatusOK, ExportLinkResponse{
			URL:       res.URL,
			ExpiresIn: res.ExpiresIn,
			Filename:  res.Filename,
		})
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Data)
}

func clientIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("client_id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "client_id is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid client_id format")
		return uuid.Nil, false
	}
	return id, true
}

func sendServiceError(w http.ResponseWriter, err error, fallback string) {
	var locked *LockedError
	switch {
	case errors.Is(err, ErrClientNotFound):
		writeError(w, http.StatusNotFound, "client_not_found", "Client not found")
	case errors.Is(err, ErrNoActivePlan):
		writeError(w, http.StatusNotFound, "no_active_plan", "No active meal plan")
	case errors.As(err, &locked):
		writeError(w, http.StatusConflict, "plan_locked", locked.Error())
	case errors.Is(err, ErrNoFoods):
		writeError(w, http.StatusBadRequest, "no_foods", "Select foods before generating a plan")
	case errors.Is(err, mealgen.ErrInvalidTargets):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), ErrInvalidRequest.Error()+": "))
	case errors.Is(err, mealgen.ErrNoPopulatableSlots):
		writeError(w, http.StatusUnprocessableEntity, "unbalanced_selection", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", fallback)
	}
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
