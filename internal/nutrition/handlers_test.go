package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage/memory"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/userctx"
	"github.com/google/uuid"
)

func setup(t *testing.T) (*Handler, uuid.UUID) {
	t.Helper()
	store := memory.New()
	client := &storage.Client{OwnerUserID: userctx.DefaultOwnerID, Name: "Alex"}
	if err := store.CreateClient(context.Background(), client); err != nil {
		t.Fatalf("create client: %v", err)
	}
	service := NewService(store, store.GetNutritionTargetsStorage())
	return NewHandler(service), client.ID
}

func TestGetTargetsDefaults(t *testing.T) {
	handler, clientID := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/nutrition/targets?client_id="+clientID.String(), nil)
	w := httptest.NewRecorder()
	handler.HandleGetTargets(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp GetTargetsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.IsDefault {
		t.Error("expected is_default=true")
	}
	if resp.Targets.CaloriesKcal != 2200 || resp.Targets.FiberG != 30 {
		t.Errorf("unexpected defaults: %+v", resp.Targets)
	}
}

func TestUpsertThenGet(t *testing.T) {
	handler, clientID := setup(t)

	body, _ := json.Marshal(UpsertTargetsRequest{
		ClientID:     clientID,
		CaloriesKcal: 2000,
		ProteinG:     150,
		FatG:         70,
		CarbsG:       200,
		BodyweightKg: 82,
	})
	req := httptest.NewRequest(http.MethodPut, "/v1/nutrition/targets", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleUpsertTargets(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/nutrition/targets?client_id="+clientID.String(), nil)
	w = httptest.NewRecorder()
	handler.HandleGetTargets(w, req)

	var resp GetTargetsResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.IsDefault {
		t.Error("expected stored targets")
	}
	if resp.Targets.ProteinG != 150 || resp.Targets.BodyweightKg != 82 {
		t.Errorf("unexpected targets: %+v", resp.Targets)
	}

	mt := resp.Targets.MacroTargets()
	if mt.Calories != 2000 || mt.Carbs != 200 {
		t.Errorf("unexpected macro targets: %+v", mt)
	}
}

func TestUpsertValidation(t *testing.T) {
	handler, clientID := setup(t)

	tests := []struct {
		name       string
		req        UpsertTargetsRequest
		wantStatus int
		wantCode   string
	}{
		{"calories too low", UpsertTargetsRequest{ClientID: clientID, CaloriesKcal: 500}, http.StatusBadRequest, "invalid_request"},
		{"fiber too high", UpsertTargetsRequest{ClientID: clientID, CaloriesKcal: 2000, FiberG: 150}, http.StatusBadRequest, "invalid_request"},
		{"bodyweight out of range", UpsertTargetsRequest{ClientID: clientID, CaloriesKcal: 2000, BodyweightKg: 12}, http.StatusBadRequest, "invalid_request"},
		{"missing client", UpsertTargetsRequest{CaloriesKcal: 2000}, http.StatusBadRequest, "invalid_request"},
		{"unknown client", UpsertTargetsRequest{ClientID: uuid.New(), CaloriesKcal: 2000}, http.StatusNotFound, "client_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.req)
			req := httptest.NewRequest(http.MethodPut, "/v1/nutrition/targets", bytes.NewReader(body))
			w := httptest.NewRecorder()
			handler.HandleUpsertTargets(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			json.NewDecoder(w.Body).Decode(&resp)
			if resp.Error.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestGetTargetsOtherOwner(t *testing.T) {
	handler, clientID := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/nutrition/targets?client_id="+clientID.String(), nil)
	req = req.WithContext(userctx.WithUserID(req.Context(), "someone-else"))
	w := httptest.NewRecorder()
	handler.HandleGetTargets(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
