package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage/memory"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/userctx"
	"github.com/google/uuid"
)

func newTestHandler() (*Handler, *Service) {
	service := NewService(memory.New())
	return NewHandler(service), service
}

func TestHandleCreateAndList(t *testing.T) {
	handler, _ := newTestHandler()

	body, _ := json.Marshal(CreateClientRequest{Name: "  Alex  ", Notes: "cutting"})
	req := httptest.NewRequest(http.MethodPost, "/v1/clients", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created ClientDTO
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Name != "Alex" {
		t.Errorf("expected trimmed name 'Alex', got %q", created.Name)
	}
	if created.OwnerUserID != userctx.DefaultOwnerID {
		t.Errorf("expected default owner, got %q", created.OwnerUserID)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/clients", nil)
	w = httptest.NewRecorder()
	handler.HandleList(w, req)

	var resp ClientsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Clients) != 1 || resp.Clients[0].ID != created.ID {
		t.Errorf("expected the created client in list, got %+v", resp.Clients)
	}
}

func TestHandleCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"invalid json", "{", "invalid_json"},
		{"empty name", `{"name":"   "}`, "empty_name"},
		{"long name", `{"name":"` + strings.Repeat("x", maxNameLength+1) + `"}`, "name_too_long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler()
			req := httptest.NewRequest(http.MethodPost, "/v1/clients", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.HandleCreate(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("expected error code %q, got %q", tt.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestHandleUpdatePartial(t *testing.T) {
	handler, service := newTestHandler()
	client, _ := service.CreateClient(context.Background(), CreateClientRequest{Name: "Alex", Notes: "old"})

	req := httptest.NewRequest(http.MethodPatch, "/v1/clients/"+client.ID.String(), strings.NewReader(`{"notes":"new"}`))
	w := httptest.NewRecorder()

	handler.HandleUpdate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated ClientDTO
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Name != "Alex" || updated.Notes != "new" {
		t.Errorf("unexpected client after patch: %+v", updated)
	}
}

func TestHandleGetOtherOwnerIsNotFound(t *testing.T) {
	handler, service := newTestHandler()
	ownerCtx := userctx.WithUserID(context.Background(), "coach-a")
	client, _ := service.CreateClient(ownerCtx, CreateClientRequest{Name: "Alex"})

	req := httptest.NewRequest(http.MethodGet, "/v1/clients/"+client.ID.String(), nil)
	req = req.WithContext(userctx.WithUserID(req.Context(), "coach-b"))
	w := httptest.NewRecorder()

	handler.HandleGet(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestHandleDelete(t *testing.T) {
	handler, service := newTestHandler()
	client, _ := service.CreateClient(context.Background(), CreateClientRequest{Name: "Alex"})

	req := httptest.NewRequest(http.MethodDelete, "/v1/clients/"+client.ID.String(), nil)
	w := httptest.NewRecorder()
	handler.HandleDelete(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/clients/"+uuid.New().String(), nil)
	w = httptest.NewRecorder()
	handler.HandleDelete(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown client, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/clients/not-a-uuid", nil)
	w = httptest.NewRecorder()
	handler.HandleDelete(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for bad id, got %d", w.Code)
	}
}
