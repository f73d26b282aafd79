package clients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList serves GET /v1/clients
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context())
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to list clients")
		return
	}

	h.sendJSON(w, http.StatusOK, ClientsResponse{Clients: clients})
}

// HandleGet serves GET /v1/clients/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r.URL.Path)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid client ID")
		return
	}

	client, err := h.service.GetClient(r.Context(), id)
	if err != nil {
		h.sendServiceError(w, err, "Failed to get client")
		return
	}

	h.sendJSON(w, http.StatusOK, client)
}

// HandleCreate serves POST /v1/clients
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	client, err := h.service.CreateClient(r.Context(), req)
	if err != nil {
		h.sendServiceError(w, err, "Failed to create client")
		return
	}

	h.sendJSON(w, http.StatusCreated, client)
}

// HandleUpdate serves PATCH /v1/clients/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r.URL.Path)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid client ID")
		return
	}

	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	client, err := h.service.UpdateClient(r.Context(), id, req)
	if err != nil {
		h.sendServiceError(w, err, "Failed to update client")
		return
	}

	h.sendJSON(w, http.StatusOK, client)
}

// HandleDelete serves DELETE /v1/clients/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r.URL.Path)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid client ID")
		return
	}

	if err := h.service.DeleteClient(r.Context(), id); err != nil {
		h.sendServiceError(w, err, "Failed to delete client")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) sendServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEmptyName):
		h.sendError(w, http.StatusBadRequest, "empty_name", "Name cannot be empty")
	case errors.Is(err, ErrNameTooLong):
		h.sendError(w, http.StatusBadRequest, "name_too_long", "Name is too long")
	case errors.Is(err, ErrNotFound):
		h.sendError(w, http.StatusNotFound, "not_found", "Client not found")
	default:
		h.sendError(w, http.StatusInternalServerError, "internal_error", fallback)
	}
}

// extractID reads the UUID from /v1/clients/{id}
func (h *Handler) extractID(path string) (uuid.UUID, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 {
		return uuid.Nil, errors.New("invalid path")
	}

	return uuid.Parse(parts[2])
}

func (h *Handler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) sendError(w http.ResponseWriter, status int, code, message string) {
	h.sendJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
