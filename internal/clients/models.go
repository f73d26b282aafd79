package clients

import (
	"time"

	"github.com/google/uuid"
)

// ClientDTO is the API shape of a coaching client.
type ClientDTO struct {
	ID          uuid.UUID `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClientsResponse is returned by GET /v1/clients.
type ClientsResponse struct {
	Clients []ClientDTO `json:"clients"`
}

// CreateClientRequest is the body of POST /v1/clients.
type CreateClientRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

// UpdateClientRequest is the body of PATCH /v1/clients/{id}. Nil fields are left unchanged.
type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Notes *string `json:"notes"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
