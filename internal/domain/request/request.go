package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/shareit-app/shareit/internal/domain"
)

// ItemRequest is a user's wish for an item that is not listed yet. Owners
// may answer a request by creating an item that references it.
type ItemRequest struct {
	id          uuid.UUID
	requesterID uuid.UUID
	description string
	createdAt   time.Time
}

// NewItemRequest creates a new item request.
func NewItemRequest(requesterID uuid.UUID, description string) (*ItemRequest, error) {
	if description == "" {
		return nil, domain.NewValidationError("request description is required")
	}

	return &ItemRequest{
		id:          uuid.New(),
		requesterID: requesterID,
		description: description,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence.
func Reconstruct(id, requesterID uuid.UUID, description string, createdAt time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		requesterID: requesterID,
		description: description,
		createdAt:   createdAt,
	}
}

// Getters.
func (r *ItemRequest) ID() uuid.UUID          { return r.id }
func (r *ItemRequest) RequesterID() uuid.UUID { return r.requesterID }
func (r *ItemRequest) Description() string    { return r.description }
func (r *ItemRequest) CreatedAt() time.Time   { return r.createdAt }
