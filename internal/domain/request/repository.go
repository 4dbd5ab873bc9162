package request

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for item requests.
type Repository interface {
	Save(ctx context.Context, request *ItemRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*ItemRequest, error)

	// FindByRequesterID retrieves the user's requests, newest first.
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)
}
