package item

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for items.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByOwnerID retrieves all items listed by the given owner, oldest first.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Item, error)

	// FindByRequestIDs retrieves items answering any of the given requests.
	FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]*Item, error)

	// Search performs a case-insensitive substring match over item names and
	// descriptions. Availability is not filtered here; callers decide.
	Search(ctx context.Context, text string) ([]*Item, error)

	Save(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}
