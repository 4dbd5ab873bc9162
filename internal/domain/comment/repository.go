package comment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for item comments.
type Repository interface {
	Save(ctx context.Context, comment *Comment) error
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)
	FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*Comment, error)
}
