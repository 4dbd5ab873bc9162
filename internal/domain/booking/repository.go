package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByBooker retrieves bookings requested by the given user, narrowed
	// by the state filter evaluated against now, with pagination. PAST is
	// ordered by end descending, all other states by start descending.
	FindByBooker(ctx context.Context, bookerID uuid.UUID, filter StateFilter, now time.Time, page, limit int) ([]*Booking, int64, error)

	// FindByItems retrieves bookings for any of the given items, narrowed by
	// the state filter, with pagination. Ordering matches FindByBooker.
	FindByItems(ctx context.Context, itemIDs []uuid.UUID, filter StateFilter, now time.Time, page, limit int) ([]*Booking, int64, error)

	// FindApprovedByItem retrieves the item's approved bookings ordered by
	// end ascending, as consumed by the nearest-booking scan.
	FindApprovedByItem(ctx context.Context, itemID uuid.UUID) ([]*Booking, error)

	// HasFinishedApproval reports whether the user holds an approved booking
	// for the item that already started before now.
	HasFinishedApproval(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
