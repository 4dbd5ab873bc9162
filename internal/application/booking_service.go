package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shareit-app/shareit/internal/domain"
	bookingDomain "github.com/shareit-app/shareit/internal/domain/booking"
	itemDomain "github.com/shareit-app/shareit/internal/domain/item"
	userDomain "github.com/shareit-app/shareit/internal/domain/user"
	"github.com/shareit-app/shareit/internal/events"
	"github.com/shareit-app/shareit/internal/kafka"
)

const eventSource = "shareit"

// EventPublisher is the messaging seam used by the services. The Kafka
// producer satisfies it; tests inject a recorder.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// CreateBookingRequest holds the data needed to request a booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	BookerID  uuid.UUID `json:"booker_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingService orchestrates the booking lifecycle: creation by a booker,
// approval or rejection by the item's owner, cancellation by the booker,
// and visibility-checked retrieval.
type BookingService struct {
	bookings  bookingDomain.Repository
	items     itemDomain.Repository
	users     userDomain.Repository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		items:     items,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBooking requests a booking of an item for a date range. The booking
// starts out WAITING for the owner's decision. Overlap with other bookings
// is deliberately not checked.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, bookerID); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available() {
		return nil, domain.NewValidationError("item is not available for booking")
	}
	// Owners booking their own item get "not found" rather than a permission
	// error so that probing cannot reveal ownership.
	if it.IsOwnedBy(bookerID) {
		return nil, domain.NewNotFoundError("Item", req.ItemID.String())
	}

	bk, err := bookingDomain.NewBooking(req.ItemID, bookerID, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	evt := events.BookingCreatedEvent{
		BookingID:  bk.ID(),
		ItemID:     it.ID(),
		OwnerID:    it.OwnerID(),
		BookerID:   bookerID,
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// ApproveBooking lets the item's owner approve or reject a WAITING booking.
// Ownership is re-derived from the owner's item list rather than trusted
// from the booking row.
func (s *BookingService) ApproveBooking(ctx context.Context, ownerID, bookingID uuid.UUID, approve bool) (*BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	owned, err := s.ownsItem(ctx, ownerID, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domain.NewNotFoundError("Booking", bookingID.String())
	}

	if bk.Status() != bookingDomain.StatusWaiting {
		return nil, domain.NewValidationError("booking is already decided")
	}
	if err := bk.Decide(approve); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	eventType := events.BookingApproved
	if !approve {
		eventType = events.BookingRejected
	}
	s.publishDecision(ctx, eventType, bk, ownerID)

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking lets the booker withdraw an undecided booking.
func (s *BookingService) CancelBooking(ctx context.Context, bookerID, bookingID uuid.UUID) (*BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, bookerID); err != nil {
		return nil, err
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsBookedBy(bookerID) {
		return nil, domain.NewNotFoundError("Booking", bookingID.String())
	}

	if bk.Status() != bookingDomain.StatusWaiting {
		return nil, domain.NewValidationError("booking is already decided")
	}
	if err := bk.Cancel(); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishDecision(ctx, events.BookingCancelled, bk, bookerID)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a booking visible to the requester. Only the booker
// and the item's owner may see it; everyone else gets "not found".
func (s *BookingService) GetBooking(ctx context.Context, requesterID, bookingID uuid.UUID) (*BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !bk.IsBookedBy(requesterID) {
		owned, err := s.ownsItem(ctx, requesterID, bk.ItemID())
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, domain.NewNotFoundError("Booking", bookingID.String())
		}
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookingsByBooker returns the requester's own bookings narrowed by the
// temporal/status state filter.
func (s *BookingService) GetBookingsByBooker(ctx context.Context, bookerID uuid.UUID, state string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	if _, err := s.users.FindByID(ctx, bookerID); err != nil {
		return nil, err
	}

	filter, err := bookingDomain.ParseStateFilter(state)
	if err != nil {
		return nil, domain.NewValidationError("Unknown state: " + state)
	}

	bookings, total, err := s.bookings.FindByBooker(ctx, bookerID, filter, time.Now().UTC(), page, limit)
	if err != nil {
		return nil, err
	}

	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetBookingsByOwner returns bookings on any of the owner's items narrowed
// by the state filter. An owner with no items gets an empty page.
func (s *BookingService) GetBookingsByOwner(ctx context.Context, ownerID uuid.UUID, state string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	filter, err := bookingDomain.ParseStateFilter(state)
	if err != nil {
		return nil, domain.NewValidationError("Unknown state: " + state)
	}

	items, err := s.items.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		result := domain.NewPaginatedResult([]BookingDTO{}, 0, page, limit)
		return &result, nil
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID()
	}

	bookings, total, err := s.bookings.FindByItems(ctx, itemIDs, filter, time.Now().UTC(), page, limit)
	if err != nil {
		return nil, err
	}

	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

// ownsItem re-derives ownership by scanning the user's item list.
func (s *BookingService) ownsItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	items, err := s.items.FindByOwnerID(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.ID() == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (s *BookingService) publishDecision(ctx context.Context, eventType string, bk *bookingDomain.Booking, actorID uuid.UUID) {
	ownerID := actorID
	if eventType == events.BookingCancelled {
		// Cancellation is performed by the booker; resolve the owner from the item.
		it, err := s.items.FindByID(ctx, bk.ItemID())
		if err == nil {
			ownerID = it.OwnerID()
		}
	}
	evt := events.BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		OwnerID:    ownerID,
		BookerID:   bk.BookerID(),
		Status:     string(bk.Status()),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, eventType, evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		Start:     bk.Start(),
		End:       bk.End(),
		Status:    string(bk.Status()),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}
