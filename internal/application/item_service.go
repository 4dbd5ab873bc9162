package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shareit-app/shareit/internal/domain"
	bookingDomain "github.com/shareit-app/shareit/internal/domain/booking"
	commentDomain "github.com/shareit-app/shareit/internal/domain/comment"
	itemDomain "github.com/shareit-app/shareit/internal/domain/item"
	userDomain "github.com/shareit-app/shareit/internal/domain/user"
)

// CreateItemRequest is the request DTO for listing an item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"request_id"`
}

// UpdateItemRequest is the sparse-update DTO for an item. Absent fields are
// left untouched; unknown keys in the payload are ignored.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// AddCommentRequest is the request DTO for commenting on an item.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemDTO is the API response representation of an item.
type ItemDTO struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   bool       `json:"available"`
	RequestID   *uuid.UUID `json:"request_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BookingBriefDTO is the compact booking shape embedded in an item view.
type BookingBriefDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// CommentDTO is the API response representation of an item comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ItemDetailDTO is the item view with comments; LastBooking and NextBooking
// are populated only when the caller owns the item.
type ItemDetailDTO struct {
	ItemDTO
	LastBooking *BookingBriefDTO `json:"last_booking,omitempty"`
	NextBooking *BookingBriefDTO `json:"next_booking,omitempty"`
	Comments    []CommentDTO     `json:"comments"`
}

// ItemService implements use cases for the item catalog.
type ItemService struct {
	items    itemDomain.Repository
	users    userDomain.Repository
	bookings bookingDomain.Repository
	comments commentDomain.Repository
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	users userDomain.Repository,
	bookings bookingDomain.Repository,
	comments commentDomain.Repository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		logger:   logger,
	}
}

// CreateItem lists a new item for the given owner.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	available := false
	if req.Available != nil {
		available = *req.Available
	}
	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, available, req.RequestID)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item listed",
		zap.String("item_id", it.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toItemDTO(it)
	return &result, nil
}

// UpdateItem applies a sparse update to an item, restricted to its owner.
// A non-owner gets "not found" rather than a permission error.
func (s *ItemService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(userID) {
		return nil, domain.NewNotFoundError("Item", itemID.String())
	}

	it.Apply(itemDomain.Patch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})

	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info("item updated", zap.String("item_id", itemID.String()))
	result := toItemDTO(it)
	return &result, nil
}

// GetItem returns the item view for the given requester. Owners additionally
// see the last completed and next upcoming approved booking.
func (s *ItemService) GetItem(ctx context.Context, requesterID, itemID uuid.UUID) (*ItemDetailDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	detail := ItemDetailDTO{ItemDTO: toItemDTO(it)}

	if it.IsOwnedBy(requesterID) {
		approved, err := s.bookings.FindApprovedByItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		last, next := bookingDomain.NearestBookings(approved, time.Now().UTC())
		detail.LastBooking = toBookingBrief(last)
		detail.NextBooking = toBookingBrief(next)
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	detail.Comments, err = s.toCommentDTOs(ctx, comments)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// GetMyItems returns all items listed by the given owner.
func (s *ItemService) GetMyItems(ctx context.Context, ownerID uuid.UUID) ([]ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos, nil
}

// SearchItems performs a case-insensitive substring search over names and
// descriptions, keeping only available items. Blank text yields no results.
func (s *ItemService) SearchItems(ctx context.Context, requesterID uuid.UUID, text string) ([]ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}
	if text == "" {
		return []ItemDTO{}, nil
	}

	matches, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, 0, len(matches))
	for _, it := range matches {
		if it.Available() {
			dtos = append(dtos, toItemDTO(it))
		}
	}
	return dtos, nil
}

// AddComment attaches feedback to an item. Only users who held an approved
// booking for the item that has already started may comment.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uuid.UUID, req AddCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	rented, err := s.bookings.HasFinishedApproval(ctx, itemID, authorID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, domain.NewValidationError("only users who rented the item may comment")
	}

	cm, err := commentDomain.NewComment(itemID, authorID, req.Text)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, cm); err != nil {
		return nil, err
	}

	s.logger.Info("comment added",
		zap.String("item_id", itemID.String()),
		zap.String("author_id", authorID.String()),
	)
	return &CommentDTO{
		ID:         cm.ID(),
		Text:       cm.Text(),
		AuthorID:   authorID,
		AuthorName: author.Name(),
		CreatedAt:  cm.CreatedAt(),
	}, nil
}

// --- Helpers ---

func (s *ItemService) toCommentDTOs(ctx context.Context, comments []*commentDomain.Comment) ([]CommentDTO, error) {
	names := make(map[uuid.UUID]string)
	dtos := make([]CommentDTO, len(comments))
	for i, cm := range comments {
		name, ok := names[cm.AuthorID()]
		if !ok {
			author, err := s.users.FindByID(ctx, cm.AuthorID())
			if err == nil {
				name = author.Name()
			}
			names[cm.AuthorID()] = name
		}
		dtos[i] = CommentDTO{
			ID:         cm.ID(),
			Text:       cm.Text(),
			AuthorID:   cm.AuthorID(),
			AuthorName: name,
			CreatedAt:  cm.CreatedAt(),
		}
	}
	return dtos, nil
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

func toBookingBrief(bk *bookingDomain.Booking) *BookingBriefDTO {
	if bk == nil {
		return nil
	}
	return &BookingBriefDTO{
		ID:       bk.ID(),
		BookerID: bk.BookerID(),
		Start:    bk.Start(),
		End:      bk.End(),
	}
}
