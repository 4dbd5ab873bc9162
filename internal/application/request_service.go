package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	itemDomain "github.com/shareit-app/shareit/internal/domain/item"
	requestDomain "github.com/shareit-app/shareit/internal/domain/request"
	userDomain "github.com/shareit-app/shareit/internal/domain/user"
)

// CreateRequestRequest is the request DTO for posting an item request.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestDTO is the API response representation of an item request together
// with the items answering it.
type RequestDTO struct {
	ID          uuid.UUID `json:"id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Items       []ItemDTO `json:"items"`
}

// RequestService implements use cases for item requests.
type RequestService struct {
	requests requestDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

// CreateRequest posts a new item request for the given user.
func (s *RequestService) CreateRequest(ctx context.Context, requesterID uuid.UUID, req CreateRequestRequest) (*RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	ir, err := requestDomain.NewItemRequest(requesterID, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, ir); err != nil {
		return nil, fmt.Errorf("failed to save item request: %w", err)
	}

	s.logger.Info("item request created",
		zap.String("request_id", ir.ID().String()),
		zap.String("requester_id", requesterID.String()),
	)
	return &RequestDTO{
		ID:          ir.ID(),
		RequesterID: ir.RequesterID(),
		Description: ir.Description(),
		CreatedAt:   ir.CreatedAt(),
		Items:       []ItemDTO{},
	}, nil
}

// GetMyRequests returns the user's own requests, newest first, each with the
// items listed in answer to it.
func (s *RequestService) GetMyRequests(ctx context.Context, requesterID uuid.UUID) ([]RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.requests.FindByRequesterID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return []RequestDTO{}, nil
	}

	requestIDs := make([]uuid.UUID, len(requests))
	for i, ir := range requests {
		requestIDs[i] = ir.ID()
	}
	answers, err := s.items.FindByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[uuid.UUID][]ItemDTO)
	for _, it := range answers {
		if it.RequestID() == nil {
			continue
		}
		byRequest[*it.RequestID()] = append(byRequest[*it.RequestID()], toItemDTO(it))
	}

	dtos := make([]RequestDTO, len(requests))
	for i, ir := range requests {
		items := byRequest[ir.ID()]
		if items == nil {
			items = []ItemDTO{}
		}
		dtos[i] = RequestDTO{
			ID:          ir.ID(),
			RequesterID: ir.RequesterID(),
			Description: ir.Description(),
			CreatedAt:   ir.CreatedAt(),
			Items:       items,
		}
	}
	return dtos, nil
}

// GetRequest returns a single request with its answering items; any
// registered user may look.
func (s *RequestService) GetRequest(ctx context.Context, requesterID, requestID uuid.UUID) (*RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	ir, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	answers, err := s.items.FindByRequestIDs(ctx, []uuid.UUID{ir.ID()})
	if err != nil {
		return nil, err
	}
	items := make([]ItemDTO, len(answers))
	for i, it := range answers {
		items[i] = toItemDTO(it)
	}

	return &RequestDTO{
		ID:          ir.ID(),
		RequesterID: ir.RequesterID(),
		Description: ir.Description(),
		CreatedAt:   ir.CreatedAt(),
		Items:       items,
	}, nil
}
