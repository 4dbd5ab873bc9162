package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shareit-app/shareit/internal/domain"
	bookingDomain "github.com/shareit-app/shareit/internal/domain/booking"
	commentDomain "github.com/shareit-app/shareit/internal/domain/comment"
	itemDomain "github.com/shareit-app/shareit/internal/domain/item"
	requestDomain "github.com/shareit-app/shareit/internal/domain/request"
	userDomain "github.com/shareit-app/shareit/internal/domain/user"
	"github.com/shareit-app/shareit/internal/kafka"
)

// --- fake user repository ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*userDomain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return domain.NewConflictError("email is already in use")
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// --- fake item repository ---

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*itemDomain.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*itemDomain.Item)}
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Item", id.String())
	}
	return it, nil
}

func (r *fakeItemRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*itemDomain.Item
	for _, it := range r.items {
		if it.OwnerID() == ownerID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out, nil
}

func (r *fakeItemRepo) FindByRequestIDs(_ context.Context, requestIDs []uuid.UUID) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	var out []*itemDomain.Item
	for _, it := range r.items {
		if it.RequestID() != nil && wanted[*it.RequestID()] {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(text)
	var out []*itemDomain.Item
	for _, it := range r.items {
		if strings.Contains(strings.ToLower(it.Name()), needle) ||
			strings.Contains(strings.ToLower(it.Description()), needle) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Save(_ context.Context, it *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ID()] = it
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID()]; !ok {
		return domain.NewNotFoundError("Item", it.ID().String())
	}
	r.items[it.ID()] = it
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// --- fake booking repository ---

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

func matchesFilter(bk *bookingDomain.Booking, filter bookingDomain.StateFilter, now time.Time) bool {
	switch filter {
	case bookingDomain.FilterAll:
		return true
	case bookingDomain.FilterCurrent:
		return !bk.Start().After(now) && !bk.End().Before(now)
	case bookingDomain.FilterPast:
		return bk.End().Before(now)
	case bookingDomain.FilterFuture:
		return bk.Start().After(now)
	case bookingDomain.FilterWaiting:
		return bk.Status() == bookingDomain.StatusWaiting
	case bookingDomain.FilterRejected:
		return bk.Status() == bookingDomain.StatusRejected
	}
	return false
}

func sortFiltered(out []*bookingDomain.Booking, filter bookingDomain.StateFilter) {
	if filter == bookingDomain.FilterPast {
		sort.Slice(out, func(i, j int) bool { return out[i].End().After(out[j].End()) })
		return
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start().After(out[j].Start()) })
}

func paginate(out []*bookingDomain.Booking, page, limit int) []*bookingDomain.Booking {
	offset := (page - 1) * limit
	if offset >= len(out) {
		return nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end]
}

func (r *fakeBookingRepo) FindByBooker(_ context.Context, bookerID uuid.UUID, filter bookingDomain.StateFilter, now time.Time, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.BookerID() == bookerID && matchesFilter(bk, filter, now) {
			out = append(out, bk)
		}
	}
	sortFiltered(out, filter)
	total := int64(len(out))
	return paginate(out, page, limit), total, nil
}

func (r *fakeBookingRepo) FindByItems(_ context.Context, itemIDs []uuid.UUID, filter bookingDomain.StateFilter, now time.Time, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if wanted[bk.ItemID()] && matchesFilter(bk, filter, now) {
			out = append(out, bk)
		}
	}
	sortFiltered(out, filter)
	total := int64(len(out))
	return paginate(out, page, limit), total, nil
}

func (r *fakeBookingRepo) FindApprovedByItem(_ context.Context, itemID uuid.UUID) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.ItemID() == itemID && bk.Status() == bookingDomain.StatusApproved {
			out = append(out, bk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].End().Before(out[j].End()) })
	return out, nil
}

func (r *fakeBookingRepo) HasFinishedApproval(_ context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bk := range r.bookings {
		if bk.ItemID() == itemID && bk.BookerID() == bookerID &&
			bk.Status() == bookingDomain.StatusApproved && bk.Start().Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ListAll(_ context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		out = append(out, bk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	total := int64(len(out))
	return paginate(out, page, limit), total, nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, bk := range r.bookings {
		counts[string(bk.Status())]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[bk.ID()] = bk
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.bookings[bk.ID()]
	if !ok {
		return domain.NewNotFoundError("Booking", bk.ID().String())
	}
	if existing != bk && existing.Version() != bk.Version()-1 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	r.bookings[bk.ID()] = bk
	return nil
}

// --- fake comment repository ---

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*commentDomain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Save(_ context.Context, cm *commentDomain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, cm)
	return nil
}

func (r *fakeCommentRepo) FindByItemID(_ context.Context, itemID uuid.UUID) ([]*commentDomain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*commentDomain.Comment
	for _, cm := range r.comments {
		if cm.ItemID() == itemID {
			out = append(out, cm)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) FindByItemIDs(_ context.Context, itemIDs []uuid.UUID) ([]*commentDomain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var out []*commentDomain.Comment
	for _, cm := range r.comments {
		if wanted[cm.ItemID()] {
			out = append(out, cm)
		}
	}
	return out, nil
}

// --- fake request repository ---

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*requestDomain.ItemRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*requestDomain.ItemRequest)}
}

func (r *fakeRequestRepo) Save(_ context.Context, ir *requestDomain.ItemRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[ir.ID()] = ir
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*requestDomain.ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ir, ok := r.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("ItemRequest", id.String())
	}
	return ir, nil
}

func (r *fakeRequestRepo) FindByRequesterID(_ context.Context, requesterID uuid.UUID) ([]*requestDomain.ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*requestDomain.ItemRequest
	for _, ir := range r.requests {
		if ir.RequesterID() == requesterID {
			out = append(out, ir)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	return out, nil
}

// --- fake event publisher ---

type publishedEvent struct {
	Topic string
	Event kafka.CloudEvent
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{}
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Event: event})
	return nil
}

func (p *fakePublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedEvent, len(p.events))
	copy(out, p.events)
	return out
}
