package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shareit-app/shareit/internal/domain"
	userDomain "github.com/shareit-app/shareit/internal/domain/user"
)

type requestFixture struct {
	svc       *RequestService
	itemSvc   *ItemService
	requester *userDomain.User
	owner     *userDomain.User
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()
	ctx := context.Background()

	users := newFakeUserRepo()
	items := newFakeItemRepo()
	requests := newFakeRequestRepo()

	requester, err := userDomain.NewUser("Boris", "boris@example.com")
	require.NoError(t, err)
	require.NoError(t, users.Save(ctx, requester))

	owner, err := userDomain.NewUser("Olga", "olga@example.com")
	require.NoError(t, err)
	require.NoError(t, users.Save(ctx, owner))

	return &requestFixture{
		svc:       NewRequestService(requests, items, users, zap.NewNop()),
		itemSvc:   NewItemService(items, users, newFakeBookingRepo(), newFakeCommentRepo(), zap.NewNop()),
		requester: requester,
		owner:     owner,
	}
}

func TestRequestService_CreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("posts request", func(t *testing.T) {
		f := newRequestFixture(t)

		dto, err := f.svc.CreateRequest(ctx, f.requester.ID(), CreateRequestRequest{
			Description: "Need a tile cutter for a weekend",
		})
		require.NoError(t, err)
		assert.Equal(t, f.requester.ID(), dto.RequesterID)
		assert.Empty(t, dto.Items)
	})

	t.Run("unknown requester", func(t *testing.T) {
		f := newRequestFixture(t)

		_, err := f.svc.CreateRequest(ctx, uuid.New(), CreateRequestRequest{Description: "Anything"})
		var nf *domain.NotFoundError
		require.True(t, errors.As(err, &nf))
	})

	t.Run("blank description", func(t *testing.T) {
		f := newRequestFixture(t)

		_, err := f.svc.CreateRequest(ctx, f.requester.ID(), CreateRequestRequest{})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
	})
}

func TestRequestService_GetMyRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("requests carry answering items", func(t *testing.T) {
		f := newRequestFixture(t)

		req, err := f.svc.CreateRequest(ctx, f.requester.ID(), CreateRequestRequest{
			Description: "Need a tile cutter",
		})
		require.NoError(t, err)

		avail := true
		answer, err := f.itemSvc.CreateItem(ctx, f.owner.ID(), CreateItemRequest{
			Name:        "Tile cutter",
			Description: "600mm manual tile cutter",
			Available:   &avail,
			RequestID:   &req.ID,
		})
		require.NoError(t, err)

		mine, err := f.svc.GetMyRequests(ctx, f.requester.ID())
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.Len(t, mine[0].Items, 1)
		assert.Equal(t, answer.ID, mine[0].Items[0].ID)
	})

	t.Run("no requests yields empty slice", func(t *testing.T) {
		f := newRequestFixture(t)

		mine, err := f.svc.GetMyRequests(ctx, f.requester.ID())
		require.NoError(t, err)
		assert.Empty(t, mine)
	})
}

func TestRequestService_GetRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("any registered user may look", func(t *testing.T) {
		f := newRequestFixture(t)

		req, err := f.svc.CreateRequest(ctx, f.requester.ID(), CreateRequestRequest{
			Description: "Need a tile cutter",
		})
		require.NoError(t, err)

		got, err := f.svc.GetRequest(ctx, f.owner.ID(), req.ID)
		require.NoError(t, err)
		assert.Equal(t, req.ID, got.ID)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newRequestFixture(t)

		_, err := f.svc.GetRequest(ctx, f.requester.ID(), uuid.New())
		var nf *domain.NotFoundError
		require.True(t, errors.As(err, &nf))
	})
}
