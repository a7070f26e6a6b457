package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordermgmt/internal/domain"
	apperrors "ordermgmt/internal/errors"
)

// orderStore is the behaviour both engines must share.
type orderStore interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindAll(ctx context.Context, q domain.ListQuery) (*domain.OrderPage, error)
	Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
}

var (
	_ orderStore = (*MySQLOrderRepository)(nil)
	_ orderStore = (*PostgresOrderRepository)(nil)
)

func newOrder(t *testing.T, name string, status domain.Status, createdAt time.Time) *domain.Order {
	t.Helper()
	o, err := domain.NewOrder(name, "Widget", 3, &status)
	require.NoError(t, err)
	o.CreatedAt = createdAt.UTC().Truncate(time.Microsecond)
	return o
}

func runStoreContract(t *testing.T, setup func(t *testing.T) orderStore) {
	ctx := context.Background()
	base := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	t.Run("create then find round trips", func(t *testing.T) {
		store := setup(t)

		created, err := store.Create(ctx, newOrder(t, "Ana", domain.OrderStatusPending, base))
		require.NoError(t, err)
		_, err = uuid.Parse(created.ID)
		require.NoError(t, err)
		assert.Equal(t, base, created.CreatedAt)
		assert.Nil(t, created.UpdatedAt)

		found, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(created, found); diff != "" {
			t.Errorf("round trip mismatch (-created +found):\n%s", diff)
		}
	})

	t.Run("find missing returns nil", func(t *testing.T) {
		store := setup(t)

		found, err := store.FindByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("list orders newest first with filter and pages", func(t *testing.T) {
		store := setup(t)

		for i, st := range []domain.Status{domain.OrderStatusPending, domain.OrderStatusCompleted, domain.OrderStatusPending, domain.OrderStatusPending} {
			_, err := store.Create(ctx, newOrder(t, "Customer", st, base.Add(time.Duration(i)*time.Minute)))
			require.NoError(t, err)
		}

		page, err := store.FindAll(ctx, domain.ListQuery{Page: 1, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, page.Orders, 2)
		assert.Equal(t, base.Add(3*time.Minute), page.Orders[0].CreatedAt)
		assert.Equal(t, base.Add(2*time.Minute), page.Orders[1].CreatedAt)
		assert.Equal(t, domain.NewPagination(1, 2, 4), page.Pagination)

		pending := domain.OrderStatusPending
		page, err = store.FindAll(ctx, domain.ListQuery{Page: 2, PageSize: 2, Status: &pending})
		require.NoError(t, err)
		require.Len(t, page.Orders, 1)
		assert.Equal(t, base, page.Orders[0].CreatedAt)
		assert.Equal(t, 3, page.Pagination.TotalItems)
		assert.False(t, page.Pagination.HasNext)
		assert.True(t, page.Pagination.HasPrev)
	})

	t.Run("list on empty table", func(t *testing.T) {
		store := setup(t)

		page, err := store.FindAll(ctx, domain.ListQuery{Page: 1, PageSize: 5})
		require.NoError(t, err)
		assert.Empty(t, page.Orders)
		assert.NotNil(t, page.Orders)
		assert.Equal(t, 0, page.Pagination.TotalItems)
	})

	t.Run("update writes only supplied fields", func(t *testing.T) {
		store := setup(t)
		created, err := store.Create(ctx, newOrder(t, "Ana", domain.OrderStatusPending, base))
		require.NoError(t, err)

		updated, err := store.Update(ctx, created.ID, domain.OrderPatch{Quantity: domain.Some(9)})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, 9, updated.Quantity)
		assert.Equal(t, "Ana", updated.CustomerName)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("update missing returns nil", func(t *testing.T) {
		store := setup(t)

		updated, err := store.Update(ctx, uuid.NewString(), domain.OrderPatch{Item: domain.Some("Pen")})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("update with empty patch", func(t *testing.T) {
		store := setup(t)

		_, err := store.Update(ctx, uuid.NewString(), domain.OrderPatch{})
		assert.True(t, apperrors.IsNoFieldsProvidedError(err))
	})

	t.Run("delete twice and exists", func(t *testing.T) {
		store := setup(t)
		created, err := store.Create(ctx, newOrder(t, "Ana", domain.OrderStatusPending, base))
		require.NoError(t, err)

		exists, err := store.Exists(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		deleted, err := store.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = store.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		exists, err = store.Exists(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
