package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/leafcart/storefront/internal/domain/order"
)

func TestOrderRepository_InsertConflict(t *testing.T) {
	repo := NewOrderRepository()
	order, err := domain.New("o1", "u1")
	require.NoError(t, err)

	require.NoError(t, repo.Insert(context.Background(), order))
	assert.ErrorIs(t, repo.Insert(context.Background(), order), domain.ErrConflict)
}

func TestOrderRepository_Delete(t *testing.T) {
	repo := NewOrderRepository()
	order, err := domain.New("o1", "u1")
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), order))

	require.NoError(t, repo.Delete(context.Background(), "o1"))
	assert.Zero(t, repo.Count())

	_, err = repo.FindByID(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), "o1"), domain.ErrNotFound)
}

func TestOrderRepository_CloneOnRead(t *testing.T) {
	repo := NewOrderRepository()
	order, err := domain.New("o1", "u1")
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), order))

	read, err := repo.FindByID(context.Background(), "o1")
	require.NoError(t, err)
	read.UserID = "mutated"

	again, err := repo.FindByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, "u1", again.UserID)
}

func TestLineItemRepository_DeleteByOrder(t *testing.T) {
	repo := NewLineItemRepository()
	for _, orderID := range []string{"o1", "o1", "o2"} {
		item, err := domain.NewLineItem(orderID, "p1", 1, 100)
		require.NoError(t, err)
		require.NoError(t, repo.Insert(context.Background(), item))
	}

	require.NoError(t, repo.DeleteByOrder(context.Background(), "o1"))
	assert.Equal(t, 1, repo.Count())

	remaining, err := repo.ListByOrder(context.Background(), "o2")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "o2", remaining[0].OrderID)
}
