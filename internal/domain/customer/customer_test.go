package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAdd(t *testing.T) {
	t.Run("new entry", func(t *testing.T) {
		cart := make(Cart)
		require.NoError(t, cart.Add("p1", 2))
		assert.Equal(t, Entry{Quantity: 2}, cart["p1"])
		assert.Len(t, cart, 1)
	})

	t.Run("merges quantities", func(t *testing.T) {
		cart := make(Cart)
		require.NoError(t, cart.Add("p1", 2))
		require.NoError(t, cart.Add("p1", 3))
		assert.Equal(t, 5, cart["p1"].Quantity)
		assert.Len(t, cart, 1)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		cart := make(Cart)
		assert.ErrorIs(t, cart.Add("p1", 0), ErrInvalidQuantity)
		assert.ErrorIs(t, cart.Add("p1", -1), ErrInvalidQuantity)
		assert.Empty(t, cart)
	})
}

func TestCustomerClone(t *testing.T) {
	cust, err := New("c1", "Ada", "ada@example.com", "1 Main St")
	require.NoError(t, err)
	require.NoError(t, cust.Cart.Add("p1", 1))

	clone := cust.Clone()
	require.NoError(t, clone.Cart.Add("p1", 4))

	assert.Equal(t, 1, cust.Cart["p1"].Quantity)
	assert.Equal(t, 5, clone.Cart["p1"].Quantity)
}

func TestNewValidation(t *testing.T) {
	_, err := New("c1", "", "ada@example.com", "")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = New("c1", "Ada", "", "")
	assert.ErrorIs(t, err, ErrEmailRequired)
}
