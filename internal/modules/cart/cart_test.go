package cart

import (
	"testing"

	"github.com/georgemunganga/printa-retail/internal/apperror"
	"github.com/georgemunganga/printa-retail/internal/modules/inventory"
	"github.com/georgemunganga/printa-retail/internal/modules/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stocked(t *testing.T) *inventory.Inventory {
	t.Helper()
	inv := inventory.New(nil)
	require.NoError(t, inv.AddItem(inventory.NewItem(1, "Widget", 10, 5)))
	require.NoError(t, inv.AddItem(inventory.NewItem(2, "Gadget", 3.35, 10)))
	require.NoError(t, inv.ApplyDiscountToItem(1, 20))
	return inv
}

func quantity(t *testing.T, inv *inventory.Inventory, id int64) int {
	t.Helper()
	item, ok := inv.FindItem(id)
	require.True(t, ok)
	return item.Quantity
}

func TestCheckout(t *testing.T) {
	inv := stocked(t)
	c := New(inv)
	require.NoError(t, c.Add(1, 1))
	require.NoError(t, c.Add(2, 3))
	require.NoError(t, c.Add(1, 1))

	total, err := c.Checkout()
	require.NoError(t, err)
	assert.InDelta(t, 26.05, total, 1e-9)

	assert.Equal(t, 3, quantity(t, inv, 1))
	assert.Equal(t, 7, quantity(t, inv, 2))
	assert.Equal(t, []sales.LineItem{{Name: "Widget", Quantity: 2}, {Name: "Gadget", Quantity: 3}}, c.Lines())
}

func TestCheckoutInsufficientStockChangesNothing(t *testing.T) {
	inv := stocked(t)
	c := New(inv)
	require.NoError(t, c.Add(2, 2))
	require.NoError(t, c.Add(1, 6))

	_, err := c.Checkout()
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, 5, quantity(t, inv, 1))
	assert.Equal(t, 10, quantity(t, inv, 2))
}

func TestCheckoutLargeTotalStaysPositive(t *testing.T) {
	inv := inventory.New(nil)
	require.NoError(t, inv.AddItem(inventory.NewItem(1, "Bullion", 1e17, 1000)))
	c := New(inv)
	require.NoError(t, c.Add(1, 1000))

	total, err := c.Checkout()
	require.NoError(t, err)
	assert.InEpsilon(t, 1e20, total, 1e-9)
	assert.Equal(t, 0, quantity(t, inv, 1))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 26.05, round2(26.049999999))
	assert.Equal(t, 0.0, round2(0.004))
	assert.Equal(t, 1e18, round2(1e18))
}

func TestCheckoutEmptyCart(t *testing.T) {
	_, err := New(stocked(t)).Checkout()
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestAddValidation(t *testing.T) {
	c := New(stocked(t))
	assert.ErrorIs(t, c.Add(1, 0), apperror.ErrInvalidArgument)
	assert.ErrorIs(t, c.Add(1, -2), apperror.ErrInvalidArgument)
	assert.ErrorIs(t, c.Add(42, 1), apperror.ErrNotFound)
	assert.Equal(t, 0, c.Len())
}

func TestSubtotalAndClear(t *testing.T) {
	c := New(stocked(t))
	require.NoError(t, c.Add(1, 2))

	sub, err := c.Subtotal()
	require.NoError(t, err)
	assert.InDelta(t, 16.0, sub, 1e-9)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Lines())
}
