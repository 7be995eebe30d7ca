// Package cart prices a customer's selection and depletes stock at checkout.
package cart

import (
	"math"

	"github.com/georgemunganga/printa-retail/internal/apperror"
	"github.com/georgemunganga/printa-retail/internal/modules/inventory"
	"github.com/georgemunganga/printa-retail/internal/modules/sales"
	"github.com/pkg/errors"
)

// Line is a requested quantity of one inventory item.
type Line struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// Cart collects lines against an inventory. Adding an item twice merges the quantities.
type Cart struct {
	inv   *inventory.Inventory
	lines []Line
	names map[int64]string
}

func New(inv *inventory.Inventory) *Cart {
	return &Cart{inv: inv, names: make(map[int64]string)}
}

// Add puts quantity units of itemID in the cart.
func (c *Cart) Add(itemID int64, quantity int) error {
	if quantity <= 0 {
		return errors.Wrapf(apperror.ErrInvalidArgument, "quantity must be > 0 for item %d", itemID)
	}
	item, ok := c.inv.FindItem(itemID)
	if !ok {
		return errors.Wrapf(apperror.ErrNotFound, "item ID %d", itemID)
	}
	c.names[itemID] = item.Name
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{ItemID: itemID, Quantity: quantity})
	return nil
}

// Subtotal prices the cart at current discounted prices, rounded to cents.
func (c *Cart) Subtotal() (float64, error) {
	var total float64
	for _, l := range c.lines {
		item, ok := c.inv.FindItem(l.ItemID)
		if !ok {
			return 0, errors.Wrapf(apperror.ErrNotFound, "item ID %d", l.ItemID)
		}
		total += item.DiscountedPrice() * float64(l.Quantity)
	}
	return round2(total), nil
}

// Checkout prices the cart and removes the sold units from stock. Every line
// is checked against current stock before any quantity changes.
func (c *Cart) Checkout() (float64, error) {
	if len(c.lines) == 0 {
		return 0, errors.Wrap(apperror.ErrInvalidArgument, "cart is empty")
	}
	for _, l := range c.lines {
		item, ok := c.inv.FindItem(l.ItemID)
		if !ok {
			return 0, errors.Wrapf(apperror.ErrNotFound, "item ID %d", l.ItemID)
		}
		if item.Quantity < l.Quantity {
			return 0, errors.Wrapf(apperror.ErrInsufficientStock,
				"only %d units of %s in stock, %d requested", item.Quantity, item.Name, l.Quantity)
		}
	}
	total, err := c.Subtotal()
	if err != nil {
		return 0, err
	}
	for _, l := range c.lines {
		if err := c.inv.AdjustQuantity(l.ItemID, -l.Quantity); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// Lines lists the cart contents as detached sale entries.
func (c *Cart) Lines() []sales.LineItem {
	out := make([]sales.LineItem, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, sales.LineItem{Name: c.names[l.ItemID], Quantity: l.Quantity})
	}
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.names = make(map[int64]string)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
