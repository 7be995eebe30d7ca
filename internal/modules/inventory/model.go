package inventory

import (
	"fmt"

	"github.com/georgemunganga/printa-retail/internal/apperror"
	"github.com/pkg/errors"
)

// Item is a priced, discountable stock-keeping unit.
// Price is the undiscounted base price; discounts never rewrite it.
type Item struct {
	ID       int64   `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Discount float64 `json:"discount"` // percent, 0-100
}

// NewItem builds an item with no discount.
func NewItem(id int64, name string, price float64, quantity int) *Item {
	return &Item{ID: id, Name: name, Price: price, Quantity: quantity}
}

// ValidateDiscount reports whether percent is within 0-100 inclusive.
func ValidateDiscount(percent float64) error {
	if percent < 0 || percent > 100 {
		return errors.Wrapf(apperror.ErrInvalidArgument, "discount percent must be between 0 and 100, got %g", percent)
	}
	return nil
}

// SetDiscount replaces the discount. Out-of-range values leave the item untouched.
func (i *Item) SetDiscount(percent float64) error {
	if err := ValidateDiscount(percent); err != nil {
		return err
	}
	i.Discount = percent
	return nil
}

// DiscountedPrice is the unit price after the current discount.
func (i *Item) DiscountedPrice() float64 {
	return i.Price * (1 - i.Discount/100)
}

func (i *Item) String() string {
	return fmt.Sprintf("%s (ID: %d) - $%.2f x %d units", i.Name, i.ID, i.DiscountedPrice(), i.Quantity)
}

// clone detaches a copy from the live inventory.
func (i *Item) clone() *Item {
	c := *i
	return &c
}
