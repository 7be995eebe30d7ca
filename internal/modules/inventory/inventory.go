package inventory

import (
	"context"
	"io/fs"
	"strings"

	"github.com/georgemunganga/printa-retail/internal/apperror"
	"github.com/georgemunganga/printa-retail/internal/audit"
	"github.com/pkg/errors"
)

// Inventory is the keyed collection of items. Iteration follows insertion order.
type Inventory struct {
	items map[int64]*Item
	order []int64
	sink  audit.Sink
}

// New creates an empty inventory reporting changes to sink.
func New(sink audit.Sink) *Inventory {
	if sink == nil {
		sink = audit.Nop{}
	}
	return &Inventory{items: make(map[int64]*Item), sink: sink}
}

// AddItem inserts item; its ID must not be present yet.
func (inv *Inventory) AddItem(item *Item) error {
	if item == nil {
		return errors.Wrap(apperror.ErrInvalidArgument, "item is required")
	}
	if item.Price < 0 || item.Quantity < 0 {
		return errors.Wrapf(apperror.ErrInvalidArgument, "item %d: price and quantity cannot be negative", item.ID)
	}
	if _, ok := inv.items[item.ID]; ok {
		return errors.Wrapf(apperror.ErrAlreadyExists, "item ID %d", item.ID)
	}
	inv.items[item.ID] = item
	inv.order = append(inv.order, item.ID)
	audit.Infof(inv.sink, "Added item to inventory: %s", item)
	return nil
}

// UpdateQuantity overwrites the stock count of an item. It is the admin
// correction path and applies no lower bound.
func (inv *Inventory) UpdateQuantity(id int64, quantity int) error {
	item, err := inv.get(id)
	if err != nil {
		return err
	}
	item.Quantity = quantity
	audit.Infof(inv.sink, "Updated quantity for item %s: %d", item.Name, quantity)
	return nil
}

// AdjustQuantity applies delta to the stock count, refusing to go below zero.
func (inv *Inventory) AdjustQuantity(id int64, delta int) error {
	item, err := inv.get(id)
	if err != nil {
		return err
	}
	if item.Quantity+delta < 0 {
		return errors.Wrapf(apperror.ErrInsufficientStock,
			"item %d has %d units, cannot remove %d", id, item.Quantity, -delta)
	}
	item.Quantity += delta
	audit.Infof(inv.sink, "Adjusted quantity for %s: %d units remaining", item.Name, item.Quantity)
	return nil
}

// ApplyDiscountToItem sets the discount of a single item.
func (inv *Inventory) ApplyDiscountToItem(id int64, percent float64) error {
	item, err := inv.get(id)
	if err != nil {
		return err
	}
	return inv.setDiscount(item, percent)
}

// ApplyDiscountToAll sets the same discount on every item. The percent is
// checked once up front so a rejected value changes nothing.
func (inv *Inventory) ApplyDiscountToAll(percent float64) error {
	if err := ValidateDiscount(percent); err != nil {
		return err
	}
	for _, id := range inv.order {
		if err := inv.setDiscount(inv.items[id], percent); err != nil {
			return err
		}
	}
	audit.Infof(inv.sink, "Applied %g%% discount to all items", percent)
	return nil
}

func (inv *Inventory) setDiscount(item *Item, percent float64) error {
	if err := item.SetDiscount(percent); err != nil {
		return err
	}
	audit.Infof(inv.sink, "Discount set for %s: %g%%", item.Name, item.Discount)
	return nil
}

// FindItem returns the live item with id, if any.
func (inv *Inventory) FindItem(id int64) (*Item, bool) {
	item, ok := inv.items[id]
	return item, ok
}

// SearchItems matches keyword against item names, ignoring case.
func (inv *Inventory) SearchItems(keyword string) []*Item {
	needle := strings.ToLower(keyword)
	results := []*Item{}
	for _, id := range inv.order {
		item := inv.items[id]
		if strings.Contains(strings.ToLower(item.Name), needle) {
			results = append(results, item)
		}
	}
	return results
}

// Items lists every item in iteration order.
func (inv *Inventory) Items() []*Item {
	out := make([]*Item, 0, len(inv.order))
	for _, id := range inv.order {
		out = append(out, inv.items[id])
	}
	return out
}

func (inv *Inventory) Len() int { return len(inv.items) }

// Report renders one line per item under a heading.
func (inv *Inventory) Report() string {
	return FormatReport("Inventory Report", inv.Items())
}

// FormatReport renders items under the given heading.
func FormatReport(title string, items []*Item) string {
	var b strings.Builder
	b.WriteString("--- " + title + " ---\n")
	for _, item := range items {
		b.WriteString(item.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Save writes the whole inventory to repo.
func (inv *Inventory) Save(ctx context.Context, repo Repository) error {
	snapshot := make([]*Item, 0, len(inv.order))
	for _, item := range inv.Items() {
		snapshot = append(snapshot, item.clone())
	}
	if err := repo.Save(ctx, snapshot); err != nil {
		return errors.Wrap(err, "save inventory")
	}
	return nil
}

// Load replaces the inventory with the snapshot in repo. A missing snapshot
// is reported as (false, nil) and leaves the inventory as it was.
func (inv *Inventory) Load(ctx context.Context, repo Repository) (bool, error) {
	items, err := repo.Load(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		audit.Warnf(inv.sink, "Attempted to load non-existing inventory file.")
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "load inventory")
	}
	for _, item := range items {
		if err := validateLoaded(item); err != nil {
			return false, errors.Wrap(err, "load inventory")
		}
	}
	inv.replace(items)
	audit.Infof(inv.sink, "Loaded inventory from file.")
	return true, nil
}

// replace swaps the mapping wholesale. A repeated ID keeps its first
// position and its last record.
func (inv *Inventory) replace(items []*Item) {
	inv.items = make(map[int64]*Item, len(items))
	inv.order = inv.order[:0:0]
	for _, item := range items {
		if _, seen := inv.items[item.ID]; !seen {
			inv.order = append(inv.order, item.ID)
		}
		inv.items[item.ID] = item
	}
}

// validateLoaded checks a stored record before it reaches the live
// inventory. Quantity is not checked: the admin override may leave it negative.
func validateLoaded(item *Item) error {
	if item == nil {
		return errors.Wrap(apperror.ErrInvalidArgument, "empty item record")
	}
	if item.Price < 0 {
		return errors.Wrapf(apperror.ErrInvalidArgument, "item %d: negative price %g", item.ID, item.Price)
	}
	if err := ValidateDiscount(item.Discount); err != nil {
		return errors.Wrapf(err, "item %d", item.ID)
	}
	return nil
}

func (inv *Inventory) get(id int64) (*Item, error) {
	item, ok := inv.items[id]
	if !ok {
		return nil, errors.Wrapf(apperror.ErrNotFound, "item ID %d", id)
	}
	return item, nil
}
