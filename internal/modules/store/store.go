// Package store is the façade a session drives: it owns the inventory and the
// sales ledger and is the one place where role checks gate mutations.
package store

import (
	"context"
	"time"

	"github.com/georgemunganga/printa-retail/internal/apperror"
	"github.com/georgemunganga/printa-retail/internal/audit"
	"github.com/georgemunganga/printa-retail/internal/modules/inventory"
	"github.com/georgemunganga/printa-retail/internal/modules/sales"
	"github.com/georgemunganga/printa-retail/internal/modules/user"
	"github.com/pkg/errors"
)

// Cart is the checkout collaborator. Checkout returns the amount charged;
// Lines then lists what was sold.
type Cart interface {
	Checkout() (float64, error)
	Lines() []sales.LineItem
}

// Options wires the store's collaborators. Nil repositories fall back to
// the default JSON files in the working directory.
type Options struct {
	Sink          audit.Sink
	InventoryRepo inventory.Repository
	SalesRepo     sales.Repository
}

// Store composes Inventory and sales History for one session user.
type Store struct {
	user      user.User
	inventory *inventory.Inventory
	history   *sales.History
	invRepo   inventory.Repository
	salesRepo sales.Repository
	sink      audit.Sink
}

// New creates a store with an empty inventory and ledger.
func New(u user.User, opts Options) *Store {
	sink := opts.Sink
	if sink == nil {
		sink = audit.Nop{}
	}
	invRepo := opts.InventoryRepo
	if invRepo == nil {
		invRepo = inventory.NewFileRepository(inventory.DefaultFile)
	}
	salesRepo := opts.SalesRepo
	if salesRepo == nil {
		salesRepo = sales.NewFileRepository(sales.DefaultFile)
	}
	return &Store{
		user:      u,
		inventory: inventory.New(sink),
		history:   sales.NewHistory(sink),
		invRepo:   invRepo,
		salesRepo: salesRepo,
		sink:      sink,
	}
}

// WithUser returns a store acting as u over the same inventory and ledger.
func (s *Store) WithUser(u user.User) *Store {
	c := *s
	c.user = u
	return &c
}

func (s *Store) User() user.User                  { return s.user }
func (s *Store) Inventory() *inventory.Inventory { return s.inventory }
func (s *Store) History() *sales.History         { return s.history }

func (s *Store) requireAdmin(action string) error {
	switch s.user.Role {
	case user.RoleAdmin:
		return nil
	case user.RoleCustomer:
		return errors.Wrapf(apperror.ErrPermissionDenied, "only admins can %s", action)
	default:
		return errors.Wrapf(apperror.ErrPermissionDenied, "unknown role %q cannot %s", s.user.Role, action)
	}
}

// AddItemToInventory creates and inserts a new item. Admin only.
func (s *Store) AddItemToInventory(id int64, name string, price float64, quantity int) error {
	if err := s.requireAdmin("add items to the inventory"); err != nil {
		return err
	}
	return s.inventory.AddItem(inventory.NewItem(id, name, price, quantity))
}

// UpdateInventoryQuantity overwrites an item's stock count. Admin only.
func (s *Store) UpdateInventoryQuantity(id int64, quantity int) error {
	if err := s.requireAdmin("update item quantity"); err != nil {
		return err
	}
	return s.inventory.UpdateQuantity(id, quantity)
}

// ApplyDiscount sets the discount of one item. Admin only.
func (s *Store) ApplyDiscount(id int64, percent float64) error {
	if err := s.requireAdmin("apply discounts"); err != nil {
		return err
	}
	return s.inventory.ApplyDiscountToItem(id, percent)
}

// ApplyDiscountToAll sets the discount of every item. Admin only.
func (s *Store) ApplyDiscountToAll(percent float64) error {
	if err := s.requireAdmin("apply discounts"); err != nil {
		return err
	}
	return s.inventory.ApplyDiscountToAll(percent)
}

// Checkout charges cart, records the sale for customerName and returns the
// total. Stock depletion is the cart's job.
func (s *Store) Checkout(cart Cart, customerName string) (float64, error) {
	total, err := cart.Checkout()
	if err != nil {
		return 0, errors.Wrap(err, "checkout")
	}
	s.history.RecordSale(sales.NewSale(cart.Lines(), total, customerName))
	audit.Infof(s.sink, "Checkout completed for %s: Total cost $%.2f", customerName, total)
	return total, nil
}

func (s *Store) InventoryReport() string { return s.inventory.Report() }

func (s *Store) SearchInventory(keyword string) []*inventory.Item {
	return s.inventory.SearchItems(keyword)
}

// SearchReport renders the search results for keyword.
func (s *Store) SearchReport(keyword string) string {
	return inventory.FormatReport("Search Results for '"+keyword+"'", s.SearchInventory(keyword))
}

func (s *Store) SalesReport() string { return s.history.Report() }

func (s *Store) SalesByDate(day time.Time) []sales.Sale { return s.history.SalesByDate(day) }

func (s *Store) TotalRevenue() float64 { return s.history.TotalRevenue() }

// Save persists the inventory and then the sales ledger.
func (s *Store) Save(ctx context.Context) error {
	if err := s.inventory.Save(ctx, s.invRepo); err != nil {
		return err
	}
	return s.history.Save(ctx, s.salesRepo)
}

// LoadResult reports which snapshots were found.
type LoadResult struct {
	Inventory bool `json:"inventory_loaded"`
	Sales     bool `json:"sales_loaded"`
}

// Load replaces the inventory and ledger with the persisted snapshots.
// Missing snapshots are skipped.
func (s *Store) Load(ctx context.Context) (LoadResult, error) {
	var res LoadResult
	var err error
	if res.Inventory, err = s.inventory.Load(ctx, s.invRepo); err != nil {
		return res, err
	}
	if res.Sales, err = s.history.Load(ctx, s.salesRepo); err != nil {
		return res, err
	}
	return res, nil
}
