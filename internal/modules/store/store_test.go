package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/georgemunganga/printa-retail/internal/apperror"
	"github.com/georgemunganga/printa-retail/internal/audit"
	"github.com/georgemunganga/printa-retail/internal/modules/cart"
	"github.com/georgemunganga/printa-retail/internal/modules/inventory"
	"github.com/georgemunganga/printa-retail/internal/modules/sales"
	"github.com/georgemunganga/printa-retail/internal/modules/user"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUser(t *testing.T, name, role string) user.User {
	t.Helper()
	u, err := user.New(name, role)
	require.NoError(t, err)
	return u
}

func setup(t *testing.T, role string) (*Store, *audit.Recorder) {
	t.Helper()
	dir := t.TempDir()
	rec := &audit.Recorder{}
	s := New(mustUser(t, "tester", role), Options{
		Sink:          rec,
		InventoryRepo: inventory.NewFileRepository(filepath.Join(dir, "inventory.json")),
		SalesRepo:     sales.NewFileRepository(filepath.Join(dir, "sales_history.json")),
	})
	return s, rec
}

type fakeCart struct {
	total float64
	lines []sales.LineItem
	err   error
}

func (c *fakeCart) Checkout() (float64, error) { return c.total, c.err }
func (c *fakeCart) Lines() []sales.LineItem    { return c.lines }

func TestCustomerCannotMutate(t *testing.T) {
	admin, _ := setup(t, "admin")
	require.NoError(t, admin.AddItemToInventory(1, "Widget", 10, 5))
	customer := admin.WithUser(mustUser(t, "carol", "customer"))
	before := admin.InventoryReport()

	assert.ErrorIs(t, customer.AddItemToInventory(2, "Gadget", 4, 1), apperror.ErrPermissionDenied)
	assert.ErrorIs(t, customer.UpdateInventoryQuantity(1, 0), apperror.ErrPermissionDenied)
	assert.ErrorIs(t, customer.ApplyDiscount(1, 50), apperror.ErrPermissionDenied)
	assert.ErrorIs(t, customer.ApplyDiscountToAll(50), apperror.ErrPermissionDenied)

	assert.Equal(t, 1, admin.Inventory().Len())
	assert.Equal(t, before, admin.InventoryReport())
}

func TestUnknownRoleIsDenied(t *testing.T) {
	s, _ := setup(t, "admin")
	forged := s.WithUser(user.User{Username: "eve", Role: user.Role("root")})
	assert.ErrorIs(t, forged.AddItemToInventory(1, "Widget", 10, 5), apperror.ErrPermissionDenied)
	assert.Equal(t, 0, s.Inventory().Len())
}

func TestCustomerCanReadAndCheckout(t *testing.T) {
	admin, _ := setup(t, "admin")
	require.NoError(t, admin.AddItemToInventory(1, "Widget", 10, 5))
	customer := admin.WithUser(mustUser(t, "carol", "customer"))

	assert.Len(t, customer.SearchInventory("widg"), 1)
	assert.Contains(t, customer.InventoryReport(), "Widget (ID: 1)")

	total, err := customer.Checkout(&fakeCart{total: 9.5, lines: []sales.LineItem{{Name: "Widget", Quantity: 1}}}, "carol")
	require.NoError(t, err)
	assert.Equal(t, 9.5, total)
	assert.Equal(t, 1, admin.History().Len())
}

func TestWidgetScenario(t *testing.T) {
	s, rec := setup(t, "admin")
	require.NoError(t, s.AddItemToInventory(1, "Widget", 10.00, 5))
	require.NoError(t, s.ApplyDiscount(1, 20))

	item, ok := s.Inventory().FindItem(1)
	require.True(t, ok)
	assert.InDelta(t, 8.00, item.DiscountedPrice(), 1e-9)

	c := cart.New(s.Inventory())
	require.NoError(t, c.Add(1, 2))
	rec.Reset()

	total, err := s.Checkout(c, "dave")
	require.NoError(t, err)
	assert.InDelta(t, 16.00, total, 1e-9)
	assert.Equal(t, 3, item.Quantity)

	recorded := s.History().Sales()
	require.Len(t, recorded, 1)
	assert.Equal(t, []sales.LineItem{{Name: "Widget", Quantity: 2}}, recorded[0].Items())
	assert.Equal(t, total, recorded[0].TotalCost())
	assert.Equal(t, "dave", recorded[0].CustomerName())

	msgs := rec.Messages()
	assert.Contains(t, msgs, "Checkout completed for dave: Total cost $16.00")

	// later inventory changes do not rewrite history
	require.NoError(t, s.ApplyDiscount(1, 50))
	assert.Equal(t, total, s.History().Sales()[0].TotalCost())
}

func TestCheckoutFailureRecordsNothing(t *testing.T) {
	s, _ := setup(t, "customer")
	_, err := s.Checkout(&fakeCart{err: errors.Wrap(apperror.ErrInsufficientStock, "out")}, "carol")
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, 0, s.History().Len())
}

func TestCheckoutUsesCartTotal(t *testing.T) {
	s, _ := setup(t, "admin")
	require.NoError(t, s.AddItemToInventory(1, "Widget", 10, 5))

	total, err := s.Checkout(&fakeCart{total: 123.45, lines: []sales.LineItem{{Name: "Widget", Quantity: 2}}}, "erin")
	require.NoError(t, err)
	assert.Equal(t, 123.45, total)

	item, _ := s.Inventory().FindItem(1)
	assert.Equal(t, 5, item.Quantity)
	assert.InDelta(t, 123.45, s.TotalRevenue(), 1e-9)
	assert.Len(t, s.SalesByDate(time.Now()), 1)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s, _ := setup(t, "admin")

	res, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, LoadResult{}, res)

	require.NoError(t, s.AddItemToInventory(1, "Widget", 10, 5))
	require.NoError(t, s.AddItemToInventory(2, "Gadget", 4.5, 3))
	_, err = s.Checkout(&fakeCart{total: 4.5, lines: []sales.LineItem{{Name: "Gadget", Quantity: 1}}}, "carol")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx))

	require.NoError(t, s.UpdateInventoryQuantity(1, 0))
	res, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, LoadResult{Inventory: true, Sales: true}, res)

	item, _ := s.Inventory().FindItem(1)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 1, s.History().Len())
	assert.InDelta(t, 4.5, s.TotalRevenue(), 1e-9)
}

func TestReports(t *testing.T) {
	s, _ := setup(t, "admin")
	require.NoError(t, s.AddItemToInventory(1, "Widget", 10, 5))
	require.NoError(t, s.AddItemToInventory(2, "Gadget", 4.5, 3))

	assert.Equal(t, "--- Search Results for 'gad' ---\nGadget (ID: 2) - $4.50 x 3 units\n", s.SearchReport("gad"))
	assert.Equal(t, "--- Sales Report ---\nTotal Revenue: $0.00\n", s.SalesReport())
}
