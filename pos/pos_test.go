package pos

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/cart"
	"resto/entity"
	"resto/form"
	"resto/model"
	"resto/query"
	"resto/storage"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newRestaurant(t *testing.T, slots storage.Slots, resize bool) *Restaurant {
	t.Helper()
	r := New(Options{
		Slots:       slots,
		ResizeSeats: resize,
		Tax:         cart.DefaultTax,
		Clock:       func() time.Time { return fixedNow },
	})
	require.NoError(t, r.Hydrate(context.Background()))
	return r
}

func TestDefaultPersistence(t *testing.T) {
	r := newRestaurant(t, storage.NewMemorySlots(), true)

	assert.True(t, r.Employees.Persistent())
	assert.True(t, r.Inventory.Persistent())
	assert.True(t, r.Tables.Persistent())
	assert.False(t, r.Payments.Persistent())
	assert.False(t, r.Menu.Persistent())
	assert.False(t, r.Orders.Persistent())
}

func TestPersistOverride(t *testing.T) {
	r := New(Options{
		Slots:   storage.NewMemorySlots(),
		Persist: map[string]bool{KeyMenu: true, KeyTables: false, KeyOrders: true},
	})
	assert.True(t, r.Menu.Persistent())
	assert.False(t, r.Tables.Persistent())
	assert.False(t, r.Orders.Persistent())
}

func TestEmployeeFormScenario(t *testing.T) {
	ctx := context.Background()
	r := newRestaurant(t, storage.NewMemorySlots(), true)
	f := r.EmployeeForm(form.NewCapabilities(PermEditEmployees, PermDeleteEmployees))

	f.OpenForCreate()
	require.NoError(t, f.SetFields(map[string]any{
		"name":     "Neha Singh",
		"phone":    "+91 99999 00000",
		"email":    "neha@example.com",
		"role":     "Chef",
		"joinDate": "2024-05-01",
	}))
	added, err := f.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), added.ID)
	assert.Equal(t, model.EmployeeActive, added.Status)
	assert.Equal(t, form.Closed, f.State())

	toggled, err := r.ToggleEmployeeStatus(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EmployeeInactive, toggled.Status)

	page := query.Run(EmployeeQuery, r.Employees.List(), query.Request{Category: "Chef"})
	require.Equal(t, 2, page.Total)
}

func TestEmployeeFormNeedsPermission(t *testing.T) {
	r := newRestaurant(t, nil, true)
	f := r.EmployeeForm(form.NewCapabilities())

	f.OpenForCreate()
	require.NoError(t, f.SetFields(map[string]any{"name": "X", "phone": "1", "email": "x@example.com"}))
	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, form.ErrPermissionDenied)
	assert.Len(t, r.Employees.List(), 3)

	deleted, err := f.Delete(context.Background(), 1, func() bool { return true })
	assert.ErrorIs(t, err, form.ErrPermissionDenied)
	assert.False(t, deleted)
}

func TestInventoryLowStockScenario(t *testing.T) {
	ctx := context.Background()
	r := newRestaurant(t, storage.NewMemorySlots(), true)
	f := r.InventoryForm(nil)

	f.OpenForCreate()
	require.NoError(t, f.SetFields(map[string]any{
		"name":           "Paneer",
		"category":       "Dairy",
		"quantity":       "15",
		"unit":           "kg",
		"expiry":         "2024-06-30",
		"alertThreshold": "10",
	}))
	item, err := f.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), item.ID)
	assert.False(t, item.LowStock())

	before := r.Inventory.List()
	adjusted, err := r.AdjustStock(ctx, item.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 5.0, adjusted.Quantity)
	assert.True(t, adjusted.LowStock())

	after := r.Inventory.List()
	for i := 0; i < 3; i++ {
		assert.Equal(t, before[i], after[i])
	}

	floored, err := r.AdjustStock(ctx, item.ID, -100)
	require.NoError(t, err)
	assert.Equal(t, 0.0, floored.Quantity)
}

func TestAlerts(t *testing.T) {
	r := newRestaurant(t, nil, true)

	alerts := r.Alerts()
	// Milk expires in two days.
	require.Len(t, alerts, 1)
	assert.Equal(t, "Milk", alerts[0].Name)
	assert.Equal(t, string(model.ExpiryExpiringSoon), alerts[0].Expiry)
	assert.False(t, alerts[0].LowStock)
}

func TestInventoryMirroredSlot(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemorySlots()
	r := newRestaurant(t, slots, true)

	_, err := r.AdjustStock(ctx, 1, 5)
	require.NoError(t, err)

	primary, err := slots.Get(ctx, KeyInventory)
	require.NoError(t, err)
	mirror, err := slots.Get(ctx, KeyInventoryItems)
	require.NoError(t, err)
	assert.JSONEq(t, string(primary), string(mirror))
}

func TestTableCapacityResize(t *testing.T) {
	ctx := context.Background()
	r := newRestaurant(t, storage.NewMemorySlots(), true)

	_, err := r.AddSeatOrder(ctx, 1, 2, SeatOrder{Name: "Tea", Price: 20})
	require.NoError(t, err)

	f := r.TableForm(nil)
	t1, err := r.Tables.Get(1)
	require.NoError(t, err)
	require.NoError(t, f.OpenForEdit(t1))
	require.NoError(t, f.OnFieldChange("capacity", "6"))
	updated, err := f.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, 6, updated.Capacity)
	require.Len(t, updated.Seats, 6)
	for i, s := range updated.Seats {
		assert.Equal(t, i+1, s.SeatNumber)
	}
	assert.Len(t, updated.Seats[1].Orders, 1)
}

func TestTableCapacityWithoutResizeIsRepairedOnReload(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemorySlots()
	r := newRestaurant(t, slots, false)

	updated, err := r.Tables.Update(ctx, 1, entity.Patch{"capacity": 6})
	require.NoError(t, err)
	assert.Len(t, updated.Seats, 4)

	reloaded := newRestaurant(t, slots, false)
	t1, err := reloaded.Tables.Get(1)
	require.NoError(t, err)
	assert.Len(t, t1.Seats, 6)
}

func TestNewTableGetsSeats(t *testing.T) {
	r := newRestaurant(t, nil, false)
	f := r.TableForm(nil)

	f.OpenForCreate()
	require.NoError(t, f.SetFields(map[string]any{"name": "T7", "capacity": "3"}))
	table, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Seats, 3)
	assert.Equal(t, fixedNow.UnixMilli(), table.ID)
}

func TestSeatOrdersAndBill(t *testing.T) {
	ctx := context.Background()
	r := newRestaurant(t, nil, true)

	_, err := r.AddSeatOrder(ctx, 2, 1, SeatOrder{Name: "Coffee", Price: 40})
	require.NoError(t, err)
	table, err := r.AddSeatOrder(ctx, 2, 1, SeatOrder{Name: "Cake", Price: 60})
	require.NoError(t, err)

	bill, err := r.SeatBill(2, 1)
	require.NoError(t, err)
	assert.Len(t, bill.Lines, 2)
	assert.Equal(t, 100.0, bill.Total)
	assert.NotEqual(t, bill.Lines[0].ID, bill.Lines[1].ID)

	_, err = r.RemoveSeatOrder(ctx, 2, 1, table.Seats[0].Orders[0].ID)
	require.NoError(t, err)
	bill, err = r.SeatBill(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 60.0, bill.Total)

	_, err = r.AddSeatOrder(ctx, 2, 9, SeatOrder{Name: "Tea"})
	assert.ErrorIs(t, err, ErrSeatNotFound)
	_, err = r.RemoveSeatOrder(ctx, 2, 1, 12345)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSeatOrderRejectsNegativePrice(t *testing.T) {
	ctx := context.Background()
	r := newRestaurant(t, nil, true)

	_, err := r.AddSeatOrder(ctx, 1, 1, SeatOrder{Name: "Refund", Price: -50})
	assert.ErrorIs(t, err, entity.ErrInvalid)

	bill, err := r.SeatBill(1, 1)
	require.NoError(t, err)
	assert.Empty(t, bill.Lines)
	assert.Zero(t, bill.Total)
}

func TestZeroTaxIsKept(t *testing.T) {
	r := New(Options{Tax: 0})
	assert.Zero(t, r.Cart.Summary().Tax)
}

func TestConcurrentCheckoutRecordsOnePayment(t *testing.T) {
	ctx := context.Background()
	r := newRestaurant(t, nil, true)
	_, err := r.AddToCart(1)
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		errs = make([]error, 8)
	)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.Checkout(ctx, model.OrderDineIn, model.PayCash)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrEmptyCart)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, r.Payments.List(), 4)
}

func TestOrderTabs(t *testing.T) {
	r := newRestaurant(t, nil, true)

	all := r.OrderPage(model.AllOrdersTab, query.Request{})
	assert.Equal(t, 5, all.Total)

	preparing := r.OrderPage("preparing", query.Request{})
	require.Equal(t, 2, preparing.Total)
	assert.Equal(t, "#101", preparing.Items[0].OrderNumber)
	assert.Equal(t, 298.0, preparing.Items[0].Total)
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	r := newRestaurant(t, nil, true)

	_, err := r.Checkout(ctx, model.OrderDineIn, model.PayCash)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = r.AddToCart(1)
	require.NoError(t, err)
	_, err = r.AddToCart(1)
	require.NoError(t, err)

	out, err := r.Checkout(ctx, model.OrderTakeaway, model.PayUPI)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentUnpaid, out.Payment.PaymentStatus)
	assert.Equal(t, "12:00", out.Payment.Time)
	assert.InDelta(t, 2*12.99+25, out.Summary.Total, 0.001)
	assert.Empty(t, r.Cart.Lines())
	assert.Len(t, r.Payments.List(), 4)
}

func TestClearMenuCategoryHidesFromCatalog(t *testing.T) {
	r := newRestaurant(t, nil, true)

	before := len(r.Catalog())
	_, err := r.ClearMenuCategory(context.Background(), 6)
	require.NoError(t, err)

	// Steak was the only Main Course dish.
	assert.Equal(t, before-1, len(r.Catalog()))
}
