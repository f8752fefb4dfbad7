package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := MustDate("2023-01-15")

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2023-01-15T00:00:00Z"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back))

	var plain Date
	require.NoError(t, json.Unmarshal([]byte(`"2023-01-15"`), &plain))
	assert.True(t, d.Equal(plain))
	assert.Equal(t, "2023-01-15", plain.Input())

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsZero())
	raw, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("not a date")
	assert.Error(t, err)
}

func TestParseOrderItem(t *testing.T) {
	prices := OrderPrices()

	tests := []struct {
		raw  string
		want OrderItem
	}{
		{"Burger x 2", OrderItem{Name: "Burger", Quantity: 2, BasePrice: 199, Total: 398}},
		{"Fries", OrderItem{Name: "Fries", Quantity: 1, BasePrice: 99, Total: 99}},
		{"Mystery x 3", OrderItem{Name: "Mystery", Quantity: 3, BasePrice: DefaultItemPrice, Total: 3 * DefaultItemPrice}},
		{"Soda x many", OrderItem{Name: "Soda", Quantity: 1, BasePrice: 49, Total: 49}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrderItem(tt.raw, prices))
		})
	}
}

func TestOrderTotal(t *testing.T) {
	o := Order{Items: []string{"Pizza x 1", "Soda x 2"}}
	assert.Equal(t, 397.0, o.Total(OrderPrices()))
}

func TestInventoryFlags(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	item := InventoryItem{Quantity: 15, AlertThreshold: 10}
	assert.False(t, item.LowStock())
	assert.True(t, item.Adjusted(-5).LowStock())
	assert.Equal(t, 0.0, item.Adjusted(-20).Quantity)

	assert.Equal(t, ExpiryGood, item.ExpiryStatus(now))
	item.Expiry = NewDate(now.AddDate(0, 0, -1))
	assert.Equal(t, ExpiryExpired, item.ExpiryStatus(now))
	item.Expiry = NewDate(now.AddDate(0, 0, 2))
	assert.Equal(t, ExpiryExpiringSoon, item.ExpiryStatus(now))
	item.Expiry = NewDate(now.AddDate(0, 0, 10))
	assert.Equal(t, ExpiryGood, item.ExpiryStatus(now))
}

func TestTableResize(t *testing.T) {
	table := Table{Capacity: 4, Seats: NewSeats(4)}
	table, ok := table.WithSeatOrders(3, func(l []OrderLine) []OrderLine {
		return append(l, OrderLine{ID: 1, Name: "Tea", Price: 20})
	})
	require.True(t, ok)

	grown := table
	grown.Capacity = 6
	assert.False(t, grown.SeatsMatchCapacity())
	grown = grown.Resized()
	require.Len(t, grown.Seats, 6)
	assert.Equal(t, 6, grown.Seats[5].SeatNumber)
	assert.Len(t, grown.Seats[2].Orders, 1)

	shrunk := table
	shrunk.Capacity = 2
	shrunk = shrunk.Resized()
	assert.Len(t, shrunk.Seats, 2)
	assert.Empty(t, shrunk.Seats[0].Orders)
	assert.Empty(t, shrunk.Seats[1].Orders)
	assert.Len(t, table.Seats[2].Orders, 1)
}

func TestTableCloneIsDeep(t *testing.T) {
	table := Table{Capacity: 1, Seats: NewSeats(1)}
	c := table.Clone()
	c.Seats[0].Orders = append(c.Seats[0].Orders, OrderLine{ID: 1})
	assert.Empty(t, table.Seats[0].Orders)
}

func TestCatalogSkipsUncategorised(t *testing.T) {
	items := SeedMenu()
	items[0].Category = ""

	sections := Catalog(items)
	var names []string
	for _, s := range sections {
		names = append(names, s.Category)
		for _, it := range s.Items {
			assert.NotEqual(t, "Pizza", it.Name)
		}
	}
	assert.IsNonDecreasing(t, names)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(SeedEmployees()[0]))

	bad := SeedEmployees()[0]
	bad.Role = "Janitor"
	assert.Error(t, Validate(bad))

	item := SeedInventory(time.Now())[0]
	item.Quantity = -1
	assert.Error(t, Validate(item))
}
