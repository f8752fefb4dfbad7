package model

import "time"

// CategoryAll is the pass-through category filter.
const CategoryAll = "All"

var InventoryCategories = []string{CategoryAll, "Grains", "Produce", "Dairy", "Beverages", "Spices", "Meat", "Frozen"}

type Unit string

var Units = []Unit{"kg", "g", "L", "ml", "pcs", "box", "pack"}

type InventoryItem struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name" validate:"required"`
	Category       string  `json:"category"`
	Quantity       float64 `json:"quantity" validate:"gte=0"`
	Unit           Unit    `json:"unit" validate:"oneof=kg g L ml pcs box pack"`
	Expiry         Date    `json:"expiry"`
	AlertThreshold float64 `json:"alertThreshold" validate:"gte=0"`
	Supplier       string  `json:"supplier"`
	Price          float64 `json:"price" validate:"gte=0"`
}

// LowStock reports whether the quantity has reached the alert threshold.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.AlertThreshold
}

// Adjusted moves the quantity by delta, never below zero.
func (i InventoryItem) Adjusted(delta float64) InventoryItem {
	i.Quantity += delta
	if i.Quantity < 0 {
		i.Quantity = 0
	}
	return i
}

type ExpiryStatus string

const (
	ExpiryGood         ExpiryStatus = "good"
	ExpiryExpiringSoon ExpiryStatus = "expiring-soon"
	ExpiryExpired      ExpiryStatus = "expired"
)

// ExpiringWindow is how far ahead an expiry counts as soon.
const ExpiringWindow = 3 * 24 * time.Hour

func (i InventoryItem) ExpiryStatus(now time.Time) ExpiryStatus {
	if i.Expiry.IsZero() {
		return ExpiryGood
	}
	if now.After(i.Expiry.Time) {
		return ExpiryExpired
	}
	if now.Add(ExpiringWindow).After(i.Expiry.Time) {
		return ExpiryExpiringSoon
	}
	return ExpiryGood
}

type Supplier struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact"`
}

type Delivery struct {
	ID              int64   `json:"id"`
	Item            string  `json:"item" validate:"required"`
	Supplier        string  `json:"supplier"`
	Quantity        float64 `json:"quantity" validate:"gte=0"`
	Unit            Unit    `json:"unit" validate:"omitempty,oneof=kg g L ml pcs box pack"`
	DeliveryDate    Date    `json:"deliveryDate"`
	UpdateInventory bool    `json:"updateInventory"`
}

func (d Delivery) Toggled() Delivery {
	d.UpdateInventory = !d.UpdateInventory
	return d
}
