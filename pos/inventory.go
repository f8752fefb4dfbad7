package pos

import (
	"context"

	"resto/events"
	"resto/model"
)

func (r *Restaurant) ToggleEmployeeStatus(ctx context.Context, id int64) (model.Employee, error) {
	return r.Employees.Toggle(ctx, id, "status")
}

// AdjustStock moves an item's quantity by delta, flooring at zero.
func (r *Restaurant) AdjustStock(ctx context.Context, id int64, delta float64) (model.InventoryItem, error) {
	return r.Inventory.Apply(ctx, id, func(it model.InventoryItem) (model.InventoryItem, error) {
		return it.Adjusted(delta), nil
	})
}

func (r *Restaurant) ToggleDeliveryUpdate(ctx context.Context, id int64) (model.Delivery, error) {
	return r.Deliveries.Toggle(ctx, id, "updateInventory")
}

// StockStatus is an inventory row with its derived flags.
type StockStatus struct {
	model.InventoryItem
	LowStock bool               `json:"lowStock"`
	Expiry   model.ExpiryStatus `json:"expiryStatus"`
}

// StockStatuses derives the flags of every item at the current time.
func (r *Restaurant) StockStatuses() []StockStatus {
	now := r.Now()
	items := r.Inventory.List()
	out := make([]StockStatus, len(items))
	for i, it := range items {
		out[i] = StockStatus{InventoryItem: it, LowStock: it.LowStock(), Expiry: it.ExpiryStatus(now)}
	}
	return out
}

// Alerts lists the items that are low on stock or not in good condition.
func (r *Restaurant) Alerts() []events.InventoryAlert {
	var alerts []events.InventoryAlert
	for _, s := range r.StockStatuses() {
		if !s.LowStock && s.Expiry == model.ExpiryGood {
			continue
		}
		a := events.InventoryAlert{ItemID: s.ID, Name: s.Name, Quantity: s.Quantity, LowStock: s.LowStock}
		if s.Expiry != model.ExpiryGood {
			a.Expiry = string(s.Expiry)
		}
		alerts = append(alerts, a)
	}
	return alerts
}
