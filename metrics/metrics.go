// Package metrics exposes store activity to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"resto/entity"
	"resto/events"
)

var (
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "store_mutations_total",
		Help:      "Committed store mutations by entity and action.",
	}, []string{"entity", "action"})

	Records = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pos",
		Name:      "store_records",
		Help:      "Records currently held per entity.",
	}, []string{"entity"})

	InventoryAlerts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "inventory_alerts_total",
		Help:      "Inventory alerts raised by the sweep.",
	}, []string{"kind"})

	LowStockItems = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pos",
		Name:      "inventory_low_stock_items",
		Help:      "Inventory items at or below their alert threshold at the last sweep.",
	})
)

// Observe records a committed change.
func Observe(c entity.Change) {
	Mutations.WithLabelValues(c.Entity, string(c.Action)).Inc()
	Records.WithLabelValues(c.Entity).Set(float64(c.Size))
}

// ObserveAlert counts an inventory alert.
func ObserveAlert(a events.InventoryAlert) {
	if a.LowStock {
		InventoryAlerts.WithLabelValues("low_stock").Inc()
	}
	if a.Expiry != "" {
		InventoryAlerts.WithLabelValues(a.Expiry).Inc()
	}
}

// Attach subscribes the collectors to bus.
func Attach(b *events.Bus) error {
	if err := b.OnChange(Observe); err != nil {
		return err
	}
	return b.OnAlert(ObserveAlert)
}
