// Package events fans committed store changes out to in-process
// subscribers and, optionally, to a RabbitMQ exchange.
package events

import (
	EventBus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"resto/entity"
)

const (
	// TopicChange carries entity.Change values.
	TopicChange = "store:change"
	// TopicInventoryAlert carries InventoryAlert values.
	TopicInventoryAlert = "inventory:alert"
)

// InventoryAlert is raised for an item that is low on stock or expiring.
type InventoryAlert struct {
	ItemID   int64   `json:"itemId"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	LowStock bool    `json:"lowStock"`
	Expiry   string  `json:"expiry"`
}

// Bus is the in-process event bus. It satisfies entity.Notifier.
type Bus struct {
	bus EventBus.Bus
	log *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{bus: EventBus.New(), log: log}
}

// Notify publishes c synchronously to every change subscriber.
func (b *Bus) Notify(c entity.Change) {
	b.log.Debug("Store change",
		zap.String("entity", c.Entity),
		zap.String("action", string(c.Action)),
		zap.Int64("id", c.ID),
	)
	b.bus.Publish(TopicChange, c)
}

func (b *Bus) Alert(a InventoryAlert) {
	b.bus.Publish(TopicInventoryAlert, a)
}

func (b *Bus) OnChange(fn func(entity.Change)) error {
	return b.bus.Subscribe(TopicChange, fn)
}

func (b *Bus) OnAlert(fn func(InventoryAlert)) error {
	return b.bus.Subscribe(TopicInventoryAlert, fn)
}
