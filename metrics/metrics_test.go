package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/entity"
	"resto/events"
)

func TestAttachCountsChanges(t *testing.T) {
	b := events.NewBus(nil)
	require.NoError(t, Attach(b))

	before := testutil.ToFloat64(Mutations.WithLabelValues("menu", "created"))
	b.Notify(entity.Change{Entity: "menu", Action: entity.ActionCreated, ID: 13, Size: 13})

	assert.Equal(t, before+1, testutil.ToFloat64(Mutations.WithLabelValues("menu", "created")))
	assert.Equal(t, 13.0, testutil.ToFloat64(Records.WithLabelValues("menu")))
}

func TestObserveAlert(t *testing.T) {
	before := testutil.ToFloat64(InventoryAlerts.WithLabelValues("low_stock"))
	ObserveAlert(events.InventoryAlert{ItemID: 1, LowStock: true, Expiry: "expired"})

	assert.Equal(t, before+1, testutil.ToFloat64(InventoryAlerts.WithLabelValues("low_stock")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(InventoryAlerts.WithLabelValues("expired")), 1.0)
}
