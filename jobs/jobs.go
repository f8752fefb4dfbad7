// Package jobs runs the periodic checks of the restaurant.
package jobs

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"resto/events"
	"resto/metrics"
	"resto/pos"
)

// Scheduler runs the inventory sweep on a cron spec.
type Scheduler struct {
	sched *cron.Cron
	r     *pos.Restaurant
	bus   *events.Bus
	log   *zap.Logger
}

func NewScheduler(r *pos.Restaurant, bus *events.Bus, log *zap.Logger) *Scheduler {
	return &Scheduler{
		sched: cron.New(),
		r:     r,
		bus:   bus,
		log:   log.Named("jobs"),
	}
}

// Schedule registers the inventory sweep under spec, e.g. "@every 5m".
func (s *Scheduler) Schedule(spec string) error {
	_, err := s.sched.AddFunc(spec, func() {
		defer func() {
			if err := recover(); err != nil {
				s.log.Error("Inventory sweep panicked", zap.Any("error", err))
			}
		}()
		s.SweepInventory()
	})
	return err
}

// SweepInventory raises an alert for every low or expiring item and
// returns how many items are low on stock.
func (s *Scheduler) SweepInventory() int {
	alerts := s.r.Alerts()
	low := 0
	for _, a := range alerts {
		if a.LowStock {
			low++
		}
		s.bus.Alert(a)
	}
	metrics.LowStockItems.Set(float64(low))
	if len(alerts) > 0 {
		s.log.Info("Inventory needs attention", zap.Int("alerts", len(alerts)), zap.Int("low_stock", low))
	}
	return low
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.sched.Stop().Done()
}
