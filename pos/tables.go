package pos

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"resto/model"
)

var ErrSeatNotFound = errors.New("seat not found")

// repairSeats re-derives seats for a table whose seat count drifted from
// its capacity.
func repairSeats(t model.Table) model.Table {
	if t.SeatsMatchCapacity() {
		return t
	}
	return t.Resized()
}

// seatsForNewTables only fills in seats for a table that has none, leaving
// capacity edits alone until the next reload.
func seatsForNewTables(t model.Table) model.Table {
	if t.Seats == nil {
		t.Seats = model.NewSeats(t.Capacity)
	}
	return t
}

// SeatOrder is the body of an order placed from a seat.
type SeatOrder struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

// AddSeatOrder appends a line to a seat and returns the updated table.
func (r *Restaurant) AddSeatOrder(ctx context.Context, tableID int64, seat int, order SeatOrder) (model.Table, error) {
	line := model.OrderLine{ID: r.nextLineID(), Name: order.Name, Price: order.Price}
	return r.Tables.Apply(ctx, tableID, func(t model.Table) (model.Table, error) {
		next, ok := t.WithSeatOrders(seat, func(lines []model.OrderLine) []model.OrderLine {
			return append(lines, line)
		})
		if !ok {
			return t, fmt.Errorf("table %d seat %d: %w", tableID, seat, ErrSeatNotFound)
		}
		return next, nil
	})
}

// RemoveSeatOrder drops one line from a seat.
func (r *Restaurant) RemoveSeatOrder(ctx context.Context, tableID int64, seat int, lineID int64) (model.Table, error) {
	return r.Tables.Apply(ctx, tableID, func(t model.Table) (model.Table, error) {
		var found bool
		next, ok := t.WithSeatOrders(seat, func(lines []model.OrderLine) []model.OrderLine {
			return slices.DeleteFunc(lines, func(l model.OrderLine) bool {
				if l.ID == lineID {
					found = true
					return true
				}
				return false
			})
		})
		if !ok {
			return t, fmt.Errorf("table %d seat %d: %w", tableID, seat, ErrSeatNotFound)
		}
		if !found {
			return t, notFound("order line", lineID)
		}
		return next, nil
	})
}

// SeatBill is the bill of one seat.
type SeatBill struct {
	TableID int64             `json:"tableId"`
	Table   string            `json:"table"`
	Seat    int               `json:"seat"`
	Lines   []model.OrderLine `json:"lines"`
	Total   float64           `json:"total"`
}

func (r *Restaurant) SeatBill(tableID int64, seat int) (SeatBill, error) {
	t, err := r.Tables.Get(tableID)
	if err != nil {
		return SeatBill{}, err
	}
	s, ok := t.Seat(seat)
	if !ok {
		return SeatBill{}, fmt.Errorf("table %d seat %d: %w", tableID, seat, ErrSeatNotFound)
	}
	lines := s.Orders
	if lines == nil {
		lines = []model.OrderLine{}
	}
	return SeatBill{TableID: t.ID, Table: t.Name, Seat: s.SeatNumber, Lines: lines, Total: s.Total()}, nil
}
