package model

type TableStatus string

const (
	TableVacant   TableStatus = "vacant"
	TableOccupied TableStatus = "occupied"
	TableReserved TableStatus = "reserved"
)

// OrderLine is one item ordered from a seat.
type OrderLine struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price" validate:"gte=0"`
}

type Seat struct {
	SeatNumber int         `json:"seatNumber"`
	Orders     []OrderLine `json:"orders" validate:"dive"`
}

// Total sums the seat's order lines.
func (s Seat) Total() float64 {
	var total float64
	for _, o := range s.Orders {
		total += o.Price
	}
	return total
}

type Table struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name" validate:"required"`
	Status   TableStatus `json:"status" validate:"oneof=vacant occupied reserved"`
	Shape    string      `json:"shape,omitempty"`
	Capacity int         `json:"capacity" validate:"min=1"`
	Seats    []Seat      `json:"seats" validate:"dive"`
}

// NewSeats returns n empty seats numbered from 1.
func NewSeats(n int) []Seat {
	if n < 0 {
		n = 0
	}
	seats := make([]Seat, n)
	for i := range seats {
		seats[i] = Seat{SeatNumber: i + 1, Orders: []OrderLine{}}
	}
	return seats
}

// Clone deep-copies the seats so the copy can be changed freely.
func (t Table) Clone() Table {
	if t.Seats == nil {
		return t
	}
	seats := make([]Seat, len(t.Seats))
	for i, s := range t.Seats {
		seats[i] = Seat{SeatNumber: s.SeatNumber, Orders: append([]OrderLine{}, s.Orders...)}
	}
	t.Seats = seats
	return t
}

// SeatsMatchCapacity reports whether the seat list is consistent with capacity.
func (t Table) SeatsMatchCapacity() bool {
	return len(t.Seats) == t.Capacity
}

// Resized re-derives the seats from capacity. Orders on seats that survive
// are kept; seats past the new capacity are dropped.
func (t Table) Resized() Table {
	t = t.Clone()
	seats := NewSeats(t.Capacity)
	for i := range seats {
		if i < len(t.Seats) {
			seats[i].Orders = t.Seats[i].Orders
		}
	}
	t.Seats = seats
	return t
}

// Seat returns the seat with the given number.
func (t Table) Seat(number int) (Seat, bool) {
	for _, s := range t.Seats {
		if s.SeatNumber == number {
			return s, true
		}
	}
	return Seat{}, false
}

// WithSeatOrders returns a copy whose seat orders have been replaced by fn.
func (t Table) WithSeatOrders(number int, fn func([]OrderLine) []OrderLine) (Table, bool) {
	t = t.Clone()
	for i, s := range t.Seats {
		if s.SeatNumber == number {
			t.Seats[i].Orders = fn(s.Orders)
			return t, true
		}
	}
	return t, false
}
