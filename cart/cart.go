// Package cart is the running order panel fed from the menu catalog.
package cart

import (
	"errors"
	"sync"
	"time"
)

// DefaultTax is the flat tax added to every order.
const DefaultTax = 25

var ErrLineNotFound = errors.New("cart line not found")

// Item is what the catalog hands to the cart.
type Item struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
	Image string  `json:"image,omitempty"`
}

type Line struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Quantity int     `json:"quantity"`
}

func (l Line) Total() float64 {
	return l.Price * float64(l.Quantity)
}

// Summary is the cart as rendered in the order panel.
type Summary struct {
	Lines    []Line  `json:"lines"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Cart keeps lines in insertion order with an index from item name to line.
// Names match exactly.
type Cart struct {
	mu     sync.Mutex
	lines  []Line
	byName map[string]int
	tax    float64
	clock  func() time.Time
	lastID int64
}

type Option func(*Cart)

// WithClock sets the clock line ids are drawn from.
func WithClock(clock func() time.Time) Option {
	return func(c *Cart) { c.clock = clock }
}

func New(tax float64, opts ...Option) *Cart {
	c := &Cart{byName: map[string]int{}, tax: tax, clock: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add merges item into the line with the same name, or appends a new line
// with quantity 1.
func (c *Cart) Add(item Item) Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.byName[item.Name]; ok {
		c.lines[i].Quantity++
		return c.lines[i]
	}
	line := Line{ID: c.nextID(), Name: item.Name, Price: item.Price, Image: item.Image, Quantity: 1}
	c.byName[item.Name] = len(c.lines)
	c.lines = append(c.lines, line)
	return line
}

// ChangeQuantity moves a line's quantity by delta, never below 1.
func (c *Cart) ChangeQuantity(id int64, delta int) (Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = max(1, c.lines[i].Quantity+delta)
			return c.lines[i], nil
		}
	}
	return Line{}, ErrLineNotFound
}

func (c *Cart) Remove(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
			c.reindex()
			return nil
		}
	}
	return ErrLineNotFound
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.byName = map[string]int{}
}

func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

// Summary totals the cart. The flat tax applies even to an empty cart.
func (c *Cart) Summary() Summary {
	return c.summarize(c.Lines())
}

// Take returns the summary and empties the cart in one step.
func (c *Cart) Take() Summary {
	c.mu.Lock()
	lines := c.lines
	c.lines = nil
	c.byName = map[string]int{}
	c.mu.Unlock()
	return c.summarize(lines)
}

func (c *Cart) summarize(lines []Line) Summary {
	if lines == nil {
		lines = []Line{}
	}
	s := Summary{Lines: lines, Tax: c.tax}
	for _, l := range lines {
		s.Subtotal += l.Total()
	}
	s.Total = s.Subtotal + s.Tax
	return s
}

func (c *Cart) reindex() {
	c.byName = make(map[string]int, len(c.lines))
	for i, l := range c.lines {
		c.byName[l.Name] = i
	}
}

func (c *Cart) nextID() int64 {
	id := c.clock().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}
