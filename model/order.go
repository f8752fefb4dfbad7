package model

import (
	"strconv"
	"strings"
)

type OrderStatus string

const (
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
)

// AllOrdersTab is the order view tab that shows every status.
const AllOrdersTab = "all orders"

// Order is read-side data: items are "Name x Quantity" strings.
type Order struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	Status      OrderStatus `json:"status" validate:"oneof=preparing ready delivered"`
	Items       []string    `json:"items"`
}

type OrderItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	BasePrice float64 `json:"basePrice"`
	Total     float64 `json:"total"`
}

// DefaultItemPrice is charged for names missing from the price book.
const DefaultItemPrice = 99

// PriceBook maps an item name to its unit price.
type PriceBook map[string]float64

func (p PriceBook) Price(name string) float64 {
	if price, ok := p[name]; ok {
		return price
	}
	return DefaultItemPrice
}

// ParseOrderItem splits "Burger x 2". A missing or bad quantity counts as 1.
func ParseOrderItem(raw string, prices PriceBook) OrderItem {
	name, qty, found := strings.Cut(raw, " x ")
	quantity := 1
	if found {
		if n, err := strconv.Atoi(strings.TrimSpace(qty)); err == nil && n > 0 {
			quantity = n
		}
	}
	base := prices.Price(name)
	return OrderItem{Name: name, Quantity: quantity, BasePrice: base, Total: base * float64(quantity)}
}

func (o Order) Lines(prices PriceBook) []OrderItem {
	lines := make([]OrderItem, 0, len(o.Items))
	for _, raw := range o.Items {
		lines = append(lines, ParseOrderItem(raw, prices))
	}
	return lines
}

func (o Order) Total(prices PriceBook) float64 {
	var total float64
	for _, l := range o.Lines(prices) {
		total += l.Total
	}
	return total
}
