package pos

import (
	"context"
	"errors"
	"fmt"

	"resto/cart"
	"resto/model"
	"resto/query"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderView is an order with its parsed lines and total.
type OrderView struct {
	model.Order
	Lines []model.OrderItem `json:"lines"`
	Total float64           `json:"total"`
}

// OrderPage runs the orders list for a status tab.
func (r *Restaurant) OrderPage(tab string, req query.Request) query.Page[OrderView] {
	req.Category = OrderTab(tab)
	page := query.Run(OrderQuery, r.Orders.List(), req)
	prices := model.OrderPrices()
	views := make([]OrderView, len(page.Items))
	for i, o := range page.Items {
		views[i] = OrderView{Order: o, Lines: o.Lines(prices), Total: o.Total(prices)}
	}
	return query.Page[OrderView]{
		Items:      views,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		Total:      page.Total,
	}
}

// Catalog groups the menu for the order screen.
func (r *Restaurant) Catalog() []model.CatalogSection {
	return model.Catalog(r.Menu.List())
}

// AddToCart puts a menu item into the cart by id.
func (r *Restaurant) AddToCart(menuID int64) (cart.Line, error) {
	m, err := r.Menu.Get(menuID)
	if err != nil {
		return cart.Line{}, err
	}
	return r.Cart.Add(cart.Item{Name: m.Name, Price: m.Price, Image: m.Image}), nil
}

// Checkout is the order handed from the cart to payment.
type Checkout struct {
	Payment model.Payment `json:"payment"`
	Summary cart.Summary  `json:"summary"`
}

// Checkout turns the cart into an unpaid payment record and empties the
// cart. An empty cart is refused and left as is.
func (r *Restaurant) Checkout(ctx context.Context, orderType model.OrderType, method model.PaymentMethod) (Checkout, error) {
	summary := r.Cart.Take()
	if len(summary.Lines) == 0 {
		return Checkout{}, ErrEmptyCart
	}
	now := r.Now()
	p, err := r.Payments.Add(ctx, model.Payment{
		OrderID:       fmt.Sprintf("#%d", now.UnixMilli()%100000),
		OrderType:     orderType,
		PaymentMethod: method,
		PaymentStatus: model.PaymentUnpaid,
		Date:          model.NewDate(now),
		Time:          now.Format(model.TimeLayout),
	})
	if err != nil {
		for _, l := range summary.Lines {
			restored := r.Cart.Add(cart.Item{Name: l.Name, Price: l.Price, Image: l.Image})
			if l.Quantity > 1 {
				_, _ = r.Cart.ChangeQuantity(restored.ID, l.Quantity-1)
			}
		}
		return Checkout{}, err
	}
	return Checkout{Payment: p, Summary: summary}, nil
}

// ClearMenuCategory removes an item's category, hiding it from the catalog.
func (r *Restaurant) ClearMenuCategory(ctx context.Context, id int64) (model.MenuItem, error) {
	return r.Menu.Apply(ctx, id, func(m model.MenuItem) (model.MenuItem, error) {
		m.Category = ""
		return m, nil
	})
}
