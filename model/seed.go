package model

import "time"

// Seed data written to an empty slot on first start.

func SeedEmployees() []Employee {
	return []Employee{
		{ID: 1, Name: "Rahul Sharma", Phone: "+91 98765 43210", Email: "rahul@example.com", Role: RoleManager, Status: EmployeeActive, JoinDate: MustDate("2023-01-15")},
		{ID: 2, Name: "Priya Patel", Phone: "+91 87654 32109", Email: "priya@example.com", Role: RoleChef, Status: EmployeeActive, JoinDate: MustDate("2023-02-20")},
		{ID: 3, Name: "Amit Kumar", Phone: "+91 76543 21098", Email: "amit@example.com", Role: RoleWaiter, Status: EmployeeInactive, JoinDate: MustDate("2023-03-10")},
	}
}

// SeedInventory dates expiries relative to now.
func SeedInventory(now time.Time) []InventoryItem {
	day := now.UTC().Truncate(24 * time.Hour)
	return []InventoryItem{
		{ID: 1, Name: "Basmati Rice", Category: "Grains", Quantity: 50, Unit: "kg", Expiry: NewDate(day.AddDate(0, 0, 30)), AlertThreshold: 5, Supplier: "India Gate", Price: 120},
		{ID: 2, Name: "Tomatoes", Category: "Produce", Quantity: 15, Unit: "kg", Expiry: NewDate(day.AddDate(0, 0, 5)), AlertThreshold: 10, Supplier: "Local Farm", Price: 40},
		{ID: 3, Name: "Milk", Category: "Dairy", Quantity: 20, Unit: "L", Expiry: NewDate(day.AddDate(0, 0, 2)), AlertThreshold: 5, Supplier: "Amul", Price: 60},
	}
}

func SeedSuppliers() []Supplier {
	return []Supplier{
		{ID: 1, Name: "Acme Foods", Contact: "1234567890"},
		{ID: 2, Name: "Fresh Produce", Contact: "0987654321"},
		{ID: 3, Name: "Poultry Suppliers", Contact: "5678901234"},
	}
}

func SeedDeliveries() []Delivery {
	return []Delivery{
		{ID: 1, Item: "Basmati Rice", Supplier: "Grains Inc.", Quantity: 25, Unit: "kg", DeliveryDate: MustDate("2023-06-15")},
		{ID: 2, Item: "Onions", Supplier: "Produce Co.", Quantity: 15, Unit: "kg", DeliveryDate: MustDate("2023-06-18")},
		{ID: 3, Item: "Chicken Breasts", Supplier: "Meat Suppliers", Quantity: 20, Unit: "kg", DeliveryDate: MustDate("2023-06-20")},
	}
}

func SeedTables() []Table {
	specs := []struct {
		name     string
		status   TableStatus
		capacity int
	}{
		{"T1", TableVacant, 4},
		{"T2", TableOccupied, 2},
		{"T3", TableReserved, 6},
		{"T4", TableVacant, 4},
		{"T5", TableOccupied, 2},
		{"T6", TableVacant, 6},
	}
	tables := make([]Table, len(specs))
	for i, s := range specs {
		tables[i] = Table{ID: int64(i + 1), Name: s.name, Status: s.status, Shape: "square", Capacity: s.capacity, Seats: NewSeats(s.capacity)}
	}
	return tables
}

func SeedOrders() []Order {
	return []Order{
		{ID: 1, OrderNumber: "#101", Status: OrderPreparing, Items: []string{"Burger x 1", "Fries x 1"}},
		{ID: 2, OrderNumber: "#102", Status: OrderReady, Items: []string{"Pizza x 1", "Soda x 2"}},
		{ID: 3, OrderNumber: "#103", Status: OrderDelivered, Items: []string{"Pasta x 1"}},
		{ID: 4, OrderNumber: "#104", Status: OrderPreparing, Items: []string{"Salad x 1"}},
		{ID: 5, OrderNumber: "#105", Status: OrderReady, Items: []string{"Sandwich x 1"}},
	}
}

// OrderPrices prices the seeded orders.
func OrderPrices() PriceBook {
	return PriceBook{
		"Burger":   199,
		"Fries":    99,
		"Pizza":    299,
		"Soda":     49,
		"Pasta":    249,
		"Salad":    179,
		"Sandwich": 149,
	}
}

func SeedPayments() []Payment {
	return []Payment{
		{ID: 1, OrderID: "#101", OrderType: OrderDineIn, PaymentMethod: PayCard, PaymentStatus: PaymentPaid, Date: MustDate("2023-10-27"), Time: "14:30"},
		{ID: 2, OrderID: "#102", OrderType: OrderTakeaway, PaymentMethod: PayUPI, PaymentStatus: PaymentPaid, Date: MustDate("2023-10-27"), Time: "15:00"},
		{ID: 3, OrderID: "#103", OrderType: OrderDelivery, PaymentMethod: PayCash, PaymentStatus: PaymentUnpaid, Date: MustDate("2023-10-27"), Time: "16:00"},
	}
}

func SeedMenu() []MenuItem {
	return []MenuItem{
		{ID: 1, Name: "Pizza", Quantity: 10, Price: 12.99, Image: "pizza.png", Category: "Fast Food"},
		{ID: 2, Name: "Burger", Quantity: 15, Price: 8.99, Image: "burger.png", Category: "Fast Food"},
		{ID: 3, Name: "Sushi", Quantity: 5, Price: 22.99, Image: "sushi.png", Category: "Japanese"},
		{ID: 4, Name: "Pasta", Quantity: 8, Price: 14.99, Image: "pasta.png", Category: "Italian"},
		{ID: 5, Name: "Salad", Quantity: 12, Price: 9.99, Image: "salad.png", Category: "Healthy"},
		{ID: 6, Name: "Steak", Quantity: 7, Price: 24.99, Image: "steak.png", Category: "Main Course"},
		{ID: 7, Name: "Fish and Chips", Quantity: 9, Price: 16.99, Image: "fish-chips.png", Category: "British"},
		{ID: 8, Name: "Tacos", Quantity: 20, Price: 10.99, Image: "tacos.png", Category: "Mexican"},
		{ID: 9, Name: "Ice Cream", Quantity: 25, Price: 5.99, Image: "ice-cream.png", Category: "Dessert"},
		{ID: 10, Name: "Chicken Curry", Quantity: 6, Price: 18.99, Image: "chicken-curry.png", Category: "Indian"},
		{ID: 11, Name: "Sushi Roll", Quantity: 15, Price: 18.99, Image: "sushi-roll.png", Category: "Japanese"},
		{ID: 12, Name: "Lasagna", Quantity: 8, Price: 16.99, Image: "lasagna.png", Category: "Italian"},
	}
}
