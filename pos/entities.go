package pos

import (
	"time"

	"resto/entity"
	"resto/form"
	"resto/model"
	"resto/query"
)

// Permissions held by operators allowed to manage staff.
const (
	PermEditEmployees   = "edit_employees"
	PermDeleteEmployees = "delete_employees"
)

// Store configurations. Tables and payments take millisecond ids, the
// other entities one past the largest id.

func employeeStore(clock func() time.Time) entity.Config[model.Employee] {
	return entity.Config[model.Employee]{
		Name:       KeyEmployees,
		IDStrategy: entity.NextID,
		ID:         func(e model.Employee) int64 { return e.ID },
		WithID:     func(e model.Employee, id int64) model.Employee { e.ID = id; return e },
		Toggles:    map[string]func(model.Employee) model.Employee{"status": model.Employee.Toggled},
		DecodeHook: model.DecodeHook(),
		Clock:      clock,
	}
}

func inventoryStore(clock func() time.Time) entity.Config[model.InventoryItem] {
	return entity.Config[model.InventoryItem]{
		Name:       KeyInventory,
		IDStrategy: entity.NextID,
		ID:         func(i model.InventoryItem) int64 { return i.ID },
		WithID:     func(i model.InventoryItem, id int64) model.InventoryItem { i.ID = id; return i },
		DecodeHook: model.DecodeHook(),
		Clock:      clock,
	}
}

func supplierStore(clock func() time.Time) entity.Config[model.Supplier] {
	return entity.Config[model.Supplier]{
		Name:       KeySuppliers,
		IDStrategy: entity.NextID,
		ID:         func(s model.Supplier) int64 { return s.ID },
		WithID:     func(s model.Supplier, id int64) model.Supplier { s.ID = id; return s },
		Clock:      clock,
	}
}

func deliveryStore(clock func() time.Time) entity.Config[model.Delivery] {
	return entity.Config[model.Delivery]{
		Name:       KeyDeliveries,
		IDStrategy: entity.NextID,
		ID:         func(d model.Delivery) int64 { return d.ID },
		WithID:     func(d model.Delivery, id int64) model.Delivery { d.ID = id; return d },
		Toggles:    map[string]func(model.Delivery) model.Delivery{"updateInventory": model.Delivery.Toggled},
		DecodeHook: model.DecodeHook(),
		Clock:      clock,
	}
}

func tableStore(clock func() time.Time) entity.Config[model.Table] {
	return entity.Config[model.Table]{
		Name:       KeyTables,
		IDStrategy: entity.Timestamp,
		ID:         func(t model.Table) int64 { return t.ID },
		WithID:     func(t model.Table, id int64) model.Table { t.ID = id; return t },
		Clone:      model.Table.Clone,
		Clock:      clock,
	}
}

func orderStore(clock func() time.Time) entity.Config[model.Order] {
	return entity.Config[model.Order]{
		Name:       KeyOrders,
		IDStrategy: entity.NextID,
		ID:         func(o model.Order) int64 { return o.ID },
		WithID:     func(o model.Order, id int64) model.Order { o.ID = id; return o },
		Clone: func(o model.Order) model.Order {
			o.Items = append([]string(nil), o.Items...)
			return o
		},
		Clock: clock,
	}
}

func paymentStore(clock func() time.Time) entity.Config[model.Payment] {
	return entity.Config[model.Payment]{
		Name:       KeyPayments,
		IDStrategy: entity.Timestamp,
		ID:         func(p model.Payment) int64 { return p.ID },
		WithID:     func(p model.Payment, id int64) model.Payment { p.ID = id; return p },
		Toggles:    map[string]func(model.Payment) model.Payment{"paymentStatus": model.Payment.Toggled},
		DecodeHook: model.DecodeHook(),
		Clock:      clock,
	}
}

func menuStore(clock func() time.Time) entity.Config[model.MenuItem] {
	return entity.Config[model.MenuItem]{
		Name:       KeyMenu,
		IDStrategy: entity.NextID,
		ID:         func(m model.MenuItem) int64 { return m.ID },
		WithID:     func(m model.MenuItem, id int64) model.MenuItem { m.ID = id; return m },
		Clock:      clock,
	}
}

// List views.

var EmployeeQuery = query.Spec[model.Employee]{
	PageSize: 5,
	SearchFields: []func(model.Employee) string{
		func(e model.Employee) string { return e.Name },
		func(e model.Employee) string { return e.Email },
		func(e model.Employee) string { return string(e.Role) },
		func(e model.Employee) string { return e.Phone },
	},
	Category: func(e model.Employee) string { return string(e.Role) },
	SortKeys: map[string]func(model.Employee) any{
		"id":       func(e model.Employee) any { return e.ID },
		"name":     func(e model.Employee) any { return e.Name },
		"role":     func(e model.Employee) any { return string(e.Role) },
		"status":   func(e model.Employee) any { return string(e.Status) },
		"joinDate": func(e model.Employee) any { return e.JoinDate.Time },
	},
}

var InventoryQuery = query.Spec[model.InventoryItem]{
	PageSize: 8,
	SearchFields: []func(model.InventoryItem) string{
		func(i model.InventoryItem) string { return i.Name },
		func(i model.InventoryItem) string { return i.Category },
	},
	Category: func(i model.InventoryItem) string { return i.Category },
	SortKeys: map[string]func(model.InventoryItem) any{
		"id":       func(i model.InventoryItem) any { return i.ID },
		"name":     func(i model.InventoryItem) any { return i.Name },
		"category": func(i model.InventoryItem) any { return i.Category },
		"quantity": func(i model.InventoryItem) any { return i.Quantity },
		"expiry":   func(i model.InventoryItem) any { return i.Expiry.Time },
		"price":    func(i model.InventoryItem) any { return i.Price },
	},
}

var SupplierQuery = query.Spec[model.Supplier]{
	PageSize: 8,
	SearchFields: []func(model.Supplier) string{
		func(s model.Supplier) string { return s.Name },
		func(s model.Supplier) string { return s.Contact },
	},
	SortKeys: map[string]func(model.Supplier) any{
		"id":   func(s model.Supplier) any { return s.ID },
		"name": func(s model.Supplier) any { return s.Name },
	},
}

var DeliveryQuery = query.Spec[model.Delivery]{
	PageSize: 8,
	SearchFields: []func(model.Delivery) string{
		func(d model.Delivery) string { return d.Item },
		func(d model.Delivery) string { return d.Supplier },
	},
	SortKeys: map[string]func(model.Delivery) any{
		"id":           func(d model.Delivery) any { return d.ID },
		"item":         func(d model.Delivery) any { return d.Item },
		"deliveryDate": func(d model.Delivery) any { return d.DeliveryDate.Time },
	},
}

var TableQuery = query.Spec[model.Table]{
	PageSize: 8,
	SearchFields: []func(model.Table) string{
		func(t model.Table) string { return t.Name },
		func(t model.Table) string { return string(t.Status) },
	},
	Category: func(t model.Table) string { return string(t.Status) },
	SortKeys: map[string]func(model.Table) any{
		"id":       func(t model.Table) any { return t.ID },
		"name":     func(t model.Table) any { return t.Name },
		"capacity": func(t model.Table) any { return t.Capacity },
	},
}

var OrderQuery = query.Spec[model.Order]{
	PageSize: 8,
	SearchFields: []func(model.Order) string{
		func(o model.Order) string { return o.OrderNumber },
	},
	Category: func(o model.Order) string { return string(o.Status) },
	SortKeys: map[string]func(model.Order) any{
		"id":          func(o model.Order) any { return o.ID },
		"orderNumber": func(o model.Order) any { return o.OrderNumber },
	},
}

var PaymentQuery = query.Spec[model.Payment]{
	PageSize: 8,
	SearchFields: []func(model.Payment) string{
		func(p model.Payment) string { return p.OrderID },
		func(p model.Payment) string { return string(p.OrderType) },
		func(p model.Payment) string { return string(p.PaymentMethod) },
	},
	Category: func(p model.Payment) string { return string(p.PaymentStatus) },
	SortKeys: map[string]func(model.Payment) any{
		"id":      func(p model.Payment) any { return p.ID },
		"date":    func(p model.Payment) any { return p.Date.Time },
		"orderId": func(p model.Payment) any { return p.OrderID },
	},
}

var MenuQuery = query.Spec[model.MenuItem]{
	PageSize: 8,
	SearchFields: []func(model.MenuItem) string{
		func(m model.MenuItem) string { return m.Name },
	},
	Category: func(m model.MenuItem) string { return m.Category },
	SortKeys: map[string]func(model.MenuItem) any{
		"id":       func(m model.MenuItem) any { return m.ID },
		"name":     func(m model.MenuItem) any { return m.Name },
		"quantity": func(m model.MenuItem) any { return m.Quantity },
		"price":    func(m model.MenuItem) any { return m.Price },
		"category": func(m model.MenuItem) any { return m.Category },
	},
}

// OrderTab maps an orders screen tab to a query category.
func OrderTab(tab string) string {
	if tab == "" || tab == model.AllOrdersTab {
		return query.All
	}
	return tab
}

// Forms.

func (r *Restaurant) EmployeeForm(caps form.Capabilities) *form.Controller[model.Employee] {
	return form.NewController(form.Spec[model.Employee]{
		Entity:   KeyEmployees,
		Fields:   []string{"name", "phone", "email", "role", "status", "joinDate"},
		Required: []string{"name", "phone", "email", "joinDate"},
		Dates:    []string{"joinDate"},
		Defaults: func() form.Draft {
			return form.Draft{
				"name":     "",
				"phone":    "",
				"email":    "",
				"role":     string(model.RoleWaiter),
				"status":   string(model.EmployeeActive),
				"joinDate": model.NewDate(r.Now()).Input(),
			}
		},
		ID:         func(e model.Employee) int64 { return e.ID },
		CreatePerm: PermEditEmployees,
		EditPerm:   PermEditEmployees,
		DeletePerm: PermDeleteEmployees,
	}, caps, r.Employees)
}

func (r *Restaurant) InventoryForm(caps form.Capabilities) *form.Controller[model.InventoryItem] {
	return form.NewController(form.Spec[model.InventoryItem]{
		Entity:   KeyInventory,
		Fields:   []string{"name", "category", "quantity", "unit", "expiry", "alertThreshold", "supplier", "price"},
		Required: []string{"name", "category", "quantity", "unit", "expiry", "alertThreshold"},
		Floats:   []string{"quantity", "alertThreshold", "price"},
		Dates:    []string{"expiry"},
		Defaults: func() form.Draft {
			return form.Draft{
				"name":           "",
				"category":       "Grains",
				"quantity":       "",
				"unit":           "kg",
				"expiry":         "",
				"alertThreshold": "",
				"supplier":       "",
				"price":          0.0,
			}
		},
		ID: func(i model.InventoryItem) int64 { return i.ID },
	}, caps, r.Inventory)
}

func (r *Restaurant) SupplierForm(caps form.Capabilities) *form.Controller[model.Supplier] {
	return form.NewController(form.Spec[model.Supplier]{
		Entity:   KeySuppliers,
		Fields:   []string{"name", "contact"},
		Required: []string{"name", "contact"},
		Defaults: func() form.Draft { return form.Draft{"name": "", "contact": ""} },
		ID:       func(s model.Supplier) int64 { return s.ID },
	}, caps, r.Suppliers)
}

func (r *Restaurant) DeliveryForm(caps form.Capabilities) *form.Controller[model.Delivery] {
	return form.NewController(form.Spec[model.Delivery]{
		Entity:   KeyDeliveries,
		Fields:   []string{"item", "supplier", "quantity", "unit", "deliveryDate", "updateInventory"},
		Required: []string{"item", "supplier", "quantity", "deliveryDate"},
		Floats:   []string{"quantity"},
		Dates:    []string{"deliveryDate"},
		Defaults: func() form.Draft {
			return form.Draft{"item": "", "supplier": "", "quantity": "", "unit": "kg", "deliveryDate": "", "updateInventory": false}
		},
		ID: func(d model.Delivery) int64 { return d.ID },
	}, caps, r.Deliveries)
}

func (r *Restaurant) TableForm(caps form.Capabilities) *form.Controller[model.Table] {
	return form.NewController(form.Spec[model.Table]{
		Entity:   KeyTables,
		Fields:   []string{"name", "capacity", "status", "shape"},
		Required: []string{"name", "capacity"},
		Integers: []string{"capacity"},
		Defaults: func() form.Draft {
			return form.Draft{"name": "", "capacity": "", "status": string(model.TableVacant), "shape": "square"}
		},
		ID: func(t model.Table) int64 { return t.ID },
	}, caps, r.Tables)
}

func (r *Restaurant) PaymentForm(caps form.Capabilities) *form.Controller[model.Payment] {
	return form.NewController(form.Spec[model.Payment]{
		Entity:   KeyPayments,
		Fields:   []string{"orderId", "orderType", "paymentMethod", "paymentStatus", "date", "time"},
		Required: []string{"orderId", "date", "time"},
		Dates:    []string{"date"},
		Defaults: func() form.Draft {
			now := r.Now()
			return form.Draft{
				"orderId":       "",
				"orderType":     string(model.OrderDineIn),
				"paymentMethod": string(model.PayCash),
				"paymentStatus": string(model.PaymentUnpaid),
				"date":          model.NewDate(now).Input(),
				"time":          now.Format(model.TimeLayout),
			}
		},
		ID: func(p model.Payment) int64 { return p.ID },
	}, caps, r.Payments)
}

func (r *Restaurant) MenuForm(caps form.Capabilities) *form.Controller[model.MenuItem] {
	return form.NewController(form.Spec[model.MenuItem]{
		Entity:   KeyMenu,
		Fields:   []string{"name", "description", "quantity", "price", "image", "category"},
		Required: []string{"name", "quantity", "price", "category"},
		Integers: []string{"quantity"},
		Floats:   []string{"price"},
		Defaults: func() form.Draft {
			return form.Draft{"name": "", "description": "", "quantity": "", "price": "", "image": "", "category": ""}
		},
		ID: func(m model.MenuItem) int64 { return m.ID },
	}, caps, r.Menu)
}
