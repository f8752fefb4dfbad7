// Package pos wires the entity store pattern once per restaurant entity:
// store configuration, persistence slot, list query, form and the domain
// operations each screen offers on top of them.
package pos

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"resto/cart"
	"resto/entity"
	"resto/model"
	"resto/storage"
)

// Slot keys. Each entity lives in the slot named after it.
const (
	KeyEmployees      = "employees"
	KeyInventory      = "inventory"
	KeyInventoryItems = "inventoryItems"
	KeySuppliers      = "suppliers"
	KeyDeliveries     = "deliveries"
	KeyTables         = "tables"
	KeyOrders         = "orders"
	KeyPayments       = "payments"
	KeyMenu           = "menu"
)

// DefaultPersist lists the entities written to durable slots unless the
// configuration says otherwise.
func DefaultPersist() map[string]bool {
	return map[string]bool{
		KeyEmployees:  true,
		KeyInventory:  true,
		KeyTables:     true,
		KeyPayments:   false,
		KeyMenu:       false,
		KeySuppliers:  false,
		KeyDeliveries: false,
	}
}

type Options struct {
	// Slots backs the persistent entities. Nil keeps everything in memory.
	Slots storage.Slots
	// Persist overrides DefaultPersist per slot key. Orders are never persisted.
	Persist map[string]bool
	// ResizeSeats re-derives a table's seats whenever its capacity changes.
	ResizeSeats bool
	// Tax is the flat cart tax. Zero means no tax.
	Tax         float64
	Notifier    entity.Notifier
	Logger      *zap.Logger
	Clock       func() time.Time
}

func (o Options) persisted(key string) bool {
	if key == KeyOrders || o.Slots == nil {
		return false
	}
	if v, ok := o.Persist[key]; ok {
		return v
	}
	return DefaultPersist()[key]
}

// Restaurant holds one repository per entity plus the open cart.
type Restaurant struct {
	Employees  *entity.Repository[model.Employee]
	Inventory  *entity.Repository[model.InventoryItem]
	Suppliers  *entity.Repository[model.Supplier]
	Deliveries *entity.Repository[model.Delivery]
	Tables     *entity.Repository[model.Table]
	Orders     *entity.Repository[model.Order]
	Payments   *entity.Repository[model.Payment]
	Menu       *entity.Repository[model.MenuItem]
	Cart       *cart.Cart

	opts   Options
	log    *zap.Logger
	idMu   sync.Mutex
	lastID int64
}

func New(opts Options) *Restaurant {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := &Restaurant{opts: opts, log: opts.Logger.Named("pos")}

	r.Employees = entity.NewRepository(repoConfig(opts, KeyEmployees, employeeStore(opts.Clock)))
	r.Inventory = entity.NewRepository(repoConfig(opts, KeyInventory, inventoryStore(opts.Clock),
		storage.WithAlias[model.InventoryItem](KeyInventory, KeyInventoryItems)))
	r.Suppliers = entity.NewRepository(repoConfig(opts, KeySuppliers, supplierStore(opts.Clock)))
	r.Deliveries = entity.NewRepository(repoConfig(opts, KeyDeliveries, deliveryStore(opts.Clock)))
	r.Orders = entity.NewRepository(repoConfig(opts, KeyOrders, orderStore(opts.Clock)))
	r.Payments = entity.NewRepository(repoConfig(opts, KeyPayments, paymentStore(opts.Clock)))
	r.Menu = entity.NewRepository(repoConfig(opts, KeyMenu, menuStore(opts.Clock)))

	tables := repoConfig(opts, KeyTables, tableStore(opts.Clock))
	tables.Normalize = repairSeats
	tables.Derive = seatsForNewTables
	if opts.ResizeSeats {
		tables.Derive = repairSeats
	}
	r.Tables = entity.NewRepository(tables)

	r.Cart = cart.New(opts.Tax, cart.WithClock(opts.Clock))
	return r
}

func repoConfig[T any](opts Options, key string, store entity.Config[T], adapterOpts ...storage.AdapterOption[T]) entity.RepositoryConfig[T] {
	cfg := entity.RepositoryConfig[T]{
		Store:    store,
		Validate: func(rec T) error { return model.Validate(rec) },
		Notifier: opts.Notifier,
		Logger:   opts.Logger,
	}
	if opts.persisted(key) {
		cfg.Key = key
		cfg.Persister = storage.NewAdapter[T](opts.Slots, opts.Logger, adapterOpts...)
	}
	return cfg
}

// Hydrate loads every repository once, seeding empty slots.
func (r *Restaurant) Hydrate(ctx context.Context) error {
	now := r.opts.Clock()
	steps := []func(context.Context) error{
		func(ctx context.Context) error { return r.Employees.Hydrate(ctx, model.SeedEmployees()) },
		func(ctx context.Context) error { return r.Inventory.Hydrate(ctx, model.SeedInventory(now)) },
		func(ctx context.Context) error { return r.Suppliers.Hydrate(ctx, model.SeedSuppliers()) },
		func(ctx context.Context) error { return r.Deliveries.Hydrate(ctx, model.SeedDeliveries()) },
		func(ctx context.Context) error { return r.Tables.Hydrate(ctx, model.SeedTables()) },
		func(ctx context.Context) error { return r.Orders.Hydrate(ctx, model.SeedOrders()) },
		func(ctx context.Context) error { return r.Payments.Hydrate(ctx, model.SeedPayments()) },
		func(ctx context.Context) error { return r.Menu.Hydrate(ctx, model.SeedMenu()) },
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	r.log.Info("Restaurant hydrated",
		zap.Bool("employees_persistent", r.Employees.Persistent()),
		zap.Bool("inventory_persistent", r.Inventory.Persistent()),
		zap.Bool("tables_persistent", r.Tables.Persistent()),
	)
	return nil
}

// Now is the restaurant clock.
func (r *Restaurant) Now() time.Time {
	return r.opts.Clock()
}

// nextLineID issues millisecond ids that never repeat within the process.
func (r *Restaurant) nextLineID() int64 {
	r.idMu.Lock()
	defer r.idMu.Unlock()
	id := r.opts.Clock().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func notFound(what string, id any) error {
	return fmt.Errorf("%s %v: %w", what, id, entity.ErrNotFound)
}
