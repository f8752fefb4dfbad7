package entity

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Persister is the durable side of a repository. storage.Adapter satisfies it.
type Persister[T any] interface {
	Load(ctx context.Context, key string, seed []T) ([]T, error)
	Save(ctx context.Context, key string, items []T) error
}

// Action names a kind of mutation.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionToggled Action = "toggled"
)

// Change describes one committed mutation.
type Change struct {
	Entity string `json:"entity"`
	Action Action `json:"action"`
	ID     int64  `json:"id"`
	Field  string `json:"field,omitempty"`
	Size   int    `json:"size"`
}

// Notifier receives committed changes, outside the repository lock.
type Notifier interface {
	Notify(Change)
}

type RepositoryConfig[T any] struct {
	Store Config[T]
	// Key is the durable slot. Empty keeps the repository session-only.
	Key       string
	Persister Persister[T]
	Validate  func(T) error
	// Normalize repairs records after hydration.
	Normalize func(T) T
	// Derive recomputes dependent fields on every added or changed record.
	Derive func(T) T
	Notifier  Notifier
	Logger    *zap.Logger
}

// Repository binds a Store to its persistence and serialises access to it.
// Each mutation is validated, saved synchronously and then announced.
type Repository[T any] struct {
	mu    sync.RWMutex
	cfg   RepositoryConfig[T]
	store *Store[T]
	log   *zap.Logger
}

func NewRepository[T any](cfg RepositoryConfig[T]) *Repository[T] {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository[T]{
		cfg:   cfg,
		store: NewStore(cfg.Store, nil),
		log:   log.With(zap.String("entity", cfg.Store.Name)),
	}
}

func (r *Repository[T]) Name() string {
	return r.cfg.Store.Name
}

// Persistent reports whether mutations reach a durable slot.
func (r *Repository[T]) Persistent() bool {
	return r.cfg.Key != "" && r.cfg.Persister != nil
}

// Hydrate fills the store once at startup, from the durable slot when the
// repository is persistent and from seed otherwise.
func (r *Repository[T]) Hydrate(ctx context.Context, seed []T) error {
	items := seed
	if r.Persistent() {
		loaded, err := r.cfg.Persister.Load(ctx, r.cfg.Key, seed)
		if err != nil {
			return fmt.Errorf("hydrate %s: %w", r.Name(), err)
		}
		items = loaded
	}
	if r.cfg.Normalize != nil {
		repaired := make([]T, len(items))
		for i, it := range items {
			repaired[i] = r.cfg.Normalize(it)
		}
		items = repaired
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.Reset(items)
	r.log.Info("Store hydrated", zap.Int("records", len(items)), zap.Bool("persistent", r.Persistent()))
	return nil
}

// List returns the current collection. Callers must not modify it.
func (r *Repository[T]) List() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.All()
}

func (r *Repository[T]) Get(id int64) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.store.Get(id)
	if !ok {
		return rec, fmt.Errorf("%s %d: %w", r.Name(), id, ErrNotFound)
	}
	return rec, nil
}

func (r *Repository[T]) Add(ctx context.Context, rec T) (T, error) {
	added, change, err := r.add(ctx, rec)
	if err != nil {
		return added, err
	}
	r.notify(change)
	return added, nil
}

func (r *Repository[T]) add(ctx context.Context, rec T) (T, Change, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	rec = r.derive(rec)
	if err := r.validate(rec); err != nil {
		return zero, Change{}, err
	}
	prev := r.store.All()
	items, added := r.store.Add(rec)
	if err := r.commit(ctx, prev, items); err != nil {
		return zero, Change{}, err
	}
	return added, Change{Action: ActionCreated, ID: r.cfg.Store.ID(added), Size: len(items)}, nil
}

func (r *Repository[T]) Update(ctx context.Context, id int64, patch Patch) (T, error) {
	return r.mutate(ctx, id, ActionUpdated, "", func() ([]T, error) {
		return r.store.Update(id, patch)
	})
}

// Apply replaces the record with fn's result. fn receives a private copy.
func (r *Repository[T]) Apply(ctx context.Context, id int64, fn func(T) (T, error)) (T, error) {
	return r.mutate(ctx, id, ActionUpdated, "", func() ([]T, error) {
		rec, _ := r.store.Get(id)
		next, err := fn(rec)
		if err != nil {
			return r.store.All(), err
		}
		return r.store.Apply(id, func(T) T { return next }), nil
	})
}

func (r *Repository[T]) Toggle(ctx context.Context, id int64, field string) (T, error) {
	return r.mutate(ctx, id, ActionToggled, field, func() ([]T, error) {
		return r.store.Toggle(id, field)
	})
}

// Remove deletes unconditionally. Confirmation belongs to the caller.
func (r *Repository[T]) Remove(ctx context.Context, id int64) error {
	change, err := r.remove(ctx, id)
	if err != nil {
		return err
	}
	r.notify(change)
	return nil
}

func (r *Repository[T]) remove(ctx context.Context, id int64) (Change, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.Get(id); !ok {
		return Change{}, fmt.Errorf("%s %d: %w", r.Name(), id, ErrNotFound)
	}
	prev := r.store.All()
	items := r.store.Remove(id)
	if err := r.commit(ctx, prev, items); err != nil {
		return Change{}, err
	}
	return Change{Action: ActionDeleted, ID: id, Size: len(items)}, nil
}

func (r *Repository[T]) mutate(ctx context.Context, id int64, action Action, field string, op func() ([]T, error)) (T, error) {
	updated, change, err := r.mutateLocked(ctx, id, action, field, op)
	if err != nil {
		return updated, err
	}
	r.notify(change)
	return updated, nil
}

func (r *Repository[T]) mutateLocked(ctx context.Context, id int64, action Action, field string, op func() ([]T, error)) (T, Change, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	if _, ok := r.store.Get(id); !ok {
		return zero, Change{}, fmt.Errorf("%s %d: %w", r.Name(), id, ErrNotFound)
	}
	prev := r.store.All()
	items, err := op()
	if err != nil {
		r.store.Reset(prev)
		return zero, Change{}, err
	}
	updated, _ := r.store.Get(id)
	if r.cfg.Derive != nil {
		updated = r.derive(updated)
		items = r.store.Apply(id, func(T) T { return updated })
	}
	if err := r.validate(updated); err != nil {
		r.store.Reset(prev)
		return zero, Change{}, err
	}
	if err := r.commit(ctx, prev, items); err != nil {
		return zero, Change{}, err
	}
	return updated, Change{Action: action, ID: id, Field: field, Size: len(items)}, nil
}

// commit saves items, restoring prev when the slot write fails.
func (r *Repository[T]) commit(ctx context.Context, prev, items []T) error {
	if !r.Persistent() {
		return nil
	}
	if err := r.cfg.Persister.Save(ctx, r.cfg.Key, items); err != nil {
		r.store.Reset(prev)
		r.log.Error("Failed to save slot", zap.String("key", r.cfg.Key), zap.Error(err))
		return fmt.Errorf("save %s: %w", r.Name(), err)
	}
	return nil
}

func (r *Repository[T]) derive(rec T) T {
	if r.cfg.Derive == nil {
		return rec
	}
	return r.cfg.Derive(rec)
}

func (r *Repository[T]) validate(rec T) error {
	if r.cfg.Validate == nil {
		return nil
	}
	if err := r.cfg.Validate(rec); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (r *Repository[T]) notify(c Change) {
	if r.cfg.Notifier == nil {
		return
	}
	c.Entity = r.Name()
	r.cfg.Notifier.Notify(c)
}
