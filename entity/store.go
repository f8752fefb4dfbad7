// Package entity holds the in-memory entity store shared by every POS view.
package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

var (
	// ErrNotFound is returned by Repository when no record has the id.
	ErrNotFound = errors.New("record not found")

	// ErrInvalid wraps record validation failures.
	ErrInvalid = errors.New("invalid record")

	// ErrUnknownField is returned for a toggle field the entity does not define.
	ErrUnknownField = errors.New("unknown field")
)

// IDStrategy decides how Add assigns identifiers.
type IDStrategy int

const (
	// NextID assigns one plus the maximum existing id.
	NextID IDStrategy = iota
	// Timestamp assigns the current Unix time in milliseconds.
	Timestamp
)

func (s IDStrategy) String() string {
	switch s {
	case NextID:
		return "next-id"
	case Timestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("IDStrategy(%d)", int(s))
	}
}

// Patch is a set of field changes keyed by JSON field name.
type Patch map[string]any

// Config describes one entity type to the store.
type Config[T any] struct {
	Name       string
	IDStrategy IDStrategy
	ID         func(T) int64
	WithID     func(T, int64) T
	// Clone deep-copies records that hold slices. Nil means T is a plain value.
	Clone func(T) T
	// Toggles maps a field name to the function that flips it.
	Toggles    map[string]func(T) T
	DecodeHook mapstructure.DecodeHookFunc
	Clock      func() time.Time
}

// Store is an ordered collection of one record type. Every mutation swaps
// in a new slice, so a collection returned earlier never changes.
type Store[T any] struct {
	cfg    Config[T]
	items  []T
	lastTS int64
}

func NewStore[T any](cfg Config[T], items []T) *Store[T] {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Store[T]{cfg: cfg, items: append([]T(nil), items...)}
}

func (s *Store[T]) Name() string {
	return s.cfg.Name
}

// All returns the current collection.
func (s *Store[T]) All() []T {
	return s.items
}

func (s *Store[T]) Len() int {
	return len(s.items)
}

// Reset replaces the collection, e.g. after hydration or a failed save.
func (s *Store[T]) Reset(items []T) {
	s.items = items
}

func (s *Store[T]) Get(id int64) (T, bool) {
	for _, it := range s.items {
		if s.cfg.ID(it) == id {
			return s.clone(it), true
		}
	}
	var zero T
	return zero, false
}

// Add assigns an id to rec and appends it.
func (s *Store[T]) Add(rec T) ([]T, T) {
	rec = s.cfg.WithID(s.clone(rec), s.nextID())
	next := make([]T, len(s.items), len(s.items)+1)
	copy(next, s.items)
	s.items = append(next, rec)
	return s.items, rec
}

// Update applies patch to a copy of the record with the given id. The id
// itself is never patched. A missing id leaves the collection unchanged.
func (s *Store[T]) Update(id int64, patch Patch) ([]T, error) {
	var decodeErr error
	items := s.replace(id, func(rec T) T {
		updated, err := s.applyPatch(rec, patch)
		if err != nil {
			decodeErr = err
			return rec
		}
		return s.cfg.WithID(updated, id)
	})
	if decodeErr != nil {
		return s.items, decodeErr
	}
	s.items = items
	return s.items, nil
}

// Apply replaces the record with fn's result.
func (s *Store[T]) Apply(id int64, fn func(T) T) []T {
	s.items = s.replace(id, func(rec T) T {
		return s.cfg.WithID(fn(rec), id)
	})
	return s.items
}

// Remove drops the record with the given id.
func (s *Store[T]) Remove(id int64) []T {
	next := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if s.cfg.ID(it) != id {
			next = append(next, it)
		}
	}
	s.items = next
	return s.items
}

// Toggle flips a configured two-state field.
func (s *Store[T]) Toggle(id int64, field string) ([]T, error) {
	flip, ok := s.cfg.Toggles[field]
	if !ok {
		return s.items, fmt.Errorf("%s.%s: %w", s.cfg.Name, field, ErrUnknownField)
	}
	return s.Apply(id, flip), nil
}

func (s *Store[T]) replace(id int64, fn func(T) T) []T {
	next := make([]T, len(s.items))
	for i, it := range s.items {
		if s.cfg.ID(it) == id {
			next[i] = fn(s.clone(it))
			continue
		}
		next[i] = it
	}
	return next
}

func (s *Store[T]) applyPatch(rec T, patch Patch) (T, error) {
	out := rec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       s.cfg.DecodeHook,
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &out,
	})
	if err != nil {
		return rec, err
	}
	if err := dec.Decode(map[string]any(patch)); err != nil {
		return rec, fmt.Errorf("%w: patch %s: %w", ErrInvalid, s.cfg.Name, err)
	}
	return out, nil
}

func (s *Store[T]) clone(rec T) T {
	if s.cfg.Clone == nil {
		return rec
	}
	return s.cfg.Clone(rec)
}

func (s *Store[T]) nextID() int64 {
	var maxID int64
	for _, it := range s.items {
		if id := s.cfg.ID(it); id > maxID {
			maxID = id
		}
	}
	if s.cfg.IDStrategy == NextID {
		return maxID + 1
	}
	// Two adds inside one millisecond must still get distinct ids.
	id := s.cfg.Clock().UnixMilli()
	if floor := max(maxID, s.lastTS); id <= floor {
		id = floor + 1
	}
	s.lastTS = id
	return id
}
