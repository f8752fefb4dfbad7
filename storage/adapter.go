package storage

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// CorruptSuffix is appended to a key to keep an unreadable payload around.
const CorruptSuffix = ".corrupt"

// Adapter loads and saves one record type as a JSON array per slot.
type Adapter[T any] struct {
	slots   Slots
	aliases map[string][]string
	log     *zap.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption[T any] func(*Adapter[T])

// WithAlias mirrors every save of key into alias as well.
func WithAlias[T any](key, alias string) AdapterOption[T] {
	return func(a *Adapter[T]) {
		a.aliases[key] = append(a.aliases[key], alias)
	}
}

func NewAdapter[T any](slots Slots, log *zap.Logger, opts ...AdapterOption[T]) *Adapter[T] {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Adapter[T]{slots: slots, aliases: map[string][]string{}, log: log}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load reads the collection stored under key. An empty slot is seeded. A
// slot that no longer decodes is kept under key+CorruptSuffix and replaced
// by the seed.
func (a *Adapter[T]) Load(ctx context.Context, key string, seed []T) ([]T, error) {
	raw, err := a.slots.Get(ctx, key)
	if errors.Is(err, ErrSlotNotFound) {
		a.log.Info("Slot empty, writing seed", zap.String("key", key), zap.Int("records", len(seed)))
		return seed, a.Save(ctx, key, seed)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", key)
	}

	var items []T
	if err := codec.Unmarshal(raw, &items); err != nil {
		a.log.Warn("Slot payload is corrupt, restoring seed",
			zap.String("key", key),
			zap.Int("bytes", len(raw)),
			zap.Error(err),
		)
		if perr := a.slots.Put(ctx, key+CorruptSuffix, raw); perr != nil {
			return nil, errors.Wrapf(perr, "preserve corrupt %s", key)
		}
		return seed, a.Save(ctx, key, seed)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save overwrites key (and its aliases) with items.
func (a *Adapter[T]) Save(ctx context.Context, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := codec.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	for _, k := range append([]string{key}, a.aliases[key]...) {
		if err := a.slots.Put(ctx, k, payload); err != nil {
			return errors.Wrapf(err, "save %s", k)
		}
	}
	return nil
}
