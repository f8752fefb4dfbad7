// Package storage persists entity collections into named durable slots.
package storage

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ErrSlotNotFound is returned by Slots.Get for a key that was never written.
var ErrSlotNotFound = errors.New("slot not found")

// Slots is a durable key-value store holding one serialized collection per key.
type Slots interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	Close() error
}

// MemorySlots keeps slots in process memory. Used for tests and session-only runs.
type MemorySlots struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: map[string][]byte{}}
}

func (m *MemorySlots) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.slots[key]
	if !ok {
		return nil, errors.Wrap(ErrSlotNotFound, key)
	}
	return append([]byte(nil), b...), nil
}

func (m *MemorySlots) Put(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), payload...)
	return nil
}

func (m *MemorySlots) Close() error {
	return nil
}
