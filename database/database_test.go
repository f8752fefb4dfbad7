package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resto/config"
	"resto/storage"
)

func TestOpenSlotsDrivers(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config.Storage
	}{
		{"memory", config.Storage{Driver: "memory"}},
		{"bolt", config.Storage{Driver: "bolt", Path: filepath.Join(dir, "pos.db")}},
		{"sqlite", config.Storage{Driver: "sqlite", Path: filepath.Join(dir, "sql", "pos.sqlite")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := OpenSlots(tt.cfg, zap.NewNop())
			require.NoError(t, err)
			defer slots.Close()

			ctx := context.Background()
			_, err = slots.Get(ctx, "employees")
			assert.ErrorIs(t, err, storage.ErrSlotNotFound)
			require.NoError(t, slots.Put(ctx, "employees", []byte("[]")))
		})
	}
}

func TestOpenRejectsNonSQLDriver(t *testing.T) {
	_, err := Open(config.Storage{Driver: "bolt"}, zap.NewNop())
	assert.Error(t, err)
}
