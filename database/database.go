package database

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resto/config"
	"resto/storage"
)

// Open connects to the SQL database named by the storage driver.
func Open(cfg config.Storage, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("driver %q is not a SQL database", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database is unreachable: %w", err)
	}

	log.Info("Database connected", zap.String("driver", cfg.Driver))
	return db, nil
}

// OpenSlots returns the slot backend for the configured driver.
func OpenSlots(cfg config.Storage, log *zap.Logger) (storage.Slots, error) {
	switch cfg.Driver {
	case "memory":
		return storage.NewMemorySlots(), nil
	case "bolt":
		return storage.OpenBolt(cfg.Path)
	}
	db, err := Open(cfg, log)
	if err != nil {
		return nil, err
	}
	slots, err := storage.NewGormSlots(db)
	if err != nil {
		return nil, err
	}
	log.Info("Slot table migrated")
	return slots, nil
}
