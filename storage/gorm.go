package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is one durable key in a SQL database.
type Slot struct {
	Key       string `gorm:"column:slot_key;primaryKey;size:128"`
	Payload   []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// GormSlots stores slots in the slots table of a gorm database.
type GormSlots struct {
	db *gorm.DB
}

// NewGormSlots migrates the slots table and wraps db.
func NewGormSlots(db *gorm.DB) (*GormSlots, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, errors.Wrap(err, "migrate slots")
	}
	return &GormSlots{db: db}, nil
}

func (g *GormSlots) Get(ctx context.Context, key string) ([]byte, error) {
	var slot Slot
	err := g.db.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(ErrSlotNotFound, key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read slot %s", key)
	}
	return slot.Payload, nil
}

func (g *GormSlots) Put(ctx context.Context, key string, payload []byte) error {
	slot := Slot{Key: key, Payload: payload, UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&slot).Error
	return errors.Wrapf(err, "write slot %s", key)
}

func (g *GormSlots) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
