package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageRecord is the single-table schema backing the Postgres adapter.
// One row per storage key, value stored as a whole JSON document.
type StorageRecord struct {
	Key       string         `gorm:"primaryKey;size:255"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// PostgresAdapter persists values in a key/jsonb table via gorm.
type PostgresAdapter struct {
	db *gorm.DB
}

// NewPostgresAdapter wraps an open gorm connection, migrating the schema
// when autoMigrate is set.
func NewPostgresAdapter(db *gorm.DB, autoMigrate bool) (*PostgresAdapter, error) {
	if autoMigrate {
		if err := db.AutoMigrate(&StorageRecord{}); err != nil {
			return nil, err
		}
	}
	return &PostgresAdapter{db: db}, nil
}

func (p *PostgresAdapter) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var record StorageRecord
	err := p.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, wrapErr("get", key, err)
	}
	return json.RawMessage(record.Value), true, nil
}

func (p *PostgresAdapter) Set(ctx context.Context, key string, value any) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return wrapErr("set", key, err)
	}
	record := StorageRecord{
		Key:       key,
		Value:     datatypes.JSON(bytes),
		UpdatedAt: time.Now(),
	}
	err = p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return wrapErr("set", key, err)
	}
	return nil
}

func (p *PostgresAdapter) Remove(ctx context.Context, key string) error {
	if err := p.db.WithContext(ctx).Delete(&StorageRecord{}, "key = ?", key).Error; err != nil {
		return wrapErr("remove", key, err)
	}
	return nil
}
