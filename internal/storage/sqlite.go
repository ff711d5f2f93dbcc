package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvRecord is the single table backing the gateway: one row per logical store.
type kvRecord struct {
	Key   string `gorm:"primaryKey"`
	Value []byte `gorm:"not null"`
}

func (kvRecord) TableName() string { return "kv_records" }

// SQLiteGateway is the durable Gateway implementation: a single-file sqlite
// database on the device. WAL mode keeps reads from blocking the writer.
type SQLiteGateway struct {
	db *gorm.DB
}

// Open creates (or opens) the database at path and migrates the kv table.
// Parent directories are created as needed.
func Open(path string) (*SQLiteGateway, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create data dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_journal_mode=WAL"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return &SQLiteGateway{db: db}, nil
}

func (g *SQLiteGateway) Get(ctx context.Context, key string) ([]byte, error) {
	var rec kvRecord
	err := g.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.Value, nil
}

func (g *SQLiteGateway) Set(ctx context.Context, key string, value []byte) error {
	rec := kvRecord{Key: key, Value: value}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&rec).Error
}

func (g *SQLiteGateway) Remove(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Delete(&kvRecord{}, "key = ?", key).Error
}

func (g *SQLiteGateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
