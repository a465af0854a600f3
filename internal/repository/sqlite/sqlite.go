package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

type kvRecord struct {
	Name      string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (kvRecord) TableName() string { return "storefront_kv" }

// Store implements repository.Store on a local sqlite file through gorm.
type Store struct {
	db *gorm.DB
}

// New creates the store and migrates its table.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("migrate storefront_kv: %w", err)
	}
	return &Store{db: db}, nil
}

// Get implements repository.Store.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var rec kvRecord
	err := s.db.WithContext(ctx).Where("name = ?", key).Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFound("key", key)
		}
		return "", fmt.Errorf("sqlite get %s: %w", key, err)
	}
	return rec.Value, nil
}

// Set implements repository.Store.
func (s *Store) Set(ctx context.Context, key, value string) error {
	rec := kvRecord{Name: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("sqlite set %s: %w", key, err)
	}
	return nil
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
