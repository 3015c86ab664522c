// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the small key-value blob store backing
// the recommendation history (see internal/history).
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

// KVGet returns the value stored under key. The second result reports
// presence; a missing key is not an error.
func KVGet(ctx context.Context, db *gorm.DB, key string) (string, bool, error) {
	var row domain.KVEntry
	err := db.WithContext(ctx).First(&row, "k = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.V, true, nil
}

// KVSet stores value under key, overwriting any previous value.
func KVSet(ctx context.Context, db *gorm.DB, key, value string) error {
	row := domain.KVEntry{K: key, V: value}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "k"}},
			DoUpdates: clause.AssignmentColumns([]string{"v", "updated_at"}),
		}).
		Create(&row).Error
}

// KVDelete removes key. Deleting an absent key is a no-op.
func KVDelete(ctx context.Context, db *gorm.DB, key string) error {
	return db.WithContext(ctx).Delete(&domain.KVEntry{}, "k = ?", key).Error
}

// KVStore binds the kv helpers to a DB handle, satisfying history.KV.
type KVStore struct {
	DB *gorm.DB
}

// Get implements history.KV.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	return KVGet(ctx, s.DB, key)
}

// Set implements history.KV.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	return KVSet(ctx, s.DB, key, value)
}

// Delete implements history.KV.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	return KVDelete(ctx, s.DB, key)
}
