// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Product
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a product is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateProduct inserts a new catalog product. The persisted row (with its
// assigned ID) is returned. On failure, it returns a DB error.
func CreateProduct(ctx context.Context, db *gorm.DB, p *domain.Product) (*domain.Product, error) {
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts returns catalog products ordered for display: popular ones
// first, then by rating descending. An empty category matches everything;
// inStockOnly additionally filters out unavailable products. It returns an
// empty slice when nothing matches.
func ListProducts(ctx context.Context, db *gorm.DB, category string, inStockOnly bool) ([]domain.Product, error) {
	q := db.WithContext(ctx).Model(&domain.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if inStockOnly {
		q = q.Where("in_stock = ?", true)
	}
	var out []domain.Product
	err := q.Order("popular desc, rating desc, id asc").Find(&out).Error
	return out, err
}

// GetProduct fetches a single product by ID, or ErrNotFound if missing.
func GetProduct(ctx context.Context, db *gorm.DB, id int) (*domain.Product, error) {
	var p domain.Product
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct applies a partial update to the product identified by id.
// The fields map uses column names. If no rows are affected (product missing),
// it returns ErrNotFound.
func UpdateProduct(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProduct soft-deletes the product identified by id. If no rows are
// affected, it returns ErrNotFound.
func DeleteProduct(ctx context.Context, db *gorm.DB, id int) error {
	res := db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListCategories returns the distinct product categories in alphabetical
// order, skipping empty values.
func ListCategories(ctx context.Context, db *gorm.DB) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("category <> ''").
		Distinct("category").
		Order("category asc").
		Pluck("category", &out).Error
	return out, err
}
