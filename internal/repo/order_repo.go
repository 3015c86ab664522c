// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Order
// model. Order numbers are generated by the service layer; this file only
// persists and queries.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

// CreateOrder inserts a new order row. The persisted row (with its assigned
// ID) is returned. On failure, it returns a DB error.
func CreateOrder(ctx context.Context, db *gorm.DB, o *domain.Order) (*domain.Order, error) {
	if err := db.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

// CountOrders returns the total number of orders, optionally filtered by
// status. On DB error, it returns the error.
func CountOrders(ctx context.Context, db *gorm.DB, status string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// ListOrdersPage returns a paginated slice of orders, newest first,
// optionally filtered by status. Use CountOrders to obtain the total for
// pagination metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListOrdersPage(ctx context.Context, db *gorm.DB, status string, offset, limit int) ([]domain.Order, error) {
	q := db.WithContext(ctx).Model(&domain.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Order
	err := q.Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetOrder fetches a single order by ID, or ErrNotFound if missing.
func GetOrder(ctx context.Context, db *gorm.DB, id int) (*domain.Order, error) {
	var o domain.Order
	if err := db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderByNumber fetches a single order by its public order number, or
// ErrNotFound if missing.
func GetOrderByNumber(ctx context.Context, db *gorm.DB, number string) (*domain.Order, error) {
	var o domain.Order
	if err := db.WithContext(ctx).First(&o, "order_number = ?", number).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateOrderStatus updates the fulfillment and/or payment status of an
// order. Empty arguments leave the corresponding column untouched; at least
// one must be set. If no rows are affected (order missing), it returns
// ErrNotFound.
func UpdateOrderStatus(ctx context.Context, db *gorm.DB, id int, status, paymentStatus string) error {
	fields := map[string]any{}
	if status != "" {
		fields["status"] = status
	}
	if paymentStatus != "" {
		fields["payment_status"] = paymentStatus
	}
	if len(fields) == 0 {
		return nil
	}
	res := db.WithContext(ctx).
		Model(&domain.Order{}).
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
