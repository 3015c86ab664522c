// Package services – ProductService
//
// This file implements ProductService, which manages the supplement catalog.
// Reads are public; writes come from the admin surface and are validated
// here. Rule-table keys are assigned from the curated name map when a new
// product matches a known display name, so admin-created products join the
// rule strategy's closed world automatically.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-vitamins-backend/internal/catalog"
	"github.com/tbourn/go-vitamins-backend/internal/domain"
	"github.com/tbourn/go-vitamins-backend/internal/repo"
)

// ProductService provides catalog-level operations.
type ProductService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// List returns catalog products, optionally filtered by category and stock.
func (s *ProductService) List(ctx context.Context, category string, inStockOnly bool) ([]domain.Product, error) {
	tr := otel.Tracer("services/ProductService")
	ctx, span := tr.Start(ctx, "List")
	defer span.End()
	span.SetAttributes(attribute.String("category", category), attribute.Bool("in_stock_only", inStockOnly))

	products, err := repo.ListProducts(ctx, s.DB, category, inStockOnly)
	if err != nil {
		return nil, err
	}
	return catalog.AssignKeys(products), nil
}

// Get fetches one product by ID.
func (s *ProductService) Get(ctx context.Context, id int) (*domain.Product, error) {
	p, err := repo.GetProduct(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// Create validates and inserts a new product.
func (s *ProductService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	tr := otel.Tracer("services/ProductService")
	ctx, span := tr.Start(ctx, "Create")
	defer span.End()

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || p.Price < 0 {
		return nil, ErrInvalidProduct
	}
	if p.Key == "" {
		if k, ok := catalog.KeyForName(p.Name); ok {
			p.Key = k
		}
	}
	return repo.CreateProduct(ctx, s.DB, p)
}

// Update applies a partial column update to a product.
func (s *ProductService) Update(ctx context.Context, id int, fields map[string]any) error {
	if name, ok := fields["name"].(string); ok && strings.TrimSpace(name) == "" {
		return ErrInvalidProduct
	}
	if price, ok := fields["price"].(float64); ok && price < 0 {
		return ErrInvalidProduct
	}
	err := repo.UpdateProduct(ctx, s.DB, id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return err
}

// Delete soft-deletes a product.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	err := repo.DeleteProduct(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return err
}

// Categories returns the distinct product categories.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return repo.ListCategories(ctx, s.DB)
}

// Stats exposes catalog aggregate metadata for conditional responses.
func (s *ProductService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return repo.ProductsStats(ctx, s.DB)
}
