// Product HTTP handlers.
//
// This file exposes REST endpoints for catalog resources:
//   - GET    /products             (list, filters, ETag support)
//   - GET    /products/categories  (distinct categories)
//   - GET    /products/{id}        (fetch one)
//   - POST   /products             (admin create)
//   - PATCH  /products/{id}        (admin partial update)
//   - DELETE /products/{id}        (admin delete)
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
	"github.com/tbourn/go-vitamins-backend/internal/services"
	"github.com/tbourn/go-vitamins-backend/internal/utils"
)

// ProductService defines catalog operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ProductService interface {
	// List returns products, optionally filtered by category and stock.
	List(ctx context.Context, category string, inStockOnly bool) ([]domain.Product, error)
	// Get fetches one product by ID.
	Get(ctx context.Context, id int) (*domain.Product, error)
	// Create validates and inserts a new product.
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Update applies a partial column update.
	Update(ctx context.Context, id int, fields map[string]any) error
	// Delete removes a product.
	Delete(ctx context.Context, id int) error
	// Categories returns the distinct product categories.
	Categories(ctx context.Context) ([]string, error)
	// Stats exposes aggregate metadata for conditional responses.
	Stats(ctx context.Context) (int64, *time.Time, error)
}

// ListProductsResponse wraps the catalog listing.
type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
}

// UpdateProductRequest is the JSON payload for partial product updates. Only
// provided fields are applied.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Dosage      *string  `json:"dosage,omitempty"`
	Count       *string  `json:"count,omitempty"`
	Emoji       *string  `json:"emoji,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Popular     *bool    `json:"popular,omitempty"`
	InStock     *bool    `json:"in_stock,omitempty"`
}

func (r UpdateProductRequest) fields() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Category != nil {
		out["category"] = *r.Category
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.Price != nil {
		out["price"] = *r.Price
	}
	if r.Dosage != nil {
		out["dosage"] = *r.Dosage
	}
	if r.Count != nil {
		out["count"] = *r.Count
	}
	if r.Emoji != nil {
		out["emoji"] = *r.Emoji
	}
	if r.Rating != nil {
		out["rating"] = *r.Rating
	}
	if r.Popular != nil {
		out["popular"] = *r.Popular
	}
	if r.InStock != nil {
		out["in_stock"] = *r.InStock
	}
	return out
}

// ListProducts godoc
// @ID          listProducts
// @Summary     List catalog products
// @Description Returns the catalog ordered for display (popular first, then rating). Supports weak ETag via If-None-Match and may return 304.
// @Tags        Products
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       category       query   string  false "Filter by category"
// @Param       in_stock       query   bool    false "Only in-stock products"
//
// @Success     200  {object} handlers.ListProductsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products [get]
func (h *Handlers) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if count, maxTS, err := h.prodSvc.Stats(ctx); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"products:%d:%d"`, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	inStockOnly := c.Query("in_stock") == "true" || c.Query("in_stock") == "1"
	items, err := h.prodSvc.List(ctx, c.Query("category"), inStockOnly)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListProductsResponse{Products: items})
}

// ListCategories godoc
// @ID          listCategories
// @Summary     List product categories
// @Tags        Products
// @Produce     json
//
// @Success     200  {object} map[string][]string
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products/categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	cats, err := h.prodSvc.Categories(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"categories": cats})
}

// GetProduct godoc
// @ID          getProduct
// @Summary     Fetch one product
// @Tags        Products
// @Produce     json
//
// @Param       id  path  int  true  "Product ID"
//
// @Success     200  {object} domain.Product
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Product not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products/{id} [get]
func (h *Handlers) GetProduct(c *gin.Context) {
	id := utils.AtoiDefault(c.Param("id"), 0)
	if id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "product id must be a positive integer")
		return
	}
	p, err := h.prodSvc.Get(c.Request.Context(), id)
	switch {
	case err == nil:
		ok(c, http.StatusOK, p)
	case errors.Is(err, services.ErrProductNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// CreateProduct godoc
// @ID          createProduct
// @Summary     Create a product (admin)
// @Tags        Products
// @Accept      json
// @Produce     json
//
// @Param       X-Admin-Token  header  string  true  "Admin token"
// @Param       body           body    domain.Product  true  "Product payload"
//
// @Success     201  {object} domain.Product
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products [post]
func (h *Handlers) CreateProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	created, err := h.prodSvc.Create(c.Request.Context(), &p)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, created)
	case errors.Is(err, services.ErrInvalidProduct):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "product needs a name and a non-negative price")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
	}
}

// UpdateProduct godoc
// @ID          updateProduct
// @Summary     Update a product (admin)
// @Tags        Products
// @Accept      json
//
// @Param       X-Admin-Token  header  string  true  "Admin token"
// @Param       id             path    int     true  "Product ID"
// @Param       body           body    handlers.UpdateProductRequest  true  "Fields to update"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Product not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products/{id} [patch]
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id := utils.AtoiDefault(c.Param("id"), 0)
	if id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "product id must be a positive integer")
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	fields := req.fields()
	if len(fields) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "no fields to update")
		return
	}
	err := h.prodSvc.Update(c.Request.Context(), id, fields)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrInvalidProduct):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid field values")
	case errors.Is(err, services.ErrProductNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// DeleteProduct godoc
// @ID          deleteProduct
// @Summary     Delete a product (admin)
// @Tags        Products
//
// @Param       X-Admin-Token  header  string  true  "Admin token"
// @Param       id             path    int     true  "Product ID"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Product not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products/{id} [delete]
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id := utils.AtoiDefault(c.Param("id"), 0)
	if id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "product id must be a positive integer")
		return
	}
	err := h.prodSvc.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrProductNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
