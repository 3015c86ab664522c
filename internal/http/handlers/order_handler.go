// Order HTTP handlers.
//
// This file exposes REST endpoints for checkout and order management:
//   - POST /orders                    (checkout; idempotent via Idempotency-Key)
//   - GET  /orders                    (admin list, paginated)
//   - GET  /orders/{id}               (admin fetch one)
//   - GET  /orders/number/{number}    (public tracking by order number)
//   - PUT  /orders/{id}/status        (admin status transition)
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
	"github.com/tbourn/go-vitamins-backend/internal/http/middleware"
	"github.com/tbourn/go-vitamins-backend/internal/repo"
	"github.com/tbourn/go-vitamins-backend/internal/services"
	"github.com/tbourn/go-vitamins-backend/internal/utils"
)

// idemScopeOrders namespaces idempotency keys for the checkout endpoint.
// It must match the scope the router configures on the idempotency middleware.
const idemScopeOrders = "orders"

// OrderService defines checkout operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type OrderService interface {
	// Create validates and persists a pending order, pricing it server-side.
	Create(ctx context.Context, req services.CheckoutRequest) (*domain.Order, error)
	// Get fetches one order by ID.
	Get(ctx context.Context, id int) (*domain.Order, error)
	// GetByNumber fetches one order by its public order number.
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	// ListPage returns a page of orders and the total count.
	ListPage(ctx context.Context, status string, page, pageSize int) ([]domain.Order, int64, error)
	// UpdateStatus moves an order through its lifecycle.
	UpdateStatus(ctx context.Context, id int, status, paymentStatus string) error
}

// ListOrdersResponse wraps a page of orders and pagination information.
type ListOrdersResponse struct {
	Orders     []domain.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

// UpdateOrderStatusRequest is the JSON payload for a status transition.
// Either field may be omitted to leave it unchanged.
type UpdateOrderStatusRequest struct {
	Status        string `json:"status,omitempty" example:"paid"`
	PaymentStatus string `json:"payment_status,omitempty" example:"paid"`
}

// CreateOrder godoc
// @ID          createOrder
// @Summary     Create an order (checkout)
// @Description Validates the cart, prices it server-side, and persists a pending order. Safe to retry with an Idempotency-Key header.
// @Tags        Orders
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID (demo header)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Retry-safe key"
// @Param       body             body    services.CheckoutRequest  true  "Checkout payload"
//
// @Success     201  {object}  domain.Order
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /orders [post]
func (h *Handlers) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	currentUser := userID(c)

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := middlewareGetIdempotencyKey(c)
	if idemKey != "" {
		if svc, okSvc := h.orderSvc.(*services.OrderService); okSvc && svc.DB != nil {
			if rec, err := repo.GetIdempotency(ctx, svc.DB, currentUser, idemScopeOrders, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if prev, err2 := repo.GetOrder(ctx, svc.DB, rec.OrderID); err2 == nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, http.StatusCreated, prev)
					return
				}
			}
		}
	}

	o, err := h.orderSvc.Create(ctx, req)
	switch {
	case err == nil:
		// Idempotency (store path) – best effort.
		if idemKey != "" {
			if svc, okSvc := h.orderSvc.(*services.OrderService); okSvc && svc.DB != nil {
				ttl := 24 * time.Hour
				_, _ = repo.CreateIdempotency(ctx, svc.DB, currentUser, idemScopeOrders, idemKey, o.ID, http.StatusCreated, ttl)
			}
		}
		ok(c, http.StatusCreated, o)
	case errors.Is(err, services.ErrEmptyOrder):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "order has no items")
	case errors.Is(err, services.ErrInvalidOrder):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "customer name, valid email, and positive quantities are required")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
	}
}

// ListOrders godoc
// @ID          listOrders
// @Summary     List orders (admin, paginated)
// @Tags        Orders
// @Produce     json
//
// @Param       X-Admin-Token  header  string  true  "Admin token"
// @Param       status         query   string  false "Filter by status"  Enums(pending, paid, shipped, delivered, cancelled)
// @Param       page           query   int     false "Page number"       minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"    minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListOrdersResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /orders [get]
func (h *Handlers) ListOrders(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.orderSvc.ListPage(c.Request.Context(), c.Query("status"), page, pageSize)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown status filter")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListOrdersResponse{
		Orders: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetOrder godoc
// @ID          getOrder
// @Summary     Fetch one order (admin)
// @Tags        Orders
// @Produce     json
//
// @Param       X-Admin-Token  header  string  true  "Admin token"
// @Param       id             path    int     true  "Order ID"
//
// @Success     200  {object} domain.Order
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Order not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /orders/{id} [get]
func (h *Handlers) GetOrder(c *gin.Context) {
	id := utils.AtoiDefault(c.Param("id"), 0)
	if id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "order id must be a positive integer")
		return
	}
	o, err := h.orderSvc.Get(c.Request.Context(), id)
	switch {
	case err == nil:
		ok(c, http.StatusOK, o)
	case errors.Is(err, services.ErrOrderNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "order not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// GetOrderByNumber godoc
// @ID          getOrderByNumber
// @Summary     Track an order by number
// @Description Public lookup by the order number shown at checkout (e.g. VIT-20260828-1787913000).
// @Tags        Orders
// @Produce     json
//
// @Param       number  path  string  true  "Order number"
//
// @Success     200  {object} domain.Order
// @Failure     404  {object} handlers.ErrorResponse "Order not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /orders/number/{number} [get]
func (h *Handlers) GetOrderByNumber(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "order number required")
		return
	}
	o, err := h.orderSvc.GetByNumber(c.Request.Context(), number)
	switch {
	case err == nil:
		ok(c, http.StatusOK, o)
	case errors.Is(err, services.ErrOrderNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "order not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// UpdateOrderStatus godoc
// @ID          updateOrderStatus
// @Summary     Update order status (admin)
// @Tags        Orders
// @Accept      json
//
// @Param       X-Admin-Token  header  string  true  "Admin token"
// @Param       id             path    int     true  "Order ID"
// @Param       body           body    handlers.UpdateOrderStatusRequest  true  "New status values"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Order not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /orders/{id}/status [put]
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	id := utils.AtoiDefault(c.Param("id"), 0)
	if id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "order id must be a positive integer")
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	err := h.orderSvc.UpdateStatus(c.Request.Context(), id, req.Status, req.PaymentStatus)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrInvalidStatus):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown status value")
	case errors.Is(err, services.ErrOrderNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "order not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// middlewareGetIdempotencyKey extracts an idempotency key if an upstream
// middleware has already validated/stashed it. The fallback behavior reads
// the "Idempotency-Key" header directly when no dedicated middleware exists.
func middlewareGetIdempotencyKey(c *gin.Context) (string, bool) {
	if k, okKey := middleware.GetIdempotencyKey(c); okKey {
		return k, true
	}
	if v := strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey)); v != "" {
		return v, true
	}
	return "", false
}
