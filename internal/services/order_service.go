// Package services – OrderService
//
// This file implements OrderService, which owns the checkout lifecycle:
// validating the customer and cart, pricing the order server-side, assigning
// a public order number, and tracking fulfillment/payment status transitions.
// Item lines and the optional survey snapshot are persisted as JSON columns
// on the order row.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
	"github.com/tbourn/go-vitamins-backend/internal/repo"
)

// Order lifecycle values.
var (
	orderStatuses   = map[string]struct{}{"pending": {}, "paid": {}, "shipped": {}, "delivered": {}, "cancelled": {}}
	paymentStatuses = map[string]struct{}{"pending": {}, "paid": {}, "failed": {}}
)

// emailRE is deliberately loose: one @ with non-empty local and domain parts.
var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CheckoutRequest is the validated input for Create.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	DeliveryMethod     string `json:"delivery_method"`
	DeliveryAddress    string `json:"delivery_address"`
	DeliveryCity       string `json:"delivery_city"`
	DeliveryPostalCode string `json:"delivery_postal_code"`

	Items      []domain.OrderItem    `json:"items"`
	SurveyData *domain.SurveyAnswers `json:"survey_data,omitempty"`
}

// OrderService provides checkout and order management operations.
type OrderService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Now is a clock seam for tests; time.Now when nil.
	Now func() time.Time
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create validates the checkout request, prices it from the submitted item
// lines, and persists a pending order. The total is always recomputed
// server-side; client-sent totals are ignored.
func (s *OrderService) Create(ctx context.Context, req CheckoutRequest) (*domain.Order, error) {
	tr := otel.Tracer("services/OrderService")
	ctx, span := tr.Start(ctx, "Create")
	defer span.End()
	span.SetAttributes(attribute.Int("items", len(req.Items)))

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	if req.CustomerName == "" || !emailRE.MatchString(req.CustomerEmail) {
		return nil, ErrInvalidOrder
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var total float64
	for _, it := range req.Items {
		if it.Quantity <= 0 || it.Price < 0 || strings.TrimSpace(it.Name) == "" {
			return nil, ErrInvalidOrder
		}
		total += it.Price * float64(it.Quantity)
	}

	items, err := json.Marshal(req.Items)
	if err != nil {
		return nil, err
	}
	var surveyData string
	if req.SurveyData != nil {
		raw, err := json.Marshal(req.SurveyData)
		if err != nil {
			return nil, err
		}
		surveyData = string(raw)
	}

	now := s.now().UTC()
	o := &domain.Order{
		OrderNumber:        s.orderNumber(now),
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      strings.TrimSpace(req.CustomerPhone),
		DeliveryMethod:     req.DeliveryMethod,
		DeliveryAddress:    req.DeliveryAddress,
		DeliveryCity:       req.DeliveryCity,
		DeliveryPostalCode: req.DeliveryPostalCode,
		TotalAmount:        total,
		Items:              string(items),
		SurveyData:         surveyData,
		Status:             "pending",
		PaymentStatus:      "pending",
	}
	return repo.CreateOrder(ctx, s.DB, o)
}

// Get fetches one order by ID.
func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	o, err := repo.GetOrder(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

// GetByNumber fetches one order by its public order number.
func (s *OrderService) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	o, err := repo.GetOrderByNumber(ctx, s.DB, strings.TrimSpace(number))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

// ListPage returns a page of orders, newest first, optionally filtered by
// status. It applies defaults for invalid page/pageSize and returns the total
// count for pagination metadata.
func (s *OrderService) ListPage(ctx context.Context, status string, page, pageSize int) ([]domain.Order, int64, error) {
	tr := otel.Tracer("services/OrderService")
	ctx, span := tr.Start(ctx, "ListPage")
	defer span.End()
	span.SetAttributes(attribute.String("status", status), attribute.Int("page", page))

	if status != "" {
		if _, ok := orderStatuses[status]; !ok {
			return nil, 0, ErrInvalidStatus
		}
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountOrders(ctx, s.DB, status)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Order{}, 0, nil
	}

	items, err := repo.ListOrdersPage(ctx, s.DB, status, offset, pageSize)
	return items, total, err
}

// UpdateStatus moves an order through its lifecycle. Either value may be
// empty to leave it unchanged; non-empty values must belong to the allowed
// sets.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, status, paymentStatus string) error {
	if status != "" {
		if _, ok := orderStatuses[status]; !ok {
			return ErrInvalidStatus
		}
	}
	if paymentStatus != "" {
		if _, ok := paymentStatuses[paymentStatus]; !ok {
			return ErrInvalidStatus
		}
	}
	err := repo.UpdateOrderStatus(ctx, s.DB, id, status, paymentStatus)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// orderNumber builds the public order number: VIT-YYYYMMDD-<unix seconds>.
func (s *OrderService) orderNumber(now time.Time) string {
	return fmt.Sprintf("VIT-%s-%d", now.Format("20060102"), now.Unix())
}
