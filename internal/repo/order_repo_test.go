package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

func seedOrder(t *testing.T, db *gorm.DB, number, status string) *domain.Order {
	t.Helper()
	o := &domain.Order{
		OrderNumber:   number,
		CustomerName:  "Анна",
		CustomerEmail: "anna@example.com",
		TotalAmount:   1980,
		Items:         `[{"product_id":1,"name":"Витамин D3","price":990,"quantity":2}]`,
		Status:        status,
		PaymentStatus: "pending",
	}
	created, err := CreateOrder(context.Background(), db, o)
	if err != nil {
		t.Fatalf("seed order %s: %v", number, err)
	}
	return created
}

func TestCreateGetOrder(t *testing.T) {
	db := newTestDB(t, &domain.Order{})
	ctx := context.Background()

	created := seedOrder(t, db, "VIT-20260828-100", "pending")
	if created.ID == 0 {
		t.Fatalf("expected assigned ID")
	}

	byID, err := GetOrder(ctx, db, created.ID)
	if err != nil || byID.OrderNumber != "VIT-20260828-100" {
		t.Fatalf("GetOrder = %+v, %v", byID, err)
	}

	byNumber, err := GetOrderByNumber(ctx, db, "VIT-20260828-100")
	if err != nil || byNumber.ID != created.ID {
		t.Fatalf("GetOrderByNumber = %+v, %v", byNumber, err)
	}

	if _, err := GetOrder(ctx, db, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := GetOrderByNumber(ctx, db, "VIT-00000000-0"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateOrder_DuplicateNumber(t *testing.T) {
	db := newTestDB(t, &domain.Order{})
	seedOrder(t, db, "VIT-20260828-7", "pending")

	dup := &domain.Order{
		OrderNumber: "VIT-20260828-7", CustomerName: "x",
		CustomerEmail: "x@example.com", Items: "[]",
	}
	if _, err := CreateOrder(context.Background(), db, dup); err == nil {
		t.Fatalf("expected unique violation for duplicate order number")
	}
}

func TestListOrdersPage_AndCount(t *testing.T) {
	db := newTestDB(t, &domain.Order{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		status := "pending"
		if i%2 == 1 {
			status = "paid"
		}
		seedOrder(t, db, fmt.Sprintf("VIT-20260828-%d", i), status)
	}

	total, err := CountOrders(ctx, db, "")
	if err != nil || total != 5 {
		t.Fatalf("CountOrders all = %d, %v", total, err)
	}
	paid, err := CountOrders(ctx, db, "paid")
	if err != nil || paid != 2 {
		t.Fatalf("CountOrders paid = %d, %v", paid, err)
	}

	page, err := ListOrdersPage(ctx, db, "", 0, 3)
	if err != nil || len(page) != 3 {
		t.Fatalf("ListOrdersPage = %d rows, %v", len(page), err)
	}
	rest, err := ListOrdersPage(ctx, db, "", 3, 3)
	if err != nil || len(rest) != 2 {
		t.Fatalf("second page = %d rows, %v", len(rest), err)
	}

	onlyPaid, err := ListOrdersPage(ctx, db, "paid", 0, 10)
	if err != nil || len(onlyPaid) != 2 {
		t.Fatalf("paid page = %d rows, %v", len(onlyPaid), err)
	}
	for _, o := range onlyPaid {
		if o.Status != "paid" {
			t.Fatalf("status filter leaked: %+v", o)
		}
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t, &domain.Order{})
	ctx := context.Background()

	o := seedOrder(t, db, "VIT-20260828-55", "pending")

	if err := UpdateOrderStatus(ctx, db, o.ID, "paid", "paid"); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	got, _ := GetOrder(ctx, db, o.ID)
	if got.Status != "paid" || got.PaymentStatus != "paid" {
		t.Fatalf("statuses not updated: %+v", got)
	}

	// only the fulfillment status
	if err := UpdateOrderStatus(ctx, db, o.ID, "shipped", ""); err != nil {
		t.Fatalf("UpdateOrderStatus partial: %v", err)
	}
	got, _ = GetOrder(ctx, db, o.ID)
	if got.Status != "shipped" || got.PaymentStatus != "paid" {
		t.Fatalf("partial update broke payment status: %+v", got)
	}

	// nothing to change is a no-op, not an error
	if err := UpdateOrderStatus(ctx, db, o.ID, "", ""); err != nil {
		t.Fatalf("no-op update: %v", err)
	}

	if err := UpdateOrderStatus(ctx, db, 9999, "paid", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
