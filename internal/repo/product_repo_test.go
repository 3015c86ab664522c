package repo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

func seedProducts(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []domain.Product{
		{Name: "Витамин D3", Category: "Витамины", Rating: 4.9, Popular: true, InStock: true},
		{Name: "Омега-3 Premium", Category: "Омега кислоты", Rating: 4.8, Popular: true, InStock: false},
		{Name: "Магний цитрат", Category: "Минералы", Rating: 4.7, InStock: true},
		{Name: "Мелатонин", Category: "Для сна", Rating: 4.9, InStock: true},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed product %d: %v", i, err)
		}
	}
}

func TestListProducts_OrderingAndFilters(t *testing.T) {
	db := newTestDB(t, &domain.Product{})
	seedProducts(t, db)
	ctx := context.Background()

	all, err := ListProducts(ctx, db, "", false)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 products, got %d", len(all))
	}
	// popular first (rating desc within the group), then the rest by rating
	if !all[0].Popular || !all[1].Popular {
		t.Fatalf("popular products must lead: %+v", all[:2])
	}
	if all[0].Name != "Витамин D3" {
		t.Fatalf("expected highest-rated popular product first, got %q", all[0].Name)
	}
	if all[2].Name != "Мелатонин" {
		t.Fatalf("expected rating ordering among non-popular, got %q", all[2].Name)
	}

	inStock, err := ListProducts(ctx, db, "", true)
	if err != nil {
		t.Fatalf("ListProducts in-stock: %v", err)
	}
	if len(inStock) != 3 {
		t.Fatalf("expected 3 in-stock products, got %d", len(inStock))
	}
	for _, p := range inStock {
		if !p.InStock {
			t.Fatalf("out-of-stock product leaked: %+v", p)
		}
	}

	cat, err := ListProducts(ctx, db, "Минералы", false)
	if err != nil {
		t.Fatalf("ListProducts category: %v", err)
	}
	if len(cat) != 1 || cat[0].Name != "Магний цитрат" {
		t.Fatalf("category filter broken: %+v", cat)
	}
}

func TestCreateGetProduct(t *testing.T) {
	db := newTestDB(t, &domain.Product{})
	ctx := context.Background()

	created, err := CreateProduct(ctx, db, &domain.Product{Name: "Цинк хелат", Category: "Минералы", Price: 690, InStock: true})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned ID")
	}

	got, err := GetProduct(ctx, db, created.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Name != "Цинк хелат" || got.Price != 690 {
		t.Fatalf("unexpected product: %+v", got)
	}

	if _, err := GetProduct(ctx, db, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestUpdateProduct(t *testing.T) {
	db := newTestDB(t, &domain.Product{})
	ctx := context.Background()

	created, _ := CreateProduct(ctx, db, &domain.Product{Name: "Куркумин", Price: 990, InStock: true})
	if err := UpdateProduct(ctx, db, created.ID, map[string]any{"price": 890.0, "in_stock": false}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	got, _ := GetProduct(ctx, db, created.ID)
	if got.Price != 890 || got.InStock {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := UpdateProduct(ctx, db, 9999, map[string]any{"price": 1.0}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestDeleteProduct_SoftDelete(t *testing.T) {
	db := newTestDB(t, &domain.Product{})
	ctx := context.Background()

	created, _ := CreateProduct(ctx, db, &domain.Product{Name: "Ашваганда", InStock: true})
	if err := DeleteProduct(ctx, db, created.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := GetProduct(ctx, db, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted product still visible, err=%v", err)
	}
	// soft delete keeps the row
	var count int64
	if err := db.Unscoped().Model(&domain.Product{}).Count(&count).Error; err != nil || count != 1 {
		t.Fatalf("expected soft-deleted row to remain, count=%d err=%v", count, err)
	}

	if err := DeleteProduct(ctx, db, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestListCategories(t *testing.T) {
	db := newTestDB(t, &domain.Product{})
	seedProducts(t, db)

	got, err := ListCategories(context.Background(), db)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 distinct categories, got %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Fatalf("categories not sorted: %v", got)
		}
	}
}

func TestProductsStats(t *testing.T) {
	db := newTestDB(t, &domain.Product{})
	ctx := context.Background()

	count, maxAt, err := ProductsStats(ctx, db)
	if err != nil || count != 0 || maxAt != nil {
		t.Fatalf("empty stats = (%d, %v, %v)", count, maxAt, err)
	}

	seedProducts(t, db)
	count, maxAt, err = ProductsStats(ctx, db)
	if err != nil {
		t.Fatalf("ProductsStats: %v", err)
	}
	if count != 4 || maxAt == nil || maxAt.IsZero() {
		t.Fatalf("unexpected stats: count=%d maxAt=%v", count, maxAt)
	}
}
