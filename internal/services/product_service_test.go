package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

// newServiceDB opens a unique in-memory database per test, migrating the
// given models.
func newServiceDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(migrate...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestProductService_CreateAssignsRuleKey(t *testing.T) {
	svc := &ProductService{DB: newServiceDB(t, &domain.Product{})}
	ctx := context.Background()

	known, err := svc.Create(ctx, &domain.Product{Name: "Витамин D3", Price: 990, InStock: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if known.Key != "vitamin-d3" {
		t.Fatalf("known display name must receive its rule key, got %q", known.Key)
	}

	unknown, err := svc.Create(ctx, &domain.Product{Name: "Новинка", Price: 100})
	if err != nil {
		t.Fatalf("Create unknown: %v", err)
	}
	if unknown.Key != "" {
		t.Fatalf("unknown display name must stay keyless, got %q", unknown.Key)
	}
}

func TestProductService_CreateValidation(t *testing.T) {
	svc := &ProductService{DB: newServiceDB(t, &domain.Product{})}
	ctx := context.Background()

	if _, err := svc.Create(ctx, &domain.Product{Name: "   "}); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("blank name: err = %v", err)
	}
	if _, err := svc.Create(ctx, &domain.Product{Name: "x", Price: -1}); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("negative price: err = %v", err)
	}
}

func TestProductService_GetUpdateDelete(t *testing.T) {
	svc := &ProductService{DB: newServiceDB(t, &domain.Product{})}
	ctx := context.Background()

	p, _ := svc.Create(ctx, &domain.Product{Name: "Куркумин", Price: 990, InStock: true})

	if err := svc.Update(ctx, p.ID, map[string]any{"price": 890.0}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := svc.Get(ctx, p.ID)
	if err != nil || got.Price != 890 {
		t.Fatalf("Get after update = %+v, %v", got, err)
	}

	if err := svc.Update(ctx, p.ID, map[string]any{"name": " "}); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("blank name update: err = %v", err)
	}
	if err := svc.Update(ctx, 9999, map[string]any{"price": 1.0}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing update: err = %v", err)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("deleted product still visible: %v", err)
	}
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("double delete: err = %v", err)
	}
}

func TestProductService_ListAssignsKeys(t *testing.T) {
	svc := &ProductService{DB: newServiceDB(t, &domain.Product{})}
	ctx := context.Background()

	// bypass Create to simulate a row persisted without a key
	if err := svc.DB.Create(&domain.Product{Name: "Мелатонин", InStock: true}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := svc.List(ctx, "", true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Key != "melatonin" {
		t.Fatalf("List must assign known keys: %+v", got)
	}
}
