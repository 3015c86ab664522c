package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
	"github.com/tbourn/go-vitamins-backend/internal/services"
)

type fakeProdSvc struct {
	products   []domain.Product
	categories []string
	count      int64
	maxTS      *time.Time

	listErr  error
	getErr   error
	writeErr error
	statsErr error

	updatedFields map[string]any
}

func (f *fakeProdSvc) List(context.Context, string, bool) ([]domain.Product, error) {
	return f.products, f.listErr
}
func (f *fakeProdSvc) Get(_ context.Context, id int) (*domain.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &domain.Product{ID: id, Name: "Витамин D3"}, nil
}
func (f *fakeProdSvc) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	p.ID = 1
	return p, nil
}
func (f *fakeProdSvc) Update(_ context.Context, _ int, fields map[string]any) error {
	f.updatedFields = fields
	return f.writeErr
}
func (f *fakeProdSvc) Delete(context.Context, int) error { return f.writeErr }
func (f *fakeProdSvc) Categories(context.Context) ([]string, error) {
	return f.categories, f.listErr
}
func (f *fakeProdSvc) Stats(context.Context) (int64, *time.Time, error) {
	return f.count, f.maxTS, f.statsErr
}

func newProdRouter(svc *fakeProdSvc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(nil, svc, nil, nil)
	r := gin.New()
	r.GET("/products", h.ListProducts)
	r.GET("/products/categories", h.ListCategories)
	r.GET("/products/:id", h.GetProduct)
	r.POST("/products", h.CreateProduct)
	r.PATCH("/products/:id", h.UpdateProduct)
	r.DELETE("/products/:id", h.DeleteProduct)
	return r
}

func TestListProducts_ETagAnd304(t *testing.T) {
	ts := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc := &fakeProdSvc{
		products: []domain.Product{{ID: 1, Name: "Витамин D3"}},
		count:    1,
		maxTS:    &ts,
	}
	r := newProdRouter(svc)

	// first request carries the weak ETag
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	etag := w.Header().Get("ETag")
	want := fmt.Sprintf(`W/"products:1:%d"`, ts.Unix())
	if etag != want {
		t.Fatalf("etag=%q want %q", etag, want)
	}

	// conditional request short-circuits
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", w.Code)
	}
}

func TestListProducts_StatsFailureStillLists(t *testing.T) {
	svc := &fakeProdSvc{
		products: []domain.Product{{ID: 1, Name: "Мелатонин"}},
		statsErr: errors.New("stats broken"),
	}
	r := newProdRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if w.Header().Get("ETag") != "" {
		t.Fatalf("no ETag expected when stats fail")
	}
}

func TestListProducts_Error(t *testing.T) {
	r := newProdRouter(&fakeProdSvc{listErr: errors.New("db down")})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestListCategories(t *testing.T) {
	r := newProdRouter(&fakeProdSvc{categories: []string{"sleep", "vitamins"}})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/categories", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body["categories"]) != 2 {
		t.Fatalf("unexpected categories: %#v", body)
	}
}

func TestGetProduct(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r := newProdRouter(&fakeProdSvc{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/7", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
	})
	t.Run("bad id", func(t *testing.T) {
		r := newProdRouter(&fakeProdSvc{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/zero", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d", w.Code)
		}
	})
	t.Run("not found", func(t *testing.T) {
		r := newProdRouter(&fakeProdSvc{getErr: services.ErrProductNotFound})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/7", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d", w.Code)
		}
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r := newProdRouter(&fakeProdSvc{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"name":"Цинк хелат","price":690}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
	})
	t.Run("invalid product", func(t *testing.T) {
		r := newProdRouter(&fakeProdSvc{writeErr: services.ErrInvalidProduct})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"price":-1}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d", w.Code)
		}
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("applies only provided fields", func(t *testing.T) {
		svc := &fakeProdSvc{}
		r := newProdRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/products/3", bytes.NewBufferString(`{"price":1290,"in_stock":false}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		if len(svc.updatedFields) != 2 || svc.updatedFields["price"] != 1290.0 || svc.updatedFields["in_stock"] != false {
			t.Fatalf("fields=%v", svc.updatedFields)
		}
	})
	t.Run("empty body rejected", func(t *testing.T) {
		r := newProdRouter(&fakeProdSvc{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/products/3", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d", w.Code)
		}
	})
	t.Run("not found", func(t *testing.T) {
		r := newProdRouter(&fakeProdSvc{writeErr: services.ErrProductNotFound})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/products/3", bytes.NewBufferString(`{"price":1}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d", w.Code)
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		r := newProdRouter(&fakeProdSvc{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/products/3", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("status=%d", w.Code)
		}
	})
	t.Run("not found", func(t *testing.T) {
		r := newProdRouter(&fakeProdSvc{writeErr: services.ErrProductNotFound})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/products/3", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d", w.Code)
		}
	})
}
