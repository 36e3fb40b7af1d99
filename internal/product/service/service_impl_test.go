package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	orderdomain "github.com/smallretail/legacy-api/internal/order/domain"
	"github.com/smallretail/legacy-api/internal/product/domain"
	"github.com/smallretail/legacy-api/internal/product/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(&domain.Product{}, &orderdomain.Order{}, &orderdomain.OrderItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, db
}

func createProduct(t *testing.T, svc domain.Service, name string, price string) *domain.Response {
	t.Helper()

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:          name,
		Description:   "test product",
		Price:         decimal.RequireFromString(price),
		StockQuantity: 10,
		Category:      "Electronics",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return resp
}

func TestProductCreateAndGet(t *testing.T) {
	svc, _ := setupProductService(t)

	created := createProduct(t, svc, "Widget", "9.99")
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected CreatedAt == UpdatedAt, got %v and %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Name != "Widget" {
		t.Fatalf("expected name Widget, got %q", got.Name)
	}
	if !got.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("expected price 9.99, got %s", got.Price)
	}
}

func TestProductGetNotFound(t *testing.T) {
	svc, _ := setupProductService(t)

	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductUpdateReplacesFields(t *testing.T) {
	svc, _ := setupProductService(t)

	created := createProduct(t, svc, "Widget", "9.99")

	name := "Gadget"
	description := "updated"
	price := decimal.RequireFromString("19.50")
	stock := 3
	category := "Toys"

	updated, err := svc.Update(context.Background(), created.ID, domain.UpdateRequest{
		Name:          &name,
		Description:   &description,
		Price:         &price,
		StockQuantity: &stock,
		Category:      &category,
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated.Name != "Gadget" || updated.Category != "Toys" {
		t.Fatalf("unexpected updated fields: %+v", updated)
	}
	if !updated.Price.Equal(price) {
		t.Fatalf("expected price 19.50, got %s", updated.Price)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("CreatedAt must not change on update")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatal("UpdatedAt must be refreshed on update")
	}
}

func TestProductUpdateKeepsNilFields(t *testing.T) {
	svc, _ := setupProductService(t)

	created := createProduct(t, svc, "Widget", "9.99")

	stock := 99
	updated, err := svc.Update(context.Background(), created.ID, domain.UpdateRequest{
		StockQuantity: &stock,
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated.StockQuantity != 99 {
		t.Fatalf("expected stock 99, got %d", updated.StockQuantity)
	}
	if updated.Name != "Widget" {
		t.Fatalf("nil name must keep stored value, got %q", updated.Name)
	}
	if !updated.Price.Equal(created.Price) {
		t.Fatalf("nil price must keep stored value, got %s", updated.Price)
	}
}

func TestProductUpdateNotFound(t *testing.T) {
	svc, _ := setupProductService(t)

	name := "Ghost"
	_, err := svc.Update(context.Background(), 42, domain.UpdateRequest{Name: &name})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductListPagination(t *testing.T) {
	svc, _ := setupProductService(t)

	for i := 0; i < 15; i++ {
		createProduct(t, svc, fmt.Sprintf("Product %02d", i), "5.00")
	}

	page, err := svc.List(context.Background(), domain.ListRequest{Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(page.Items) != 5 {
		t.Fatalf("expected 5 items on page 2, got %d", len(page.Items))
	}
	if page.TotalCount != 15 || page.TotalPages != 2 {
		t.Fatalf("unexpected envelope: totalCount=%d totalPages=%d", page.TotalCount, page.TotalPages)
	}
	if !page.HasPreviousPage || page.HasNextPage {
		t.Fatalf("unexpected nav flags: prev=%v next=%v", page.HasPreviousPage, page.HasNextPage)
	}

	// Out-of-range inputs clamp to defaults.
	clamped, err := svc.List(context.Background(), domain.ListRequest{Page: 0, PageSize: -1})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if clamped.Page != 1 || clamped.PageSize != 10 {
		t.Fatalf("expected clamped window 1/10, got %d/%d", clamped.Page, clamped.PageSize)
	}
}

func TestProductDeleteRestrictedByOrderItems(t *testing.T) {
	svc, db := setupProductService(t)
	ctx := context.Background()

	created := createProduct(t, svc, "Widget", "9.99")

	order := orderdomain.Order{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		CustomerAddress: "1 Main St",
		Status:          orderdomain.StatusPending,
		TotalAmount:     decimal.RequireFromString("9.99"),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	item := orderdomain.OrderItem{
		OrderID:    order.ID,
		ProductID:  created.ID,
		Quantity:   1,
		UnitPrice:  decimal.RequireFromString("9.99"),
		TotalPrice: decimal.RequireFromString("9.99"),
	}
	if err := db.Omit("Product").Create(&item).Error; err != nil {
		t.Fatalf("create order item: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); !errors.Is(err, domain.ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}

	if err := db.Delete(&orderdomain.OrderItem{}, item.ID).Error; err != nil {
		t.Fatalf("delete order item: %v", err)
	}
	if err := db.Delete(&orderdomain.Order{}, order.ID).Error; err != nil {
		t.Fatalf("delete order: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete after dereference: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestProductDeleteNotFound(t *testing.T) {
	svc, _ := setupProductService(t)

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
