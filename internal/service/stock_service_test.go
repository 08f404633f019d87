package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/giftmart/internal/models"
	"github.com/giftmart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupStockServiceTest(t *testing.T) (*StockService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:stock_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewStockService(repository.NewProductRepository(db)), db
}

func seedStockProduct(t *testing.T, db *gorm.DB, id uint, stock int) {
	t.Helper()
	product := models.Product{
		ID:          id,
		Name:        fmt.Sprintf("Gift Card %d", id),
		Currency:    "USD",
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("25.00")),
		Stock:       stock,
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	return product.Stock
}

func TestStockServiceReserveNeverOversells(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStockProduct(t, db, 1, 5)

	succeeded := 0
	for i := 0; i < 8; i++ {
		err := svc.Reserve([]StockLine{{ProductID: 1, Quantity: 1}})
		if err == nil {
			succeeded++
			continue
		}
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("unexpected reserve error: %v", err)
		}
	}
	if succeeded != 5 {
		t.Fatalf("expected 5 successful reservations, got %d", succeeded)
	}
	if stock := productStock(t, db, 1); stock != 0 {
		t.Fatalf("expected stock 0, got %d", stock)
	}
}

func TestStockServiceReserveConcurrentNeverOversells(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStockProduct(t, db, 1, 5)

	// sqlite 单写者，连接池收紧为 1，并发预留在池上排队
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Reserve([]StockLine{{ProductID: 1, Quantity: 1}})
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("unexpected reserve error: %v", err)
		}
	}
	if succeeded != 5 || rejected != 3 {
		t.Fatalf("expected 5 successes and 3 rejections, got %d/%d", succeeded, rejected)
	}
	if stock := productStock(t, db, 1); stock != 0 {
		t.Fatalf("expected stock 0, got %d", stock)
	}
}

func TestStockServiceReserveUnknownProduct(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStockProduct(t, db, 1, 1)

	err := svc.Reserve([]StockLine{{ProductID: 9999, Quantity: 1}})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for unknown product, got: %v", err)
	}

	err = svc.Reserve([]StockLine{{ProductID: 1, Quantity: 2}})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock for sold-out product, got: %v", err)
	}
	if stock := productStock(t, db, 1); stock != 1 {
		t.Fatalf("expected stock unchanged at 1, got %d", stock)
	}
}

func TestStockServiceReserveAllOrNothing(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStockProduct(t, db, 1, 10)
	seedStockProduct(t, db, 2, 1)

	err := svc.Reserve([]StockLine{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 2},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got: %v", err)
	}
	if stock := productStock(t, db, 1); stock != 10 {
		t.Fatalf("expected product 1 stock unchanged at 10, got %d", stock)
	}
	if stock := productStock(t, db, 2); stock != 1 {
		t.Fatalf("expected product 2 stock unchanged at 1, got %d", stock)
	}
}

func TestStockServiceReserveMultiLineSuccess(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStockProduct(t, db, 1, 10)
	seedStockProduct(t, db, 2, 4)

	if err := svc.Reserve([]StockLine{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 4},
	}); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if stock := productStock(t, db, 1); stock != 7 {
		t.Fatalf("expected product 1 stock 7, got %d", stock)
	}
	if stock := productStock(t, db, 2); stock != 0 {
		t.Fatalf("expected product 2 stock 0, got %d", stock)
	}
}

func TestStockServiceReserveEmptyLines(t *testing.T) {
	svc, _ := setupStockServiceTest(t)
	if err := svc.Reserve(nil); !errors.Is(err, ErrNoValidItems) {
		t.Fatalf("expected ErrNoValidItems, got: %v", err)
	}
}

func TestStockServiceReleaseRestoresStock(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStockProduct(t, db, 1, 5)

	lines := []StockLine{{ProductID: 1, Quantity: 3}}
	if err := svc.Reserve(lines); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	svc.Release(lines)
	if stock := productStock(t, db, 1); stock != 5 {
		t.Fatalf("expected stock restored to 5, got %d", stock)
	}
}
