package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/giftmart/internal/config"
	"github.com/giftmart/internal/constants"
	"github.com/giftmart/internal/models"
	"github.com/giftmart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	stockSvc := NewStockService(productRepo)
	paymentSvc := NewPaymentService(&config.StripeConfig{Enabled: false})
	svc := NewOrderService(orderRepo, productRepo, stockSvc, paymentSvc, nil, "USD", 100)
	return svc, db
}

func seedOrderProduct(t *testing.T, db *gorm.DB, id uint, price string, discount, stock int, active bool) {
	t.Helper()
	product := models.Product{
		ID:              id,
		Name:            fmt.Sprintf("Gift Card %d", id),
		Brand:           "Demo",
		Category:        "gaming",
		Region:          "US",
		Currency:        "USD",
		PriceAmount:     models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		DiscountPercent: discount,
		Stock:           stock,
		IsActive:        active,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
}

func testCaller(userID uint) CallerContext {
	return CallerContext{
		UserID: userID,
		Email:  fmt.Sprintf("buyer_%d@example.com", userID),
	}
}

func TestPlaceOrderExpandsQuantityWithDistinctKeys(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedOrderProduct(t, db, 1, "25.00", 0, 10, true)

	order, err := svc.PlaceOrder(context.Background(), testCaller(1), PlaceOrderInput{
		Items: []PlaceOrderItemInput{{ProductID: 1, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if len(order.Items) != 3 {
		t.Fatalf("expected 3 order items, got %d", len(order.Items))
	}
	seen := make(map[string]struct{})
	for _, item := range order.Items {
		if item.Quantity != 1 {
			t.Fatalf("expected item quantity 1, got %d", item.Quantity)
		}
		if item.GiftCardKey == "" {
			t.Fatalf("expected gift card key on item %d", item.ID)
		}
		if _, dup := seen[item.GiftCardKey]; dup {
			t.Fatalf("duplicate gift card key %q within order", item.GiftCardKey)
		}
		seen[item.GiftCardKey] = struct{}{}
	}
	if stock := productStock(t, db, 1); stock != 7 {
		t.Fatalf("expected stock 7 after order, got %d", stock)
	}
}

func TestPlaceOrderTotalMatchesItemSum(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedOrderProduct(t, db, 1, "25.00", 0, 10, true)
	seedOrderProduct(t, db, 2, "50.00", 10, 10, true)

	order, err := svc.PlaceOrder(context.Background(), testCaller(1), PlaceOrderInput{
		Items: []PlaceOrderItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.UnitPrice.Decimal)
	}
	if !order.TotalAmount.Decimal.Equal(sum) {
		t.Fatalf("total %s does not match item sum %s", order.TotalAmount.String(), sum.String())
	}
	// 25 + 25 + 50*0.9 = 95.00
	if !order.TotalAmount.Decimal.Equal(decimal.RequireFromString("95.00")) {
		t.Fatalf("expected total 95.00, got %s", order.TotalAmount.String())
	}
}

func TestPlaceOrderRejectsUnauthorizedCaller(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedOrderProduct(t, db, 1, "25.00", 0, 10, true)

	_, err := svc.PlaceOrder(context.Background(), CallerContext{}, PlaceOrderInput{
		Items: []PlaceOrderItemInput{{ProductID: 1, Quantity: 1}},
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}
}

func TestPlaceOrderRejectsBlockedUser(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedOrderProduct(t, db, 1, "25.00", 0, 10, true)

	caller := testCaller(1)
	caller.Blocked = true
	_, err := svc.PlaceOrder(context.Background(), caller, PlaceOrderInput{
		Items: []PlaceOrderItemInput{{ProductID: 1, Quantity: 1}},
	})
	if !errors.Is(err, ErrUserBlocked) {
		t.Fatalf("expected ErrUserBlocked, got: %v", err)
	}
	if stock := productStock(t, db, 1); stock != 10 {
		t.Fatalf("expected stock untouched at 10, got %d", stock)
	}
}

func TestPlaceOrderDropsUnknownAndInactiveLines(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedOrderProduct(t, db, 1, "25.00", 0, 10, true)
	seedOrderProduct(t, db, 2, "30.00", 0, 10, false)

	order, err := svc.PlaceOrder(context.Background(), testCaller(1), PlaceOrderInput{
		Items: []PlaceOrderItemInput{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 1},
			{ProductID: 99, Quantity: 1},
			{ProductID: 1, Quantity: 0},
		},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 order item after dropping invalid lines, got %d", len(order.Items))
	}
	if order.Items[0].ProductID != 1 {
		t.Fatalf("expected surviving line for product 1, got %d", order.Items[0].ProductID)
	}
}

func TestPlaceOrderAllLinesInvalid(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	_, err := svc.PlaceOrder(context.Background(), testCaller(1), PlaceOrderInput{
		Items: []PlaceOrderItemInput{
			{ProductID: 99, Quantity: 1},
			{ProductID: 0, Quantity: 2},
		},
	})
	if !errors.Is(err, ErrNoValidItems) {
		t.Fatalf("expected ErrNoValidItems, got: %v", err)
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedOrderProduct(t, db, 1, "25.00", 0, 2, true)

	_, err := svc.PlaceOrder(context.Background(), testCaller(1), PlaceOrderInput{
		Items: []PlaceOrderItemInput{{ProductID: 1, Quantity: 3}},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got: %v", err)
	}
	if stock := productStock(t, db, 1); stock != 2 {
		t.Fatalf("expected stock unchanged at 2, got %d", stock)
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no orders persisted, got %d", count)
	}
}

func TestPlaceOrderPersistsCompletedOrder(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedOrderProduct(t, db, 1, "25.00", 0, 5, true)

	order, err := svc.PlaceOrder(context.Background(), testCaller(7), PlaceOrderInput{
		Items: []PlaceOrderItemInput{{ProductID: 1, Quantity: 2}},
		Shipping: ShippingAddressInput{
			Name:    "Jamie Doe",
			Line1:   "1 Main St",
			City:    "Springfield",
			Country: "US",
		},
		PaymentMethod: constants.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Status != constants.OrderStatusCompleted {
		t.Fatalf("expected status completed, got %s", order.Status)
	}
	if order.OrderNo == "" {
		t.Fatalf("expected non-empty order no")
	}

	loaded, err := svc.GetUserOrder(order.ID, 7)
	if err != nil {
		t.Fatalf("get user order failed: %v", err)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 persisted items, got %d", len(loaded.Items))
	}
	if loaded.Email != "buyer_7@example.com" {
		t.Fatalf("unexpected order email: %s", loaded.Email)
	}

	orders, total, err := svc.ListUserOrders(7, 1, 20)
	if err != nil {
		t.Fatalf("list user orders failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("expected single order in listing, got total=%d len=%d", total, len(orders))
	}
}

func TestGetUserOrderScopedToOwner(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedOrderProduct(t, db, 1, "25.00", 0, 5, true)

	order, err := svc.PlaceOrder(context.Background(), testCaller(1), PlaceOrderInput{
		Items: []PlaceOrderItemInput{{ProductID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if _, err := svc.GetUserOrder(order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign user, got: %v", err)
	}
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedOrderProduct(t, db, 1, "25.00", 0, 5, true)

	order, err := svc.PlaceOrder(context.Background(), testCaller(1), PlaceOrderInput{
		Items: []PlaceOrderItemInput{{ProductID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if err := svc.UpdateOrderStatus(order.ID, "shipped"); !errors.Is(err, ErrInvalidOrderState) {
		t.Fatalf("expected ErrInvalidOrderState, got: %v", err)
	}
	if err := svc.UpdateOrderStatus(9999, constants.OrderStatusFailed); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got: %v", err)
	}
	if err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusFailed); err != nil {
		t.Fatalf("update order status failed: %v", err)
	}

	updated, err := svc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if updated.Status != constants.OrderStatusFailed {
		t.Fatalf("expected status failed, got %s", updated.Status)
	}
}

func TestEffectiveUnitPriceRounding(t *testing.T) {
	product := models.Product{
		PriceAmount:     models.NewMoneyFromDecimal(decimal.RequireFromString("19.99")),
		DiscountPercent: 15,
	}
	price := effectiveUnitPrice(product)
	if !price.Equal(decimal.RequireFromString("16.99")) {
		t.Fatalf("expected 16.99, got %s", price.String())
	}

	product.DiscountPercent = 0
	if !effectiveUnitPrice(product).Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("expected full price without discount")
	}

	product.DiscountPercent = 120
	if !effectiveUnitPrice(product).Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("expected out-of-range discount to be ignored")
	}
}
