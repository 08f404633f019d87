package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/giftmart/internal/constants"
	"github.com/giftmart/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate order tables failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func newTestOrder(userID uint, orderNo, status string) *models.Order {
	return &models.Order{
		OrderNo:     orderNo,
		UserID:      userID,
		Email:       fmt.Sprintf("user_%d@example.com", userID),
		Status:      status,
		Currency:    "USD",
		TotalAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("25.00")),
	}
}

func TestOrderRepositoryCreateWithItems(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	order := newTestOrder(1, "GM20260101000000000001", constants.OrderStatusCompleted)
	items := []models.OrderItem{
		{ProductID: 1, Name: "Gift Card A", Currency: "USD", UnitPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("10.00")), Quantity: 1, GiftCardKey: "AAAA-BBBB-CCCC-DDDD"},
		{ProductID: 1, Name: "Gift Card A", Currency: "USD", UnitPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("10.00")), Quantity: 1, GiftCardKey: "EEEE-FFFF-GGGG-HHHH"},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatalf("expected order id to be assigned")
	}

	var count int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 persisted items, got %d", count)
	}

	loaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if loaded == nil || len(loaded.Items) != 2 {
		t.Fatalf("expected preloaded items, got: %+v", loaded)
	}
}

func TestOrderRepositoryCreateRollsBackOrderWhenItemsFail(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	first := newTestOrder(1, "GM-rollback-seed", constants.OrderStatusCompleted)
	firstItems := []models.OrderItem{
		{ProductID: 1, Name: "Gift Card A", Currency: "USD", UnitPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("10.00")), Quantity: 1, GiftCardKey: "AAAA-AAAA-AAAA-AAAA"},
	}
	if err := repo.Create(first, firstItems); err != nil {
		t.Fatalf("create seed order failed: %v", err)
	}

	// 订单项主键与已有记录冲突，写入必然失败
	order := newTestOrder(1, "GM-rollback", constants.OrderStatusCompleted)
	items := []models.OrderItem{
		{ID: firstItems[0].ID, ProductID: 1, Name: "Gift Card A", Currency: "USD", UnitPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("10.00")), Quantity: 1, GiftCardKey: "BBBB-BBBB-BBBB-BBBB"},
	}
	if err := repo.Create(order, items); err == nil {
		t.Fatalf("expected create to fail on conflicting item")
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Where("order_no = ?", "GM-rollback").Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected order row rolled back, found %d", orderCount)
	}
	var itemCount int64
	if err := db.Model(&models.OrderItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if itemCount != 1 {
		t.Fatalf("expected only the seed item to remain, found %d", itemCount)
	}
}

func TestOrderRepositoryGetByIDAndUser(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)

	order := newTestOrder(1, "GM20260101000000000002", constants.OrderStatusCompleted)
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	found, err := repo.GetByIDAndUser(order.ID, 1)
	if err != nil {
		t.Fatalf("get by id and user failed: %v", err)
	}
	if found == nil {
		t.Fatalf("expected order for owner")
	}

	foreign, err := repo.GetByIDAndUser(order.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error for foreign user: %v", err)
	}
	if foreign != nil {
		t.Fatalf("expected nil for foreign user, got: %+v", foreign)
	}
}

func TestOrderRepositoryListByUserNewestFirst(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	older := newTestOrder(1, "GM-older", constants.OrderStatusCompleted)
	if err := repo.Create(older, nil); err != nil {
		t.Fatalf("create older order failed: %v", err)
	}
	newer := newTestOrder(1, "GM-newer", constants.OrderStatusCompleted)
	if err := repo.Create(newer, nil); err != nil {
		t.Fatalf("create newer order failed: %v", err)
	}
	other := newTestOrder(2, "GM-other", constants.OrderStatusCompleted)
	if err := repo.Create(other, nil); err != nil {
		t.Fatalf("create other user order failed: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate order failed: %v", err)
	}

	orders, total, err := repo.ListByUser(OrderListFilter{UserID: 1, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders for user 1, got total=%d len=%d", total, len(orders))
	}
	if orders[0].OrderNo != "GM-newer" {
		t.Fatalf("expected newest order first, got %s", orders[0].OrderNo)
	}
}

func TestOrderRepositoryListAdminFilters(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	completed := newTestOrder(1, "GM-completed", constants.OrderStatusCompleted)
	if err := repo.Create(completed, nil); err != nil {
		t.Fatalf("create completed order failed: %v", err)
	}
	failed := newTestOrder(2, "GM-failed", constants.OrderStatusFailed)
	if err := repo.Create(failed, nil); err != nil {
		t.Fatalf("create failed order failed: %v", err)
	}
	old := newTestOrder(3, "GM-old", constants.OrderStatusCompleted)
	if err := repo.Create(old, nil); err != nil {
		t.Fatalf("create old order failed: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", old.ID).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error; err != nil {
		t.Fatalf("backdate order failed: %v", err)
	}

	orders, total, err := repo.ListAdmin(OrderListFilter{Status: constants.OrderStatusFailed, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list admin by status failed: %v", err)
	}
	if total != 1 || orders[0].OrderNo != "GM-failed" {
		t.Fatalf("unexpected status filter result: total=%d orders=%+v", total, orders)
	}

	from := time.Now().Add(-time.Hour)
	orders, total, err = repo.ListAdmin(OrderListFilter{CreatedFrom: &from, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list admin by created_from failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 recent orders, got %d", total)
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{Email: "user_2@example.com", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list admin by email failed: %v", err)
	}
	if total != 1 || orders[0].UserID != 2 {
		t.Fatalf("unexpected email filter result: total=%d orders=%+v", total, orders)
	}
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)

	order := newTestOrder(1, "GM-status", constants.OrderStatusPending)
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := repo.UpdateStatus(order.ID, constants.OrderStatusCompleted); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	loaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if loaded.Status != constants.OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", loaded.Status)
	}
}
