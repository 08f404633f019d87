package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/giftmart/internal/constants"
	"github.com/giftmart/internal/models"

	"github.com/shopspring/decimal"
)

func testInvoiceOrder() *models.Order {
	return &models.Order{
		ID:              1,
		OrderNo:         "GM20260101000000123456",
		UserID:          1,
		Email:           "buyer@example.com",
		Status:          constants.OrderStatusCompleted,
		Currency:        "USD",
		TotalAmount:     models.NewMoneyFromDecimal(decimal.RequireFromString("50.00")),
		ShippingName:    "Jamie Doe",
		ShippingLine1:   "1 Main St",
		ShippingCity:    "Springfield",
		ShippingCountry: "US",
		CreatedAt:       time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{
				ProductID:   1,
				Name:        "Amazon Gift Card $25",
				Region:      "US",
				Currency:    "USD",
				UnitPrice:   models.NewMoneyFromDecimal(decimal.RequireFromString("25.00")),
				Quantity:    1,
				GiftCardKey: "AAAA-BBBB-CCCC-DDDD",
			},
			{
				ProductID:   1,
				Name:        "Amazon Gift Card $25",
				Region:      "US",
				Currency:    "USD",
				UnitPrice:   models.NewMoneyFromDecimal(decimal.RequireFromString("25.00")),
				Quantity:    1,
				GiftCardKey: "EEEE-FFFF-GGGG-HHHH",
			},
		},
	}
}

func TestRenderInvoiceProducesPDF(t *testing.T) {
	order := testInvoiceOrder()
	data, filename, err := RenderInvoice(order)
	if err != nil {
		t.Fatalf("render invoice failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty pdf output")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got: %q", data[:8])
	}
	if filename != "invoice-GM20260101000000123456.pdf" {
		t.Fatalf("unexpected filename: %s", filename)
	}
}

func TestRenderInvoiceNeverContainsGiftCardKeys(t *testing.T) {
	order := testInvoiceOrder()
	data, _, err := RenderInvoice(order)
	if err != nil {
		t.Fatalf("render invoice failed: %v", err)
	}
	for _, item := range order.Items {
		if bytes.Contains(data, []byte(item.GiftCardKey)) {
			t.Fatalf("invoice must not contain gift card key %q", item.GiftCardKey)
		}
	}
}

func TestRenderInvoiceNilOrder(t *testing.T) {
	if _, _, err := RenderInvoice(nil); err == nil {
		t.Fatalf("expected error for nil order")
	}
}

func TestFormatShippingAddress(t *testing.T) {
	order := testInvoiceOrder()
	address := formatShippingAddress(order)
	if address != "Jamie Doe\n1 Main St\nSpringfield, US" {
		t.Fatalf("unexpected address: %q", address)
	}

	empty := formatShippingAddress(&models.Order{})
	if empty != "" {
		t.Fatalf("expected empty address, got %q", empty)
	}
}
