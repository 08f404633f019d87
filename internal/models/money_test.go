package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMarshalFixedScale(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("19.9"))
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal money failed: %v", err)
	}
	if string(data) != `"19.90"` {
		t.Fatalf("expected fixed two-decimal string, got %s", data)
	}
	if m.String() != "19.90" {
		t.Fatalf("expected 19.90, got %s", m.String())
	}
}

func TestMoneyUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var fromString Money
	if err := json.Unmarshal([]byte(`"12.5"`), &fromString); err != nil {
		t.Fatalf("unmarshal string amount failed: %v", err)
	}
	if fromString.String() != "12.50" {
		t.Fatalf("expected 12.50, got %s", fromString.String())
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte(`12.5`), &fromNumber); err != nil {
		t.Fatalf("unmarshal numeric amount failed: %v", err)
	}
	if !fromNumber.Decimal.Equal(fromString.Decimal) {
		t.Fatalf("string and numeric forms should agree, got %s vs %s", fromNumber, fromString)
	}

	var invalid Money
	if err := json.Unmarshal([]byte(`"not-a-number"`), &invalid); err == nil {
		t.Fatalf("expected error for invalid amount")
	}
}

func TestMoneyQuantizesOnConstruction(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("9.999"))
	if m.String() != "10.00" {
		t.Fatalf("expected rounded 10.00, got %s", m.String())
	}
}
