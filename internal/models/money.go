package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// moneyScale 金额统一保留的小数位数
const moneyScale = 2

// Money 商品与订单金额类型，所有入口统一量化到 moneyScale 位小数。
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 量化 decimal 为金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(moneyScale)}
}

// MarshalJSON 序列化为定长小数字符串，避免前端浮点误差
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.StringFixed(moneyScale))
}

// UnmarshalJSON 同时接受字符串与数字两种金额表示
func (m *Money) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		*m = NewMoneyFromDecimal(parsed)
		return nil
	}
	parsed, err := decimal.NewFromString(string(raw))
	if err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(parsed)
	return nil
}

// Value 数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(moneyScale).Value()
}

// Scan 数据库读取后量化
func (m *Money) Scan(value interface{}) error {
	var parsed decimal.Decimal
	if err := parsed.Scan(value); err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(parsed)
	return nil
}

// String 定长小数表示
func (m Money) String() string {
	return m.StringFixed(moneyScale)
}
