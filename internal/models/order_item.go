package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（每个订单项对应一张礼品卡，数量恒为 1）
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                          // 订单ID
	ProductID   uint           `gorm:"index;not null" json:"product_id"`                        // 商品ID
	Name        string         `gorm:"not null" json:"name"`                                    // 商品名称快照
	Brand       string         `json:"brand"`                                                   // 品牌快照
	Category    string         `json:"category"`                                                // 分类快照
	Region      string         `json:"region"`                                                  // 区域快照
	Currency    string         `gorm:"type:varchar(10);not null" json:"currency"`               // 币种快照
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 单价快照
	Quantity    int            `gorm:"not null;default:1" json:"quantity"`                      // 数量（恒为 1）
	GiftCardKey string         `gorm:"type:varchar(40);not null" json:"gift_card_key"`          // 礼品卡卡密
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
