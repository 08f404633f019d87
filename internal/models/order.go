package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID          uint   `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo     string `gorm:"index;not null" json:"order_no"`                            // 订单编号（展示用，不作为业务键）
	UserID      uint   `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Email       string `gorm:"index;not null" json:"email"`                               // 下单邮箱快照
	Status      string `gorm:"index;not null" json:"status"`                              // 订单状态
	Currency    string `gorm:"not null" json:"currency"`                                  // 币种
	TotalAmount Money  `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 实付金额

	// 收货地址快照
	ShippingName       string `gorm:"type:varchar(200)" json:"shipping_name"`        // 收件人姓名
	ShippingLine1      string `gorm:"type:varchar(200)" json:"shipping_line1"`       // 地址第一行
	ShippingLine2      string `gorm:"type:varchar(200)" json:"shipping_line2"`       // 地址第二行
	ShippingCity       string `gorm:"type:varchar(100)" json:"shipping_city"`        // 城市
	ShippingPostalCode string `gorm:"type:varchar(40)" json:"shipping_postal_code"`  // 邮编
	ShippingCountry    string `gorm:"type:varchar(100)" json:"shipping_country"`     // 国家

	// 支付描述快照（仅保留品牌与后四位）
	PaymentMethod string `gorm:"type:varchar(20)" json:"payment_method"` // 支付方式
	CardBrand     string `gorm:"type:varchar(40)" json:"card_brand"`     // 卡品牌
	CardLast4     string `gorm:"type:varchar(4)" json:"card_last4"`      // 卡号后四位

	CreatedAt time.Time      `gorm:"index" json:"created_at"` // 创建时间（下单时间）
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"` // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`          // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
