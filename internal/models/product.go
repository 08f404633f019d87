package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（礼品卡面额条目）
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name            string         `gorm:"not null;index" json:"name"`                                // 商品名称
	Brand           string         `gorm:"index" json:"brand"`                                        // 品牌
	Category        string         `gorm:"index" json:"category"`                                     // 分类
	Region          string         `gorm:"index" json:"region"`                                       // 适用区域
	Currency        string         `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`   // 币种
	PriceAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 价格金额
	DiscountPercent int            `gorm:"not null;default:0" json:"discount_percent"`                // 折扣百分比（0-100）
	Stock           int            `gorm:"not null;default:0" json:"stock"`                           // 库存（仅由预留流程与管理端修改，不会为负）
	Description     string         `gorm:"type:text" json:"description"`                              // 商品描述
	ImageURL        string         `json:"image_url"`                                                 // 商品图片
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
