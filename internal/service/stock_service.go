package service

import (
	"fmt"

	"github.com/giftmart/internal/logger"
	"github.com/giftmart/internal/repository"

	"gorm.io/gorm"
)

// StockService 库存预留服务
type StockService struct {
	productRepo repository.ProductRepository
}

// NewStockService 创建库存服务
func NewStockService(productRepo repository.ProductRepository) *StockService {
	return &StockService{productRepo: productRepo}
}

// StockLine 单个商品的预留数量
type StockLine struct {
	ProductID uint
	Quantity  int
}

// Reserve 预留库存：单事务内逐行条件扣减，任一行库存不足则整体回滚。
func (s *StockService) Reserve(lines []StockLine) error {
	if s == nil || s.productRepo == nil {
		return ErrOrderCreateFailed
	}
	if len(lines) == 0 {
		return ErrNoValidItems
	}
	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		for _, line := range lines {
			affected, err := repo.DecrementStock(line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				// 条件更新未命中：区分商品不存在和库存不足
				product, getErr := repo.GetByID(line.ProductID)
				if getErr != nil {
					return getErr
				}
				if product == nil {
					return fmt.Errorf("product %d: %w", line.ProductID, ErrProductNotFound)
				}
				return fmt.Errorf("product %d: %w", line.ProductID, ErrInsufficientStock)
			}
		}
		return nil
	})
}

// Release 回补已预留的库存（支付失败等补偿场景），失败只记录日志。
func (s *StockService) Release(lines []StockLine) {
	if s == nil || s.productRepo == nil {
		return
	}
	for _, line := range lines {
		if _, err := s.productRepo.RestoreStock(line.ProductID, line.Quantity); err != nil {
			logger.Errorw("stock_release_failed",
				"product_id", line.ProductID,
				"quantity", line.Quantity,
				"error", err,
			)
		}
	}
}
