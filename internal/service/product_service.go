package service

import (
	"strings"

	"github.com/giftmart/internal/constants"
	"github.com/giftmart/internal/models"
	"github.com/giftmart/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Name            string
	Brand           string
	Category        string
	Region          string
	Currency        string
	PriceAmount     models.Money
	DiscountPercent int
	Stock           int
	Description     string
	ImageURL        string
	IsActive        *bool
	SortOrder       int
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	return s.productRepo.List(filter)
}

// Get 商品详情
func (s *ProductService) Get(id uint, onlyActive bool) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if onlyActive && !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:            strings.TrimSpace(input.Name),
		Brand:           strings.TrimSpace(input.Brand),
		Category:        strings.TrimSpace(input.Category),
		Region:          strings.TrimSpace(input.Region),
		Currency:        resolveCurrency(input.Currency),
		PriceAmount:     models.NewMoneyFromDecimal(input.PriceAmount.Decimal),
		DiscountPercent: input.DiscountPercent,
		Stock:           input.Stock,
		Description:     input.Description,
		ImageURL:        strings.TrimSpace(input.ImageURL),
		IsActive:        true,
		SortOrder:       input.SortOrder,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, ErrProductCreateFailed
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Brand = strings.TrimSpace(input.Brand)
	product.Category = strings.TrimSpace(input.Category)
	product.Region = strings.TrimSpace(input.Region)
	product.Currency = resolveCurrency(input.Currency)
	product.PriceAmount = models.NewMoneyFromDecimal(input.PriceAmount.Decimal)
	product.DiscountPercent = input.DiscountPercent
	product.Stock = input.Stock
	product.Description = input.Description
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品（软删除）
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrProductInvalid
	}
	if input.PriceAmount.Decimal.LessThan(decimal.Zero) {
		return ErrProductInvalid
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return ErrProductInvalid
	}
	if input.Stock < 0 {
		return ErrProductInvalid
	}
	return nil
}

func resolveCurrency(currency string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(currency))
	if trimmed == "" {
		return constants.SiteCurrencyDefault
	}
	return trimmed
}
