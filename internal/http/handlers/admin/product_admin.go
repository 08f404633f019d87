package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/giftmart/internal/http/response"
	"github.com/giftmart/internal/models"
	"github.com/giftmart/internal/repository"
	"github.com/giftmart/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name            string       `json:"name" binding:"required"`
	Brand           string       `json:"brand"`
	Category        string       `json:"category"`
	Region          string       `json:"region"`
	Currency        string       `json:"currency"`
	PriceAmount     models.Money `json:"price_amount"`
	DiscountPercent int          `json:"discount_percent"`
	Stock           int          `json:"stock"`
	Description     string       `json:"description"`
	ImageURL        string       `json:"image_url"`
	IsActive        *bool        `json:"is_active"`
	SortOrder       int          `json:"sort_order"`
}

func (r ProductRequest) toServiceInput() service.ProductInput {
	return service.ProductInput{
		Name:            r.Name,
		Brand:           r.Brand,
		Category:        r.Category,
		Region:          r.Region,
		Currency:        r.Currency,
		PriceAmount:     r.PriceAmount,
		DiscountPercent: r.DiscountPercent,
		Stock:           r.Stock,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		IsActive:        r.IsActive,
		SortOrder:       r.SortOrder,
	}
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:      page,
		PageSize:  pageSize,
		Category:  strings.TrimSpace(c.Query("category")),
		Brand:     strings.TrimSpace(c.Query("brand")),
		Region:    strings.TrimSpace(c.Query("region")),
		Search:    strings.TrimSpace(c.Query("search")),
		PriceSort: strings.TrimSpace(c.Query("price_sort")),
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	product, err := h.ProductService.Get(uint(id), false)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	product, err := h.ProductService.Create(req.toServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductInvalid):
			respondError(c, response.CodeBadRequest, "invalid product data", nil)
		default:
			respondError(c, response.CodeInternal, "product create failed", err)
		}
		return
	}

	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	product, err := h.ProductService.Update(uint(id), req.toServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrProductInvalid):
			respondError(c, response.CodeBadRequest, "invalid product data", nil)
		default:
			respondError(c, response.CodeInternal, "product update failed", err)
		}
		return
	}

	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	if err := h.ProductService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product delete failed", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
