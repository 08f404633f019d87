package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/giftmart/internal/http/response"
	"github.com/giftmart/internal/repository"
	"github.com/giftmart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取礼品卡商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   strings.TrimSpace(c.Query("category")),
		Brand:      strings.TrimSpace(c.Query("brand")),
		Region:     strings.TrimSpace(c.Query("region")),
		Search:     strings.TrimSpace(c.Query("search")),
		PriceSort:  strings.TrimSpace(c.Query("price_sort")),
		OnlyActive: true,
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 获取礼品卡商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	product, err := h.ProductService.Get(uint(id), true)
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
