package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/giftmart/internal/http/response"
	"github.com/giftmart/internal/repository"
	"github.com/giftmart/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
		Email:    strings.TrimSpace(c.Query("email")),
	}
	if userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil && userID > 0 {
		filter.UserID = uint(userID)
	}
	if from := parseQueryTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseQueryTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}

	orders, total, err := h.OrderService.ListAdminOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(filter.Page, filter.PageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetOrder(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	response.Success(c, order)
}

// UpdateOrderStatusRequest 订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus 管理端重标注订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.OrderService.UpdateOrderStatus(uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderState):
			respondError(c, response.CodeBadRequest, "invalid order status", nil)
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		default:
			respondError(c, response.CodeInternal, "order update failed", err)
		}
		return
	}

	response.Success(c, gin.H{"updated": true})
}

func parseQueryTime(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed
		}
	}
	return nil
}
