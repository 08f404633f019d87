package public

import (
	"errors"
	"strconv"

	"github.com/giftmart/internal/http/response"
	"github.com/giftmart/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 下单商品行请求
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// ShippingAddressRequest 账单/收件地址请求
type ShippingAddressRequest struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentRequest 支付确认请求（仅透传品牌与后四位用于展示）
type PaymentRequest struct {
	ClientSecret    string `json:"client_secret"`
	PaymentMethodID string `json:"payment_method_id"`
	CardBrand       string `json:"card_brand"`
	CardLast4       string `json:"card_last4"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Items         []OrderItemRequest     `json:"items" binding:"required"`
	Shipping      ShippingAddressRequest `json:"shipping"`
	PaymentMethod string                 `json:"payment_method"`
	Payment       *PaymentRequest        `json:"payment"`
}

// CreateOrder 用户下单
func (h *Handler) CreateOrder(c *gin.Context) {
	id, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	caller, err := h.UserAuthService.ResolveCallerContext(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			respondError(c, response.CodeUnauthorized, "unauthorized", nil)
			return
		}
		respondError(c, response.CodeInternal, "order create failed", err)
		return
	}

	items := make([]service.PlaceOrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.PlaceOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	input := service.PlaceOrderInput{
		Items: items,
		Shipping: service.ShippingAddressInput{
			Name:       req.Shipping.Name,
			Line1:      req.Shipping.Line1,
			Line2:      req.Shipping.Line2,
			City:       req.Shipping.City,
			PostalCode: req.Shipping.PostalCode,
			Country:    req.Shipping.Country,
		},
		PaymentMethod: req.PaymentMethod,
	}
	if req.Payment != nil {
		input.Payment = &service.PaymentInput{
			ClientSecret:    req.Payment.ClientSecret,
			PaymentMethodID: req.Payment.PaymentMethodID,
			CardBrand:       req.Payment.CardBrand,
			CardLast4:       req.Payment.CardLast4,
		}
	}

	order, err := h.OrderService.PlaceOrder(c.Request.Context(), caller, input)
	if err != nil {
		respondPlaceOrderError(c, err)
		return
	}

	response.Success(c, order)
}

// ListOrders 获取当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	id, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListUserOrders(id, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 获取当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetUserOrder(uint(orderID), id)
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
