package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/giftmart/internal/constants"
	"github.com/giftmart/internal/logger"
	"github.com/giftmart/internal/models"
	"github.com/giftmart/internal/queue"
	"github.com/giftmart/internal/repository"

	"github.com/shopspring/decimal"
)

// CallerContext 下单调用方上下文（显式传入，不依赖全局状态）
type CallerContext struct {
	UserID  uint
	Email   string
	Blocked bool
}

// OrderService 订单服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	stockService   *StockService
	paymentService *PaymentService
	queueClient    *queue.Client
	currency       string
	adminListLimit int
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, stockService *StockService, paymentService *PaymentService, queueClient *queue.Client, currency string, adminListLimit int) *OrderService {
	if strings.TrimSpace(currency) == "" {
		currency = constants.SiteCurrencyDefault
	}
	if adminListLimit <= 0 {
		adminListLimit = constants.AdminOrderListLimit
	}
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		stockService:   stockService,
		paymentService: paymentService,
		queueClient:    queueClient,
		currency:       currency,
		adminListLimit: adminListLimit,
	}
}

// PlaceOrderItemInput 下单商品行输入
type PlaceOrderItemInput struct {
	ProductID uint
	Quantity  int
}

// ShippingAddressInput 收货地址输入
type ShippingAddressInput struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Country    string
}

// PaymentInput 支付确认输入（仅保留展示所需的品牌与后四位）
type PaymentInput struct {
	ClientSecret    string
	PaymentMethodID string
	CardBrand       string
	CardLast4       string
}

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	Items         []PlaceOrderItemInput
	Shipping      ShippingAddressInput
	PaymentMethod string
	Payment       *PaymentInput
}

// orderLine 校验通过的下单行
type orderLine struct {
	Product  models.Product
	Quantity int
}

// PlaceOrder 下单主流程：校验调用方 → 预留库存 → 确认支付 → 生成卡密并落单 → 入队通知。
// 支付失败会回补本次预留的库存；通知失败只记录日志，不影响订单结果。
func (s *OrderService) PlaceOrder(ctx context.Context, caller CallerContext, input PlaceOrderInput) (*models.Order, error) {
	if caller.UserID == 0 {
		return nil, ErrUnauthorized
	}
	if caller.Blocked {
		return nil, ErrUserBlocked
	}

	lines, err := s.resolveOrderLines(input.Items)
	if err != nil {
		return nil, err
	}

	stockLines := make([]StockLine, 0, len(lines))
	for _, line := range lines {
		stockLines = append(stockLines, StockLine{ProductID: line.Product.ID, Quantity: line.Quantity})
	}
	if err := s.stockService.Reserve(stockLines); err != nil {
		return nil, err
	}

	if err := s.confirmPayment(ctx, input); err != nil {
		s.stockService.Release(stockLines)
		return nil, err
	}

	items, total := expandOrderItems(lines)
	order := &models.Order{
		OrderNo:            generateOrderNo(),
		UserID:             caller.UserID,
		Email:              caller.Email,
		Status:             constants.OrderStatusCompleted,
		Currency:           s.currency,
		TotalAmount:        models.NewMoneyFromDecimal(total),
		ShippingName:       strings.TrimSpace(input.Shipping.Name),
		ShippingLine1:      strings.TrimSpace(input.Shipping.Line1),
		ShippingLine2:      strings.TrimSpace(input.Shipping.Line2),
		ShippingCity:       strings.TrimSpace(input.Shipping.City),
		ShippingPostalCode: strings.TrimSpace(input.Shipping.PostalCode),
		ShippingCountry:    strings.TrimSpace(input.Shipping.Country),
		PaymentMethod:      strings.TrimSpace(input.PaymentMethod),
	}
	if input.Payment != nil {
		order.CardBrand = strings.TrimSpace(input.Payment.CardBrand)
		order.CardLast4 = strings.TrimSpace(input.Payment.CardLast4)
	}

	if err := s.orderRepo.Create(order, items); err != nil {
		logger.Errorw("order_create_failed",
			"user_id", caller.UserID,
			"order_no", order.OrderNo,
			"error", err,
		)
		// 此路径支付可能已捕获，回补的库存在人工对账前可能被再次售出
		s.stockService.Release(stockLines)
		return nil, ErrOrderCreateFailed
	}
	order.Items = items

	s.enqueueConfirmation(order)

	logger.Infow("order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", caller.UserID,
		"item_count", len(items),
		"total_amount", order.TotalAmount.String(),
	)
	return order, nil
}

// resolveOrderLines 校验下单行：未知或下架的商品直接丢弃并告警，全部无效则拒单。
func (s *OrderService) resolveOrderLines(items []PlaceOrderItemInput) ([]orderLine, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			continue
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, ErrOrderCreateFailed
	}
	productByID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	lines := make([]orderLine, 0, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			logger.Warnw("order_line_dropped_invalid",
				"product_id", item.ProductID,
				"quantity", item.Quantity,
			)
			continue
		}
		product, ok := productByID[item.ProductID]
		if !ok || !product.IsActive {
			logger.Warnw("order_line_dropped_unknown_sku",
				"product_id", item.ProductID,
				"quantity", item.Quantity,
			)
			continue
		}
		lines = append(lines, orderLine{Product: product, Quantity: item.Quantity})
	}
	if len(lines) == 0 {
		return nil, ErrNoValidItems
	}
	return lines, nil
}

// confirmPayment 按需确认支付；失败时向调用方返回带原因的支付错误。
func (s *OrderService) confirmPayment(ctx context.Context, input PlaceOrderInput) error {
	if s.paymentService == nil || !s.paymentService.Enabled() {
		return nil
	}
	if input.Payment == nil {
		return nil
	}
	if err := s.paymentService.Confirm(ctx, input.Payment.ClientSecret, input.Payment.PaymentMethodID); err != nil {
		logger.Warnw("order_payment_confirm_failed", "error", err)
		return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	return nil
}

// expandOrderItems 将数量展开为逐张订单项，每张分配独立卡密；
// 同单内卡密碰撞时重新生成。
func expandOrderItems(lines []orderLine) ([]models.OrderItem, decimal.Decimal) {
	items := make([]models.OrderItem, 0, len(lines))
	total := decimal.Zero
	usedKeys := make(map[string]struct{})

	for _, line := range lines {
		unitPrice := effectiveUnitPrice(line.Product)
		for i := 0; i < line.Quantity; i++ {
			key := generateGiftCardKey()
			for {
				if _, exists := usedKeys[key]; !exists {
					break
				}
				key = generateGiftCardKey()
			}
			usedKeys[key] = struct{}{}

			items = append(items, models.OrderItem{
				ProductID:   line.Product.ID,
				Name:        line.Product.Name,
				Brand:       line.Product.Brand,
				Category:    line.Product.Category,
				Region:      line.Product.Region,
				Currency:    line.Product.Currency,
				UnitPrice:   models.NewMoneyFromDecimal(unitPrice),
				Quantity:    1,
				GiftCardKey: key,
			})
			total = total.Add(unitPrice)
		}
	}
	return items, total
}

// effectiveUnitPrice 计算折后单价
func effectiveUnitPrice(product models.Product) decimal.Decimal {
	price := product.PriceAmount.Decimal
	if product.DiscountPercent > 0 && product.DiscountPercent <= 100 {
		factor := decimal.NewFromInt(int64(100 - product.DiscountPercent)).
			Div(decimal.NewFromInt(100))
		price = price.Mul(factor)
	}
	return price.Round(2)
}

// enqueueConfirmation 尽力入队确认邮件任务，失败不影响订单。
func (s *OrderService) enqueueConfirmation(order *models.Order) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueOrderConfirmationEmail(queue.OrderConfirmationEmailPayload{
		OrderID: order.ID,
	}); err != nil {
		logger.Warnw("order_confirmation_enqueue_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
}

// GetUserOrder 获取用户自己的订单详情
func (s *OrderService) GetUserOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListUserOrders 用户订单列表（按下单时间倒序）
func (s *OrderService) ListUserOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetOrder 管理端获取订单详情
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdminOrders 管理端订单列表（单页容量有上限）
func (s *OrderService) ListAdminOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	if filter.PageSize > s.adminListLimit {
		filter.PageSize = s.adminListLimit
	}
	return s.orderRepo.ListAdmin(filter)
}

// UpdateOrderStatus 管理端重标注订单状态（直接覆盖，不校验状态流转）
func (s *OrderService) UpdateOrderStatus(orderID uint, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case constants.OrderStatusPending, constants.OrderStatusCompleted, constants.OrderStatusFailed:
	default:
		return ErrInvalidOrderState
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return err
	}
	logger.Infow("order_status_updated",
		"order_id", orderID,
		"from", order.Status,
		"to", status,
	)
	return nil
}

// normalizePage 统一分页参数
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return page, pageSize
}

// generateOrderNo 生成订单编号（前缀 + 时间戳 + 随机数字）
func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%s", constants.OrderNoPrefix, now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
