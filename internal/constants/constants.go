package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
)

// 用户状态常量
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// 队列与任务常量
const (
	QueueDefault               = "default"
	TaskOrderConfirmationEmail = "order:confirmation_email"
)

// 默认配置常量
const (
	SiteCurrencyDefault   = "USD"
	AdminOrderListLimit   = 100
	DefaultPageSize       = 20
	MaxPageSize           = 100
	OrderNoPrefix         = "GM"
	InvoiceFilenamePrefix = "invoice"
)

// 支付描述常量（仅保留卡品牌与后四位，不接触原始卡数据）
const (
	PaymentMethodCard = "card"
)
