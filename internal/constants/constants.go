package constants

// 销售/进货付款状态常量
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// 付款类型常量
const (
	PaymentTypeOneTime   = "one_time"
	PaymentTypeRecurring = "recurring"
)

// 订阅状态常量
const (
	SubscriptionStatusNone    = "none"
	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"
)

// 库存变动类型常量
const (
	StockMovementTypePurchase = "purchase"
	StockMovementTypeSale     = "sale"
)

// 平台余额变动类型常量
const (
	CreditMovementTypeAdded     = "credit_added"
	CreditMovementTypeDeduction = "sale_deduction"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务名称常量
const (
	TaskLowStockAlert  = "stock:low_alert"
	TaskLowCreditAlert = "platform:low_credit_alert"
)

// 单号前缀常量
const (
	SaleNoPrefix     = "DS"
	PurchaseNoPrefix = "DP"
)
