package constants

// 商品类型常量（购物车/订单项引用的目录类型）
const (
	ItemKindProduct = "product"
	ItemKindKit     = "kit"
)

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
)

// 用户角色常量
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 套件咨询状态常量
const (
	KitRequestStatusPending   = "pending"
	KitRequestStatusContacted = "contacted"
	KitRequestStatusClosed    = "closed"
)

// 队列相关常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型
const (
	TaskOrderConfirmationEmail = "order:confirmation_email"
	TaskKitRequestEmail        = "kit_request:lead_email"
)
