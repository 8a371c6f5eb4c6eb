package service

import "errors"

// 目录查询
var (
	ErrInvalidItemKind     = errors.New("invalid item kind")
	ErrCatalogItemNotFound = errors.New("catalog item not found")
	ErrCatalogPriceInvalid = errors.New("catalog price must be zero or greater")
	ErrCatalogNameRequired = errors.New("catalog name required")
)

// 购物车与结账
var (
	ErrInvalidCartQuantity     = errors.New("cart quantity must be a positive integer")
	ErrCartItemNotFound        = errors.New("cart item not found")
	ErrCartItemAmbiguous       = errors.New("cart item id matches more than one kind")
	ErrEmptyCart               = errors.New("cart is empty or not found")
	ErrShippingAddressRequired = errors.New("shipping address required")
	ErrShippingAddressTooLong  = errors.New("shipping address too long")
	ErrCartConflict            = errors.New("cart modified concurrently")
)

// 订单
var (
	ErrOrderNotFound = errors.New("no orders found")
)

// 用户与认证
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrUsernameRequired   = errors.New("username required")
	ErrUsernameInvalid    = errors.New("username invalid")
	ErrWeakPassword       = errors.New("weak password")
)

// 套件咨询
var (
	ErrKitRequestNameRequired  = errors.New("kit request name and email required")
	ErrKitRequestKitRequired   = errors.New("kit request kit name required")
	ErrKitRequestNotFound      = errors.New("no kit requests found")
	ErrKitRequestStatusInvalid = errors.New("kit request status invalid")
	ErrKitRequestFieldTooLong  = errors.New("kit request field too long")
)

// 邮件
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
