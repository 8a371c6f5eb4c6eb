package models

import "time"

// Order 订单表（创建后仅 status 可变）
type Order struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                      // 主键
	UserID          uint      `gorm:"index;not null" json:"user_id"`                             // 用户ID
	TotalAmount     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额
	ShippingAddress string    `gorm:"type:varchar(500);not null" json:"shipping_address"`        // 收货地址
	Status          string    `gorm:"type:varchar(20);index;not null" json:"status"`             // 订单状态
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                                // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
