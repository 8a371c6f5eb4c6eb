package models

import "time"

// OrderItem 订单项表（结账时的价格快照，不随目录变动）
type OrderItem struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                           // 主键
	OrderID         uint      `gorm:"index;not null" json:"order_id"`                                 // 订单ID
	ItemID          uint      `gorm:"index;not null" json:"item_id"`                                  // 目录项ID
	ItemKind        string    `gorm:"type:varchar(20);not null" json:"kind"`                          // 目录项类型
	ItemName        string    `gorm:"type:varchar(200)" json:"item_name"`                             // 名称快照
	Quantity        int       `gorm:"not null" json:"quantity"`                                       // 数量
	PriceAtPurchase Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_at_purchase"` // 下单单价快照
	TotalPrice      Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`       // 小计
	Position        int       `gorm:"not null;default:0" json:"position"`                             // 行序
	CreatedAt       time.Time `json:"created_at"`                                                     // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
