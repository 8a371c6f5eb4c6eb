package models

import "time"

// CartItem 购物车项
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                                  // 主键
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_item_ref" json:"cart_id"`                                 // 购物车ID
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_cart_item_ref" json:"item_id"`                                 // 目录项ID
	ItemKind  string    `gorm:"type:varchar(20);not null;default:'product';uniqueIndex:idx_cart_item_ref" json:"kind"` // 目录项类型 product/kit
	Quantity  int       `gorm:"not null" json:"quantity"`                                                              // 数量
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                               // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                                            // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
