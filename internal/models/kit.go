package models

import (
	"time"

	"gorm.io/gorm"
)

// Kit 套件表（组合商品，默认为数字商品）
type Kit struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`                    // 名称
	Description string         `gorm:"type:text" json:"description"`                              // 描述
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 价格金额
	Image       string         `gorm:"type:varchar(500)" json:"image"`                            // 图片地址
	Features    StringArray    `gorm:"type:text" json:"features"`                                 // 特性列表
	Level       string         `gorm:"type:varchar(50)" json:"level"`                             // 难度等级
	IsDigital   bool           `gorm:"default:true" json:"is_digital"`                            // 是否数字商品
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Kit) TableName() string {
	return "kits"
}
