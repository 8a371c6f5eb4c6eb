package models

import "time"

// KitRequest 套件咨询线索（访客提交，管理端跟进）
type KitRequest struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                            // 主键
	KitName   string    `gorm:"type:varchar(200);not null" json:"kit_name"`                      // 咨询的套件名称
	KitID     *uint     `gorm:"index" json:"kit_id,omitempty"`                                   // 关联套件ID（可选）
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`                          // 联系人
	Email     string    `gorm:"type:varchar(255);not null;index" json:"email"`                   // 联系邮箱
	Message   string    `gorm:"type:text" json:"message"`                                        // 留言
	Locale    string    `gorm:"type:varchar(20);default:'en'" json:"locale"`                     // 回执语言
	Status    string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // 跟进状态 pending/contacted/closed
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                         // 提交时间
	UpdatedAt time.Time `json:"updated_at"`                                                      // 更新时间
}

// TableName 指定表名
func (KitRequest) TableName() string {
	return "kit_requests"
}
