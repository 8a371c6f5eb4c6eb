package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                   // 主键
	Username     string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"` // 用户名
	Name         string         `gorm:"type:varchar(100);default:''" json:"name"`               // 名
	LastName     string         `gorm:"type:varchar(100);default:''" json:"last_name"`          // 姓
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`                      // 邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                                      // 密码哈希（不返回给前端）
	Role         string         `gorm:"type:varchar(20);default:'user';index" json:"role"`      // 角色 user/moderator/admin
	Phone        string         `gorm:"type:varchar(50);default:''" json:"phone"`               // 电话
	Address      string         `gorm:"type:varchar(500);default:''" json:"address"`            // 默认地址
	Locale       string         `gorm:"type:varchar(20);default:'en'" json:"locale"`            // 语言偏好
	Status       string         `gorm:"default:'active'" json:"status"`                         // 账号状态
	TokenVersion uint64         `gorm:"not null;default:0" json:"-"`                            // Token 版本（用于全量失效）
	LastLoginAt  *time.Time     `json:"last_login_at"`                                          // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// DisplayName 返回用于称呼用户的名字
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
