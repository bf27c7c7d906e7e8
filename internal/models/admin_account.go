package models

import (
	"time"

	"gorm.io/gorm"
)

// AdminAccount 后台账号表
type AdminAccount struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Name         string         `gorm:"type:varchar(120)" json:"name"`                                 // 名称
	Email        string         `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`           // 登录邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                                             // 密码哈希（不返回给前端）
	Role         string         `gorm:"type:varchar(20);not null;default:'sme';index" json:"role"`     // 角色（sme/superadmin）
	Status       string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"` // 状态
	TokenVersion uint64         `gorm:"not null;default:0" json:"-"`                                   // Token 版本（用于全量失效）
	LastLoginAt  *time.Time     `json:"last_login_at"`                                                 // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (AdminAccount) TableName() string {
	return "admin_accounts"
}
