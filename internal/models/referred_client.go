package models

import "time"

// ReferredClient 被推荐客户
type ReferredClient struct {
	ID               string     `gorm:"primaryKey;type:varchar(36)" json:"id"`                        // 主键（UUID）
	AffiliateID      string     `gorm:"type:varchar(36);index;not null" json:"affiliate_id"`          // 推广员ID
	ClientName       string     `gorm:"type:varchar(200);not null" json:"client_name"`                // 客户名称
	Status           string     `gorm:"type:varchar(20);not null;index" json:"status"`                // 状态
	AmountGenerated  Money      `gorm:"type:decimal(20,2);not null;default:0" json:"amount_generated"` // 累计贡献营收
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`                                 // 最近活跃时间
	CreatedAt        time.Time  `gorm:"index" json:"registration_date"`                               // 注册时间
	UpdatedAt        time.Time  `json:"updated_at"`                                                   // 更新时间
}

// TableName 指定表名
func (ReferredClient) TableName() string {
	return "referred_clients"
}
