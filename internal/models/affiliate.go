package models

import (
	"time"

	"gorm.io/gorm"
)

// AffiliatePaymentDetails 推广员收款信息
type AffiliatePaymentDetails struct {
	PaypalEmail    string `gorm:"type:varchar(200)" json:"paypal_email,omitempty"`   // PayPal 邮箱
	BankInfo       string `gorm:"type:text" json:"bank_info,omitempty"`              // 银行账户信息
	NequiDaviplata string `gorm:"type:varchar(40)" json:"nequi_daviplata,omitempty"` // Nequi/Daviplata 手机号
}

// Affiliate 推广员表
type Affiliate struct {
	ID                    string                  `gorm:"primaryKey;type:varchar(36)" json:"id"`                                // 主键（UUID）
	Name                  string                  `gorm:"type:varchar(120);not null" json:"name"`                               // 名称
	Email                 string                  `gorm:"type:varchar(200);index" json:"email"`                                 // 邮箱
	ReferralCode          string                  `gorm:"type:varchar(32);uniqueIndex;not null" json:"referral_code"`           // 推广码
	ReferralLink          string                  `gorm:"type:varchar(500)" json:"referral_link"`                               // 推广链接
	Status                string                  `gorm:"type:varchar(20);not null;default:'inactive';index" json:"status"`     // 状态
	TotalActiveReferrals  int                     `gorm:"not null;default:0" json:"total_active_referrals"`                     // 活跃被推荐客户数
	CommissionAccumulated Money                   `gorm:"type:decimal(20,2);not null;default:0" json:"commission_accumulated"` // 累计待结算佣金
	PaymentDetails        AffiliatePaymentDetails `gorm:"embedded;embeddedPrefix:payment_" json:"payment_details"`              // 收款信息
	CreatedAt             time.Time               `gorm:"index" json:"registration_date"`                                       // 注册时间
	UpdatedAt             time.Time               `json:"updated_at"`                                                           // 更新时间
	DeletedAt             gorm.DeletedAt          `gorm:"index" json:"-"`                                                       // 软删除时间
}

// TableName 指定表名
func (Affiliate) TableName() string {
	return "affiliates"
}
