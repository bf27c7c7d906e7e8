package models

import "time"

// AffiliatePayout 推广员结算记录
type AffiliatePayout struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`                   // 主键（UUID）
	AffiliateID   string    `gorm:"type:varchar(36);index;not null" json:"affiliate_id"`     // 推广员ID
	Amount        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`     // 结算金额
	Method        string    `gorm:"type:varchar(32);not null" json:"method"`                 // 结算方式
	Status        string    `gorm:"type:varchar(20);not null;index" json:"status"`           // 状态
	TransactionID string    `gorm:"type:varchar(120)" json:"transaction_id,omitempty"`       // 外部交易号
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`                        // 备注
	PayoutDate    time.Time `gorm:"index" json:"payout_date"`                                // 结算时间
	UpdatedAt     time.Time `json:"updated_at"`                                              // 更新时间
}

// TableName 指定表名
func (AffiliatePayout) TableName() string {
	return "affiliate_payouts"
}
