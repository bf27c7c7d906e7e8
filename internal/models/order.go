package models

import "time"

// Order 订单表
// 除 Status 外创建后不再修改
type Order struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`                     // 主键（UUID）
	Status        string    `gorm:"type:varchar(20);index;not null" json:"status"`             // 订单状态
	TotalAmount   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额（由调用方计算）
	Currency      string    `gorm:"type:varchar(8)" json:"currency,omitempty"`                 // 展示币种
	CustomerNotes string    `gorm:"type:text" json:"customer_notes,omitempty"`                 // 客户备注
	ClientIP      string    `gorm:"type:varchar(64)" json:"client_ip,omitempty"`               // 下单客户端IP
	CreatedAt     time.Time `gorm:"index" json:"order_date"`                                   // 下单时间
	UpdatedAt     time.Time `json:"updated_at"`                                                // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"` // 购物车快照
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
