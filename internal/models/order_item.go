package models

// OrderItem 订单项快照
type OrderItem struct {
	ID        uint   `gorm:"primarykey" json:"-"`                                 // 主键
	OrderID   string `gorm:"type:varchar(36);index;not null" json:"-"`            // 订单ID
	Position  int    `gorm:"not null;default:0" json:"-"`                         // 行顺序
	ProductID string `gorm:"type:varchar(36);index;not null" json:"product_id"`   // 商品ID
	Name      string `gorm:"type:varchar(200);not null" json:"name"`              // 商品名称快照
	Price     string `gorm:"type:varchar(32);not null" json:"price"`              // 单价快照
	Quantity  int    `gorm:"not null" json:"quantity"`                            // 数量
	ImageURL  string `gorm:"type:varchar(500)" json:"image_url,omitempty"`        // 图片快照
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
