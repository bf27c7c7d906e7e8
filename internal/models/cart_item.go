package models

import "time"

// CartItem 购物车项（按会话 key 归属）
// Price 为加入购物车时的成交价快照，之后不再重算
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"-"`                                                               // 主键
	OwnerKey  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_owner_product" json:"-"`             // 购物车归属 key
	ProductID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_owner_product;index" json:"product_id"` // 商品ID（不做外键约束）
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`                                            // 商品名称快照
	Price     string    `gorm:"type:varchar(32);not null" json:"price"`                                            // 价格快照（2 位小数）
	Quantity  int       `gorm:"not null" json:"quantity"`                                                          // 数量
	ImageURL  string    `gorm:"type:varchar(500)" json:"image_url,omitempty"`                                      // 图片快照
	Position  int       `gorm:"not null;default:0" json:"-"`                                                       // 行顺序
	CreatedAt time.Time `json:"created_at"`                                                                        // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                                        // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
