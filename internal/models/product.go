package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
// 价格相关字段保持原始字符串，解析失败由定价模块降级处理
type Product struct {
	ID                   string         `gorm:"primaryKey;type:varchar(36)" json:"id"`                         // 主键（UUID）
	Name                 string         `gorm:"type:varchar(200);not null" json:"name"`                        // 商品名称
	Category             string         `gorm:"type:varchar(120);index" json:"category"`                       // 分类名称
	BasePrice            string         `gorm:"type:varchar(32);not null;default:'0'" json:"base_price"`       // 基础价格（未含税）
	Currency             string         `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`        // 币种
	TaxRate              string         `gorm:"type:varchar(16)" json:"tax_rate,omitempty"`                    // 税率（百分比）
	DiscountRate         string         `gorm:"type:varchar(16)" json:"discount_rate,omitempty"`               // 折扣率（百分比）
	Idea                 string         `gorm:"type:text" json:"idea"`                                         // 商品创意/卖点
	GeneratedDescription string         `gorm:"type:text" json:"generated_description"`                        // 生成的商品描述
	Images               StringArray    `gorm:"type:json" json:"images"`                                       // 图片地址
	VideoURL             string         `gorm:"type:varchar(500)" json:"video_url,omitempty"`                  // 视频地址
	Status               string         `gorm:"type:varchar(20);not null;default:'inactive';index" json:"status"` // 状态
	Stock                *int           `json:"stock,omitempty"`                                               // 库存（仅记录，不做扣减）
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt            time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
