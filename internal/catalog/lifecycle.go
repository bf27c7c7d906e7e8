package catalog

import (
	"time"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/models"
)

// NextStatus 返回手动切换后的商品状态
// active→inactive，inactive→active，out_of_stock→active，未知状态一律回到 active
func NextStatus(current string) string {
	switch current {
	case constants.ProductStatusActive:
		return constants.ProductStatusInactive
	case constants.ProductStatusInactive, constants.ProductStatusOutOfStock:
		return constants.ProductStatusActive
	default:
		return constants.ProductStatusActive
	}
}

// ValidStatus 判断是否为已知商品状态
func ValidStatus(status string) bool {
	switch status {
	case constants.ProductStatusActive, constants.ProductStatusInactive, constants.ProductStatusOutOfStock:
		return true
	}
	return false
}

// IsPublic 只有 active 商品进入前台
func IsPublic(p models.Product) bool {
	return p.Status == constants.ProductStatusActive
}

// Duplicate 复制商品：新 ID、新创建时间、名称追加后缀、状态为 inactive
func Duplicate(src models.Product, newID string, now time.Time) models.Product {
	dup := src
	dup.ID = newID
	dup.Name = src.Name + constants.ProductCopySuffix
	dup.Status = constants.ProductStatusInactive
	dup.CreatedAt = now
	dup.UpdatedAt = now
	if src.Images != nil {
		dup.Images = append(models.StringArray{}, src.Images...)
	}
	if src.Stock != nil {
		stock := *src.Stock
		dup.Stock = &stock
	}
	return dup
}
