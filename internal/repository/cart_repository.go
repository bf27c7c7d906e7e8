package repository

import (
	"github.com/vitrina-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByOwner(ownerKey string) ([]models.CartItem, error)
	Replace(ownerKey string, items []models.CartItem) error
	ClearByOwner(ownerKey string) error
	DeleteByProduct(productID string) (int64, error)
	SyncProductSnapshot(productID, name, imageURL string) (int64, error)
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByOwner 按行顺序获取购物车项
func (r *GormCartRepository) ListByOwner(ownerKey string) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.db.Where("owner_key = ?", ownerKey).Order("position ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Replace 用给定列表整体覆盖购物车，行顺序以切片顺序为准
func (r *GormCartRepository) Replace(ownerKey string, items []models.CartItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_key = ?", ownerKey).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		rows := make([]models.CartItem, 0, len(items))
		for idx, item := range items {
			item.ID = 0
			item.OwnerKey = ownerKey
			item.Position = idx
			rows = append(rows, item)
		}
		return tx.Create(&rows).Error
	})
}

// ClearByOwner 清空购物车
func (r *GormCartRepository) ClearByOwner(ownerKey string) error {
	return r.db.Where("owner_key = ?", ownerKey).Delete(&models.CartItem{}).Error
}

// DeleteByProduct 从所有购物车中移除指定商品
func (r *GormCartRepository) DeleteByProduct(productID string) (int64, error) {
	result := r.db.Where("product_id = ?", productID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// SyncProductSnapshot 同步所有购物车中该商品的名称与图片快照，价格保持不变
func (r *GormCartRepository) SyncProductSnapshot(productID, name, imageURL string) (int64, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"name":      name,
			"image_url": imageURL,
		})
	return result.RowsAffected, result.Error
}
