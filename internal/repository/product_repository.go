package repository

import (
	"errors"
	"strings"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	UpdateStatus(id string, status string) (int64, error)
	Delete(id string) (int64, error)
	ListCategories() ([]string, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表，按创建时间倒序返回全部匹配记录
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, error) {
	products := make([]models.Product, 0)

	query := r.db.Model(&models.Product{})
	if filter.OnlyPublic {
		query = query.Where("status = ?", constants.ProductStatusActive)
	} else if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 整体更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// UpdateStatus 更新商品状态，返回影响行数
func (r *GormProductRepository) UpdateStatus(id string, status string) (int64, error) {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Update("status", status)
	return result.RowsAffected, result.Error
}

// Delete 删除商品（软删除），返回影响行数
func (r *GormProductRepository) Delete(id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&models.Product{})
	return result.RowsAffected, result.Error
}

// ListCategories 返回去重后的非空分类
func (r *GormProductRepository) ListCategories() ([]string, error) {
	categories := make([]string, 0)
	err := r.db.Model(&models.Product{}).
		Where("category <> ?", "").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
