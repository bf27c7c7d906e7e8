package repository

import (
	"errors"
	"strings"

	"github.com/vitrina-next/internal/models"

	"gorm.io/gorm"
)

// AdminRepository 后台账号数据访问接口
type AdminRepository interface {
	GetByEmail(email string) (*models.AdminAccount, error)
	GetByID(id uint) (*models.AdminAccount, error)
	List() ([]models.AdminAccount, error)
	Count() (int64, error)
	CountByEmail(email string, excludeID *uint) (int64, error)
	Create(admin *models.AdminAccount) error
	Update(admin *models.AdminAccount) error
	Delete(id uint) error
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建后台账号仓库
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// GetByEmail 根据邮箱获取账号（邮箱统一小写存储）
func (r *GormAdminRepository) GetByEmail(email string) (*models.AdminAccount, error) {
	var admin models.AdminAccount
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.Where("email = ?", normalized).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByID 根据 ID 获取账号
func (r *GormAdminRepository) GetByID(id uint) (*models.AdminAccount, error) {
	var admin models.AdminAccount
	if err := r.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// List 获取账号列表
func (r *GormAdminRepository) List() ([]models.AdminAccount, error) {
	admins := make([]models.AdminAccount, 0)
	if err := r.db.Order("id ASC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// Count 统计账号数量
func (r *GormAdminRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.AdminAccount{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByEmail 统计邮箱占用数
func (r *GormAdminRepository) CountByEmail(email string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.AdminAccount{}).Where("email = ?", strings.ToLower(strings.TrimSpace(email)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建账号
func (r *GormAdminRepository) Create(admin *models.AdminAccount) error {
	return r.db.Create(admin).Error
}

// Update 更新账号
func (r *GormAdminRepository) Update(admin *models.AdminAccount) error {
	return r.db.Save(admin).Error
}

// Delete 删除账号（软删除）
func (r *GormAdminRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.AdminAccount{}, id).Error
}
