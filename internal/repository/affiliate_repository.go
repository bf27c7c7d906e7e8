package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AffiliateRepository 推广计划数据访问接口（推广员、结算、被推荐客户）
type AffiliateRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) AffiliateRepository

	GetByID(id string) (*models.Affiliate, error)
	GetByIDForUpdate(id string) (*models.Affiliate, error)
	GetByCode(code string) (*models.Affiliate, error)
	CountByCode(code string) (int64, error)
	Create(affiliate *models.Affiliate) error
	Update(affiliate *models.Affiliate) error
	Delete(id string) (int64, error)
	List(filter AffiliateListFilter) ([]models.Affiliate, int64, error)
	UpdateStatus(id string, status string, updatedAt time.Time) (int64, error)
	AddCommission(id string, delta decimal.Decimal) error
	SetCommission(id string, amount decimal.Decimal) error
	SetActiveReferrals(id string, total int) error

	CreatePayout(payout *models.AffiliatePayout) error
	GetPayoutByID(id string) (*models.AffiliatePayout, error)
	UpdatePayout(payout *models.AffiliatePayout) error
	ListPayouts(filter PayoutListFilter) ([]models.AffiliatePayout, int64, error)

	CreateReferredClient(client *models.ReferredClient) error
	GetReferredClientByID(id string) (*models.ReferredClient, error)
	GetReferredClientByIDForUpdate(id string) (*models.ReferredClient, error)
	UpdateReferredClient(client *models.ReferredClient) error
	ListReferredClients(filter ReferredClientListFilter) ([]models.ReferredClient, int64, error)
	CountActiveReferredClients(affiliateID string) (int64, error)
}

// GormAffiliateRepository GORM 推广计划仓储
type GormAffiliateRepository struct {
	db *gorm.DB
}

// NewAffiliateRepository 创建推广计划仓储
func NewAffiliateRepository(db *gorm.DB) *GormAffiliateRepository {
	return &GormAffiliateRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAffiliateRepository) WithTx(tx *gorm.DB) AffiliateRepository {
	if tx == nil {
		return r
	}
	return &GormAffiliateRepository{db: tx}
}

// Transaction 执行事务
func (r *GormAffiliateRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormAffiliateRepository) firstAffiliate(query *gorm.DB) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	if err := query.First(&affiliate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &affiliate, nil
}

// GetByID 按ID获取推广员
func (r *GormAffiliateRepository) GetByID(id string) (*models.Affiliate, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	return r.firstAffiliate(r.db.Where("id = ?", id))
}

// GetByIDForUpdate 按ID获取推广员并加锁
func (r *GormAffiliateRepository) GetByIDForUpdate(id string) (*models.Affiliate, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	return r.firstAffiliate(r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

// GetByCode 按推广码获取推广员
func (r *GormAffiliateRepository) GetByCode(code string) (*models.Affiliate, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, nil
	}
	return r.firstAffiliate(r.db.Where("referral_code = ?", normalized))
}

// CountByCode 统计推广码占用数（包含已软删除记录）
func (r *GormAffiliateRepository) CountByCode(code string) (int64, error) {
	var count int64
	err := r.db.Unscoped().Model(&models.Affiliate{}).
		Where("referral_code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error
	return count, err
}

// Create 创建推广员
func (r *GormAffiliateRepository) Create(affiliate *models.Affiliate) error {
	return r.db.Create(affiliate).Error
}

// Update 整体更新推广员
func (r *GormAffiliateRepository) Update(affiliate *models.Affiliate) error {
	return r.db.Save(affiliate).Error
}

// Delete 删除推广员
func (r *GormAffiliateRepository) Delete(id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&models.Affiliate{})
	return result.RowsAffected, result.Error
}

// List 推广员列表
func (r *GormAffiliateRepository) List(filter AffiliateListFilter) ([]models.Affiliate, int64, error) {
	query := r.db.Model(&models.Affiliate{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = applySearch(query, filter.Search, "name", "email", "referral_code")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]models.Affiliate, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateStatus 更新推广员状态
func (r *GormAffiliateRepository) UpdateStatus(id string, status string, updatedAt time.Time) (int64, error) {
	result := r.db.Model(&models.Affiliate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     strings.TrimSpace(status),
			"updated_at": updatedAt,
		})
	return result.RowsAffected, result.Error
}

// AddCommission 原子累加待结算佣金
func (r *GormAffiliateRepository) AddCommission(id string, delta decimal.Decimal) error {
	return r.db.Model(&models.Affiliate{}).
		Where("id = ?", id).
		Update("commission_accumulated", gorm.Expr("commission_accumulated + ?", delta.Round(2).String())).Error
}

// SetCommission 覆盖待结算佣金
func (r *GormAffiliateRepository) SetCommission(id string, amount decimal.Decimal) error {
	return r.db.Model(&models.Affiliate{}).
		Where("id = ?", id).
		Update("commission_accumulated", models.NewMoneyFromDecimal(amount)).Error
}

// SetActiveReferrals 覆盖活跃被推荐客户数
func (r *GormAffiliateRepository) SetActiveReferrals(id string, total int) error {
	return r.db.Model(&models.Affiliate{}).
		Where("id = ?", id).
		Update("total_active_referrals", total).Error
}

// CreatePayout 创建结算记录
func (r *GormAffiliateRepository) CreatePayout(payout *models.AffiliatePayout) error {
	return r.db.Create(payout).Error
}

// GetPayoutByID 按ID获取结算记录
func (r *GormAffiliateRepository) GetPayoutByID(id string) (*models.AffiliatePayout, error) {
	var payout models.AffiliatePayout
	if err := r.db.Where("id = ?", id).First(&payout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payout, nil
}

// UpdatePayout 更新结算记录
func (r *GormAffiliateRepository) UpdatePayout(payout *models.AffiliatePayout) error {
	return r.db.Save(payout).Error
}

// ListPayouts 结算记录列表
func (r *GormAffiliateRepository) ListPayouts(filter PayoutListFilter) ([]models.AffiliatePayout, int64, error) {
	query := r.db.Model(&models.AffiliatePayout{})
	if affiliateID := strings.TrimSpace(filter.AffiliateID); affiliateID != "" {
		query = query.Where("affiliate_id = ?", affiliateID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]models.AffiliatePayout, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("payout_date DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CreateReferredClient 创建被推荐客户
func (r *GormAffiliateRepository) CreateReferredClient(client *models.ReferredClient) error {
	return r.db.Create(client).Error
}

// GetReferredClientByID 按ID获取被推荐客户
func (r *GormAffiliateRepository) GetReferredClientByID(id string) (*models.ReferredClient, error) {
	return r.firstReferredClient(r.db.Where("id = ?", id))
}

// GetReferredClientByIDForUpdate 按ID获取被推荐客户并加锁
func (r *GormAffiliateRepository) GetReferredClientByIDForUpdate(id string) (*models.ReferredClient, error) {
	return r.firstReferredClient(r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

func (r *GormAffiliateRepository) firstReferredClient(query *gorm.DB) (*models.ReferredClient, error) {
	var client models.ReferredClient
	if err := query.First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// UpdateReferredClient 更新被推荐客户
func (r *GormAffiliateRepository) UpdateReferredClient(client *models.ReferredClient) error {
	return r.db.Save(client).Error
}

// ListReferredClients 被推荐客户列表
func (r *GormAffiliateRepository) ListReferredClients(filter ReferredClientListFilter) ([]models.ReferredClient, int64, error) {
	query := r.db.Model(&models.ReferredClient{})
	if affiliateID := strings.TrimSpace(filter.AffiliateID); affiliateID != "" {
		query = query.Where("affiliate_id = ?", affiliateID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = applySearch(query, filter.Search, "client_name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]models.ReferredClient, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountActiveReferredClients 统计推广员名下活跃客户数
func (r *GormAffiliateRepository) CountActiveReferredClients(affiliateID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ReferredClient{}).
		Where("affiliate_id = ? AND status = ?", affiliateID, constants.ReferredClientStatusActive).
		Count(&count).Error
	return count, err
}
