package service

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vitrina-next/internal/cache"
	"github.com/vitrina-next/internal/catalog"
	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/logger"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/pricing"
	"github.com/vitrina-next/internal/queue"
	"github.com/vitrina-next/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService 商品业务服务
type ProductService struct {
	repo          repository.ProductRepository
	cartRepo      repository.CartRepository
	queueClient   *queue.Client
	storefrontTTL time.Duration
	cacheObserver func(hit bool)
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, cartRepo repository.CartRepository, queueClient *queue.Client, storefrontTTL time.Duration) *ProductService {
	return &ProductService{
		repo:          repo,
		cartRepo:      cartRepo,
		queueClient:   queueClient,
		storefrontTTL: storefrontTTL,
	}
}

// SetCacheObserver 设置前台缓存命中回调
func (s *ProductService) SetCacheObserver(observer func(hit bool)) {
	s.cacheObserver = observer
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Name                 string
	Category             string
	BasePrice            string
	Currency             string
	TaxRate              string
	DiscountRate         string
	Idea                 string
	GeneratedDescription string
	Images               []string
	VideoURL             string
	Status               string
	Stock                *int
}

// ProductView 商品及其展示价格
type ProductView struct {
	models.Product
	Pricing         pricing.Quote `json:"pricing"`
	FinalDisplay    string        `json:"final_price_display"`
	OriginalDisplay string        `json:"original_price_display"`
}

// NewProductView 计算商品展示价格
func NewProductView(product models.Product) ProductView {
	quote := pricing.Calculate(pricing.Input{
		BasePrice:    product.BasePrice,
		TaxRate:      product.TaxRate,
		DiscountRate: product.DiscountRate,
		Currency:     product.Currency,
	})
	view := ProductView{
		Product:         product,
		Pricing:         quote,
		FinalDisplay:    constants.InvalidPriceDisplay,
		OriginalDisplay: constants.InvalidPriceDisplay,
	}
	if quote.Valid {
		view.FinalDisplay = pricing.Format(quote.FinalPrice, quote.Currency)
		view.OriginalDisplay = pricing.Format(quote.OriginalPrice, quote.Currency)
	}
	return view
}

func newProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, NewProductView(product))
	}
	return views
}

// ListAdmin 后台商品目录：全部状态，筛选排序后分页
func (s *ProductService) ListAdmin(criteria catalog.Criteria, page, pageSize int) ([]ProductView, int64, error) {
	products, err := s.repo.List(repository.ProductListFilter{})
	if err != nil {
		return nil, 0, err
	}
	result := catalog.Query(products, criteria)
	total := int64(len(result))
	return newProductViews(paginateSlice(result, page, pageSize)), total, nil
}

// Storefront 前台商品目录，仅 active 商品；启用 Redis 时按条件缓存
func (s *ProductService) Storefront(ctx context.Context, criteria catalog.Criteria) ([]ProductView, error) {
	criteria.Status = ""
	criteria.SortOrder = catalog.NormalizeSortOrder(criteria.SortOrder)
	variant := storefrontCacheVariant(criteria)

	var cached []ProductView
	hit, err := cache.GetStorefront(ctx, variant, &cached)
	if err != nil {
		logger.Warnw("storefront_cache_read_failed", "error", err)
	}
	if s.cacheObserver != nil && cache.Enabled() {
		s.cacheObserver(hit)
	}
	if hit {
		return cached, nil
	}

	products, err := s.repo.List(repository.ProductListFilter{OnlyPublic: true})
	if err != nil {
		return nil, err
	}
	views := newProductViews(catalog.Storefront(products, criteria))
	if err := cache.SetStorefront(ctx, variant, views, s.storefrontTTL); err != nil {
		logger.Warnw("storefront_cache_write_failed", "error", err)
	}
	return views, nil
}

// GetPublicByID 前台商品详情，非 active 视为不存在
func (s *ProductService) GetPublicByID(id string) (*ProductView, error) {
	product, err := s.repo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if product == nil || !catalog.IsPublic(*product) {
		return nil, ErrProductNotFound
	}
	view := NewProductView(*product)
	return &view, nil
}

// Categories 分类列表；onlyPublic 时只统计 active 商品
func (s *ProductService) Categories(onlyPublic bool) ([]string, error) {
	if !onlyPublic {
		return s.repo.ListCategories()
	}
	products, err := s.repo.List(repository.ProductListFilter{OnlyPublic: true})
	if err != nil {
		return nil, err
	}
	return catalog.Categories(products), nil
}

// GetAdminByID 后台商品详情
func (s *ProductService) GetAdminByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品，状态缺省为 active
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.ProductStatusActive
	}

	product := &models.Product{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Status:    status,
	}
	applyProductInput(product, input)
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.invalidateStorefront("product_created", product.ID)
	return product, nil
}

// Update 更新商品，同时刷新所有购物车中的名称与图片快照
func (s *ProductService) Update(id string, input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	product, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}
	if status := strings.TrimSpace(input.Status); status != "" {
		product.Status = status
	}
	applyProductInput(product, input)

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(product); err != nil {
			return err
		}
		if s.cartRepo == nil {
			return nil
		}
		_, err := s.cartRepo.WithTx(tx).SyncProductSnapshot(product.ID, product.Name, product.Images.First())
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidateStorefront("product_updated", product.ID)
	return product, nil
}

// Delete 删除商品并从所有购物车中移除
func (s *ProductService) Delete(id string) error {
	id = strings.TrimSpace(id)
	var pruned int64
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.WithTx(tx).Delete(id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrProductNotFound
		}
		if s.cartRepo == nil {
			return nil
		}
		pruned, err = s.cartRepo.WithTx(tx).DeleteByProduct(id)
		return err
	})
	if err != nil {
		return err
	}
	logger.Infow("product_deleted", "product_id", id, "cart_rows_pruned", pruned)
	s.invalidateStorefront("product_deleted", id)
	return nil
}

// ToggleStatus 切换上下架状态
func (s *ProductService) ToggleStatus(id string) (*models.Product, error) {
	product, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}
	next := catalog.NextStatus(product.Status)
	if _, err := s.repo.UpdateStatus(product.ID, next); err != nil {
		return nil, err
	}
	product.Status = next
	s.invalidateStorefront("product_toggled", product.ID)
	return product, nil
}

// Duplicate 复制商品，新副本为 inactive
func (s *ProductService) Duplicate(id string) (*models.Product, error) {
	source, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}
	copied := catalog.Duplicate(*source, uuid.NewString(), time.Now())
	if err := s.repo.Create(&copied); err != nil {
		return nil, err
	}
	return &copied, nil
}

// SaveGeneratedDescription 写回生成的商品描述
func (s *ProductService) SaveGeneratedDescription(id, description string) (*models.Product, error) {
	product, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}
	product.GeneratedDescription = strings.TrimSpace(description)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateStorefront("product_description_generated", product.ID)
	return product, nil
}

func (s *ProductService) invalidateStorefront(reason, productID string) {
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueStorefrontCacheBust(queue.StorefrontCacheBustPayload{Reason: reason, ProductID: productID})
		if err == nil {
			return
		}
		logger.Warnw("storefront_cache_bust_enqueue_failed", "reason", reason, "error", err)
	}
	if err := cache.InvalidateStorefront(context.Background()); err != nil {
		logger.Warnw("storefront_cache_invalidate_failed", "reason", reason, "error", err)
	}
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrProductNameRequired
	}
	// 名称与首图会进入购物车快照和分享口令，必须是合法 UTF-8 才能原样往返
	if !utf8.ValidString(input.Name) {
		return fmt.Errorf("%w: name is not valid utf-8", ErrInvalidArgument)
	}
	for _, image := range input.Images {
		if !utf8.ValidString(image) {
			return fmt.Errorf("%w: image reference is not valid utf-8", ErrInvalidArgument)
		}
	}
	base, ok := pricing.ParseAmount(input.BasePrice)
	if !ok || base.IsNegative() {
		return fmt.Errorf("%w: base price %q", ErrProductPriceInvalid, input.BasePrice)
	}
	for _, rate := range []string{input.TaxRate, input.DiscountRate} {
		if strings.TrimSpace(rate) == "" {
			continue
		}
		if value, ok := pricing.ParseAmount(rate); !ok || value.IsNegative() {
			return fmt.Errorf("%w: rate %q", ErrProductPriceInvalid, rate)
		}
	}
	if status := strings.TrimSpace(input.Status); status != "" && !catalog.ValidStatus(status) {
		return ErrProductStatusInvalid
	}
	if input.Stock != nil && *input.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidArgument)
	}
	return nil
}

func applyProductInput(product *models.Product, input ProductInput) {
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = constants.CurrencyDefault
	}
	images := make(models.StringArray, 0, len(input.Images))
	for _, image := range input.Images {
		if trimmed := strings.TrimSpace(image); trimmed != "" {
			images = append(images, trimmed)
		}
	}
	product.Name = strings.TrimSpace(input.Name)
	product.Category = strings.TrimSpace(input.Category)
	product.BasePrice = strings.TrimSpace(input.BasePrice)
	product.Currency = currency
	product.TaxRate = strings.TrimSpace(input.TaxRate)
	product.DiscountRate = strings.TrimSpace(input.DiscountRate)
	product.Idea = strings.TrimSpace(input.Idea)
	product.GeneratedDescription = strings.TrimSpace(input.GeneratedDescription)
	product.Images = images
	product.VideoURL = strings.TrimSpace(input.VideoURL)
	product.Stock = input.Stock
}

func storefrontCacheVariant(criteria catalog.Criteria) string {
	values := url.Values{}
	values.Set("search", strings.ToLower(strings.TrimSpace(criteria.SearchTerm)))
	values.Set("category", criteria.Category)
	values.Set("sort", criteria.SortOrder)
	return values.Encode()
}

// paginateSlice 内存分页，pageSize<=0 时返回全部
func paginateSlice[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	// 页码过大时乘法会溢出，直接视为越界空页
	if page-1 > (math.MaxInt-1)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
