package provider

import (
	"context"
	"time"

	"github.com/vitrina-next/internal/ai"
	"github.com/vitrina-next/internal/authz"
	"github.com/vitrina-next/internal/cache"
	"github.com/vitrina-next/internal/config"
	"github.com/vitrina-next/internal/logger"
	"github.com/vitrina-next/internal/metrics"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/queue"
	"github.com/vitrina-next/internal/repository"
	"github.com/vitrina-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.Metrics

	// Repositories
	AdminRepo     repository.AdminRepository
	ProductRepo   repository.ProductRepository
	CartRepo      repository.CartRepository
	OrderRepo     repository.OrderRepository
	AffiliateRepo repository.AffiliateRepository
	SettingRepo   repository.SettingRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	CaptchaService   *service.CaptchaService
	SettingService   *service.SettingService
	ProductService   *service.ProductService
	CartService      *service.CartService
	OrderService     *service.OrderService
	AffiliateService *service.AffiliateService
	ContentService   *service.ContentService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	return NewContainerWithDB(cfg, models.DB)
}

// NewContainerWithDB 使用指定数据库连接初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	if cfg.Metrics.Enabled {
		c.Metrics = metrics.New(cfg.Metrics.Prefix)
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices(db)

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.AffiliateRepo = repository.NewAffiliateRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	storefrontTTL := time.Duration(c.Config.Storefront.CacheTTLSeconds) * time.Second

	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CartRepo, c.QueueClient, storefrontTTL)
	c.ProductService.SetCacheObserver(c.Metrics.RecordStorefrontCache)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartService, c.SettingService, c.QueueClient)
	c.AffiliateService = service.NewAffiliateService(c.AffiliateRepo, c.SettingService, c.QueueClient, c.Config.Affiliate.ReferralBaseURL)

	generator, err := ai.NewGeminiGenerator(context.Background(), c.Config.AI)
	if err != nil {
		// 模型不可用时内容生成接口返回 ai_unavailable，不影响其它功能
		logger.Warnw("provider_init_ai_generator_failed", "error", err)
		generator = ai.NewGenerator(nil, 0)
	}
	c.ContentService = service.NewContentService(generator, c.ProductService)
}
