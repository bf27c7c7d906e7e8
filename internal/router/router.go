package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/vitrina-next/internal/authz"
	"github.com/vitrina-next/internal/cache"
	"github.com/vitrina-next/internal/config"
	"github.com/vitrina-next/internal/constants"
	adminhandlers "github.com/vitrina-next/internal/http/handlers/admin"
	publichandlers "github.com/vitrina-next/internal/http/handlers/public"
	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/i18n"
	"github.com/vitrina-next/internal/logger"
	"github.com/vitrina-next/internal/provider"

	"github.com/gin-gonic/gin"
)

const defaultMetricsPath = "/metrics"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	orderRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:order", redisPrefix),
		WindowSeconds: cfg.Storefront.OrderRateLimitWindow,
		MaxRequests:   cfg.Storefront.OrderRateLimitRequests,
		MessageKey:    "error.rate_limited",
		FailOpen:      true,
	}

	metricsPath := strings.TrimSpace(cfg.Metrics.Path)
	if metricsPath == "" {
		metricsPath = defaultMetricsPath
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log, "/health", metricsPath))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(MetricsMiddleware(c.Metrics))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口：商品目录、价格、购物车与下单
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/captcha", publicHandler.GetImageCaptcha)
			public.GET("/price/format", publicHandler.FormatPrice)
			public.GET("/price/quote", publicHandler.QuotePrice)

			public.GET("/storefront", publicHandler.GetStorefront)
			public.GET("/storefront/categories", publicHandler.GetStorefrontCategories)
			public.GET("/storefront/products/:id", publicHandler.GetStorefrontProduct)
			public.GET("/storefront/products/:id/inquiry", publicHandler.GetProductInquiry)

			public.GET("/cart", publicHandler.GetCart)
			public.DELETE("/cart", publicHandler.ClearCart)
			public.POST("/cart/items", publicHandler.AddCartItem)
			public.PATCH("/cart/items/:product_id", publicHandler.UpdateCartItem)
			public.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			public.GET("/cart/share", publicHandler.ShareCart)
			public.POST("/cart/import", publicHandler.ImportCart)

			public.POST("/orders", RateLimitMiddleware(redisClient, orderRule, KeyByIP), publicHandler.CreateOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("email")), adminHandler.AdminLogin)

			authorized := admin.Group("")
			authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService))
			authorized.Use(AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetCurrentAdmin)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)
				authorized.GET("/dashboard/summary", adminHandler.GetDashboardSummary)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
				authorized.PATCH("/products/:id/toggle", adminHandler.ToggleProductStatus)
				authorized.POST("/products/:id/duplicate", adminHandler.DuplicateProduct)
				authorized.GET("/categories", adminHandler.GetAdminCategories)

				// AI 内容
				authorized.POST("/content/description", adminHandler.GenerateDescription)
				authorized.POST("/content/categories", adminHandler.SuggestCategories)
				authorized.POST("/content/marketing", adminHandler.GenerateMarketingContent)

				// 订单管理
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.PUT("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)

				// 推广员与推荐客户
				authorized.GET("/affiliates", adminHandler.ListAffiliates)
				authorized.POST("/affiliates", adminHandler.CreateAffiliate)
				authorized.GET("/affiliates/:id", adminHandler.GetAffiliate)
				authorized.PUT("/affiliates/:id", adminHandler.UpdateAffiliate)
				authorized.PUT("/affiliates/:id/status", adminHandler.UpdateAffiliateStatus)
				authorized.DELETE("/affiliates/:id", adminHandler.DeleteAffiliate)
				authorized.GET("/referred-clients", adminHandler.ListReferredClients)
				authorized.POST("/referred-clients", adminHandler.CreateReferredClient)
				authorized.PUT("/referred-clients/:id/status", adminHandler.UpdateReferredClientStatus)
				authorized.POST("/referred-clients/:id/revenue", adminHandler.RecordReferredRevenue)

				// 推广结算
				authorized.GET("/payouts", adminHandler.ListPayouts)
				authorized.POST("/payouts", adminHandler.RecordPayout)
				authorized.PUT("/payouts/:id/status", adminHandler.UpdatePayoutStatus)

				// 设置
				authorized.GET("/settings/business", adminHandler.GetBusinessSetting)
				authorized.PUT("/settings/business", adminHandler.UpdateBusinessSetting)
				authorized.GET("/settings/affiliate", adminHandler.GetAffiliateSetting)
				authorized.PUT("/settings/affiliate", adminHandler.UpdateAffiliateSetting)

				// 后台账号
				authorized.GET("/accounts", adminHandler.ListAdminAccounts)
				authorized.POST("/accounts", adminHandler.CreateAdminAccount)
				authorized.PUT("/accounts/:id", adminHandler.UpdateAdminAccount)
				authorized.DELETE("/accounts/:id", adminHandler.DeleteAdminAccount)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// Prometheus 指标
	if c.Metrics != nil {
		r.GET(metricsPath, gin.WrapH(c.Metrics.Handler()))
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		if err := cache.Ping(ctx.Request.Context()); err != nil {
			logger.Warnw("health_redis_unreachable", "error", err)
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"msg":    i18n.T(i18n.ResolveLocale(ctx), "error.internal"),
			})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
