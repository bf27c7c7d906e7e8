package constants

// 商品状态常量
const (
	ProductStatusActive     = "active"
	ProductStatusInactive   = "inactive"
	ProductStatusOutOfStock = "out_of_stock"
)

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// 推广员状态常量
const (
	AffiliateStatusActive   = "active"
	AffiliateStatusInactive = "inactive"
)

// 被推荐客户状态常量
const (
	ReferredClientStatusActive    = "active"
	ReferredClientStatusTrial     = "trial"
	ReferredClientStatusCancelled = "cancelled"
)

// 推广结算状态常量
const (
	PayoutStatusPending = "pending"
	PayoutStatusPaid    = "paid"
	PayoutStatusFailed  = "failed"
)

// 结算方式常量
const (
	PaymentMethodPaypal         = "paypal"
	PaymentMethodBankTransfer   = "bank_transfer"
	PaymentMethodNequiDaviplata = "nequi_daviplata"
	PaymentMethodManual         = "manual"
)

// 佣金类型常量
const (
	CommissionTypeOneTime   = "one_time"
	CommissionTypeRecurring = "recurring"
)

// 后台账号角色与状态常量
const (
	AdminRoleSME        = "sme"
	AdminRoleSuperadmin = "superadmin"

	AdminStatusActive    = "active"
	AdminStatusInactive  = "inactive"
	AdminStatusSuspended = "suspended"
)

// 商品目录排序常量
const (
	SortDateDesc  = "date-desc"
	SortDateAsc   = "date-asc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// 币种常量
const (
	CurrencyUSD     = "USD"
	CurrencyEUR     = "EUR"
	CurrencyCOP     = "COP"
	CurrencyDefault = CurrencyUSD
)

// 队列常量
const (
	QueueDefault            = "default"
	QueueCritical           = "critical"
	TaskCommissionAccrue    = "affiliate:commission_accrue"
	TaskOrderStatusNotify   = "order:status_notify"
	TaskStorefrontCacheBust = "storefront:cache_bust"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "vt"
	CacheKeyStorefront = "storefront:products"
)

// 设置键常量
const (
	SettingKeyBusinessConfig  = "business_config"
	SettingKeyAffiliateConfig = "affiliate_config"
)

// 请求头与查询参数常量
const (
	HeaderCartKey       = "X-Cart-Key"
	HeaderLocale        = "X-Locale"
	HeaderRequestID     = "X-Request-ID"
	QuerySharedCart     = "sharedCart"
	ProductCopySuffix   = " (Copia)"
	InvalidPriceDisplay = "Precio Inválido"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
	LocaleEsCO = "es-CO"
)

// 支持的站点语言顺序（首个为默认）
var SupportedLocales = []string{LocaleEsCO, LocaleEnUS, LocaleZhCN}
