package service

import "errors"

// 通用
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// 商品
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductNameRequired  = errors.New("product name required")
	ErrProductPriceInvalid  = errors.New("product price invalid")
	ErrProductStatusInvalid = errors.New("product status invalid")
	ErrProductNotAvailable  = errors.New("product not available")
)

// 购物车
var (
	ErrCartKeyRequired     = errors.New("cart key required")
	ErrCartQuantityInvalid = errors.New("cart quantity invalid")
	ErrSharedCartInvalid   = errors.New("shared cart invalid")
)

// 订单
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderStatusInvalid = errors.New("order status invalid")
	ErrInvalidOrderItem   = errors.New("invalid order item")
	ErrInvalidOrderAmount = errors.New("invalid order amount")
)

// 推广计划
var (
	ErrAffiliateNotFound      = errors.New("affiliate not found")
	ErrAffiliateInvalid       = errors.New("affiliate invalid")
	ErrAffiliateStatusInvalid = errors.New("affiliate status invalid")
	ErrAffiliateCodeExhausted = errors.New("affiliate referral code exhausted")
	ErrAffiliateConfigInvalid = errors.New("affiliate config invalid")
	ErrPayoutNotFound         = errors.New("payout not found")
	ErrPayoutAmountInvalid    = errors.New("payout amount invalid")
	ErrPayoutMethodInvalid    = errors.New("payout method invalid")
	ErrPayoutStatusInvalid    = errors.New("payout status invalid")
	ErrReferredClientNotFound = errors.New("referred client not found")
	ErrReferredClientInvalid  = errors.New("referred client invalid")
	ErrRevenueAmountInvalid   = errors.New("revenue amount invalid")
)

// 商家设置
var (
	ErrBusinessConfigInvalid = errors.New("business config invalid")
)

// 后台账号与认证
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrAdminDisabled      = errors.New("admin disabled")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminEmailExists   = errors.New("admin email exists")
	ErrAdminRoleInvalid   = errors.New("admin role invalid")
	ErrAdminStatusInvalid = errors.New("admin status invalid")
	ErrAdminSelfModify    = errors.New("admin cannot modify self")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

// 验证码
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 文案生成
var (
	ErrAIUnavailable    = errors.New("ai generator unavailable")
	ErrAIPromptRequired = errors.New("ai prompt required")
	ErrAIGenerateFailed = errors.New("ai generate failed")
)
