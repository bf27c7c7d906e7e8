package shared

import (
	"errors"

	"github.com/vitrina-next/internal/authz"
	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/i18n"
	"github.com/vitrina-next/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondMappedError 按规则顺序匹配错误，未命中时使用兜底错误并记录原始错误。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	// 密码策略错误带有参数化文案
	if errors.Is(err, service.ErrWeakPassword) {
		if perr, ok := err.(interface {
			Key() string
			Args() []interface{}
		}); ok {
			RespondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(i18n.ResolveLocale(c), perr.Key(), perr.Args()...), nil)
			return
		}
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 合并多组映射规则。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// ProductErrorRules 商品相关错误映射。
var ProductErrorRules = []MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductNameRequired, Code: response.CodeBadRequest, Key: "error.product_name_required"},
	{Target: service.ErrProductPriceInvalid, Code: response.CodeBadRequest, Key: "error.product_price_invalid"},
	{Target: service.ErrProductStatusInvalid, Code: response.CodeBadRequest, Key: "error.product_status_invalid"},
	{Target: service.ErrProductNotAvailable, Code: response.CodeBadRequest, Key: "error.product_not_available"},
	{Target: service.ErrInvalidArgument, Code: response.CodeBadRequest, Key: "error.bad_request"},
}

// CartErrorRules 购物车相关错误映射。
var CartErrorRules = []MappedError{
	{Target: service.ErrCartKeyRequired, Code: response.CodeBadRequest, Key: "error.cart_key_required"},
	{Target: service.ErrCartQuantityInvalid, Code: response.CodeBadRequest, Key: "error.cart_quantity_invalid"},
	{Target: service.ErrSharedCartInvalid, Code: response.CodeBadRequest, Key: "error.shared_cart_invalid"},
}

// OrderErrorRules 订单相关错误映射。
var OrderErrorRules = []MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrInvalidOrderItem, Code: response.CodeBadRequest, Key: "error.order_item_invalid"},
	{Target: service.ErrInvalidOrderAmount, Code: response.CodeBadRequest, Key: "error.order_amount_invalid"},
}

// AffiliateErrorRules 推广计划相关错误映射。
var AffiliateErrorRules = []MappedError{
	{Target: service.ErrAffiliateNotFound, Code: response.CodeNotFound, Key: "error.affiliate_not_found"},
	{Target: service.ErrAffiliateInvalid, Code: response.CodeBadRequest, Key: "error.affiliate_invalid"},
	{Target: service.ErrAffiliateStatusInvalid, Code: response.CodeBadRequest, Key: "error.affiliate_status_invalid"},
	{Target: service.ErrAffiliateCodeExhausted, Code: response.CodeConflict, Key: "error.affiliate_code_exhausted"},
	{Target: service.ErrAffiliateConfigInvalid, Code: response.CodeBadRequest, Key: "error.affiliate_config_invalid"},
	{Target: service.ErrPayoutNotFound, Code: response.CodeNotFound, Key: "error.payout_not_found"},
	{Target: service.ErrPayoutAmountInvalid, Code: response.CodeBadRequest, Key: "error.payout_amount_invalid"},
	{Target: service.ErrPayoutMethodInvalid, Code: response.CodeBadRequest, Key: "error.payout_method_invalid"},
	{Target: service.ErrPayoutStatusInvalid, Code: response.CodeBadRequest, Key: "error.payout_status_invalid"},
	{Target: service.ErrReferredClientNotFound, Code: response.CodeNotFound, Key: "error.referred_not_found"},
	{Target: service.ErrReferredClientInvalid, Code: response.CodeBadRequest, Key: "error.referred_invalid"},
	{Target: service.ErrRevenueAmountInvalid, Code: response.CodeBadRequest, Key: "error.revenue_invalid"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
}

// SettingErrorRules 设置相关错误映射。
var SettingErrorRules = []MappedError{
	{Target: service.ErrBusinessConfigInvalid, Code: response.CodeBadRequest, Key: "error.business_config_invalid"},
	{Target: service.ErrAffiliateConfigInvalid, Code: response.CodeBadRequest, Key: "error.affiliate_config_invalid"},
}

// AuthzErrorRules 权限策略相关错误映射。
var AuthzErrorRules = []MappedError{
	{Target: authz.ErrRoleRequired, Code: response.CodeBadRequest, Key: "error.authz_role_invalid"},
	{Target: authz.ErrReservedRole, Code: response.CodeBadRequest, Key: "error.authz_role_invalid"},
	{Target: authz.ErrInvalidPolicy, Code: response.CodeBadRequest, Key: "error.authz_policy_invalid"},
	{Target: authz.ErrProtectedPolicy, Code: response.CodeForbidden, Key: "error.authz_policy_protected"},
	{Target: authz.ErrUnavailable, Code: response.CodeServiceUnavailable, Key: "error.internal"},
}

// AdminErrorRules 后台账号相关错误映射。
var AdminErrorRules = []MappedError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrAdminDisabled, Code: response.CodeForbidden, Key: "error.admin_disabled"},
	{Target: service.ErrAdminNotFound, Code: response.CodeNotFound, Key: "error.admin_not_found"},
	{Target: service.ErrAdminEmailExists, Code: response.CodeConflict, Key: "error.admin_email_exists"},
	{Target: service.ErrAdminRoleInvalid, Code: response.CodeBadRequest, Key: "error.admin_role_invalid"},
	{Target: service.ErrAdminStatusInvalid, Code: response.CodeBadRequest, Key: "error.admin_status_invalid"},
	{Target: service.ErrAdminSelfModify, Code: response.CodeForbidden, Key: "error.admin_self_modify"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
}

// CaptchaErrorRules 验证码相关错误映射。
var CaptchaErrorRules = []MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_unavailable"},
}

// ContentErrorRules 文案生成相关错误映射。
var ContentErrorRules = []MappedError{
	{Target: service.ErrAIUnavailable, Code: response.CodeServiceUnavailable, Key: "error.ai_unavailable"},
	{Target: service.ErrAIPromptRequired, Code: response.CodeBadRequest, Key: "error.ai_prompt_required"},
	{Target: service.ErrAIGenerateFailed, Code: response.CodeInternal, Key: "error.ai_generate_failed"},
}
