package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/vitrina-next/internal/commission"
	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/models"

	"github.com/shopspring/decimal"
)

const (
	affiliateCommissionRateMin    = 0
	affiliateCommissionRateMax    = 100
	affiliateRetentionDaysMin     = 0
	affiliateRetentionDaysMax     = 3650
	affiliateMinPayoutAmountMin   = 0
	affiliateTermsURLMaxRune      = 500
	affiliateDefaultTermsURL      = "/affiliate-terms"
	affiliateDefaultRatePercent   = 20
	affiliateDefaultMinPayout     = 50
	affiliateDefaultRetentionDays = 30
)

// AffiliateSetting 推广计划配置（佣金规则 + 结算方式）
type AffiliateSetting struct {
	CommissionRatePercent   float64  `json:"commission_rate_percent"`
	CommissionType          string   `json:"commission_type"`
	MinimumPayoutAmount     float64  `json:"minimum_payout_amount"`
	RetentionPeriodDays     int      `json:"retention_period_days"`
	AvailablePaymentMethods []string `json:"available_payment_methods"`
	TermsAndConditionsURL   string   `json:"terms_and_conditions_url"`
}

// AffiliateDefaultSetting 默认推广计划配置
func AffiliateDefaultSetting() AffiliateSetting {
	return AffiliateSetting{
		CommissionRatePercent:   affiliateDefaultRatePercent,
		CommissionType:          constants.CommissionTypeRecurring,
		MinimumPayoutAmount:     affiliateDefaultMinPayout,
		RetentionPeriodDays:     affiliateDefaultRetentionDays,
		AvailablePaymentMethods: []string{constants.PaymentMethodPaypal, constants.PaymentMethodBankTransfer},
		TermsAndConditionsURL:   affiliateDefaultTermsURL,
	}
}

// RateDecimal 佣金比例（百分比）
func (s AffiliateSetting) RateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(s.CommissionRatePercent)
}

// MinimumPayoutDecimal 最低结算金额
func (s AffiliateSetting) MinimumPayoutDecimal() decimal.Decimal {
	return decimal.NewFromFloat(s.MinimumPayoutAmount)
}

// NormalizeAffiliateSetting 归一化推广计划配置
func NormalizeAffiliateSetting(setting AffiliateSetting) AffiliateSetting {
	setting.CommissionRatePercent = roundAffiliateDecimal(setting.CommissionRatePercent)
	if setting.CommissionRatePercent < affiliateCommissionRateMin {
		setting.CommissionRatePercent = affiliateCommissionRateMin
	}
	if setting.CommissionRatePercent > affiliateCommissionRateMax {
		setting.CommissionRatePercent = affiliateCommissionRateMax
	}

	switch strings.ToLower(strings.TrimSpace(setting.CommissionType)) {
	case constants.CommissionTypeOneTime:
		setting.CommissionType = constants.CommissionTypeOneTime
	default:
		setting.CommissionType = constants.CommissionTypeRecurring
	}

	setting.MinimumPayoutAmount = roundAffiliateDecimal(setting.MinimumPayoutAmount)
	if setting.MinimumPayoutAmount < affiliateMinPayoutAmountMin {
		setting.MinimumPayoutAmount = affiliateMinPayoutAmountMin
	}

	if setting.RetentionPeriodDays < affiliateRetentionDaysMin {
		setting.RetentionPeriodDays = affiliateRetentionDaysMin
	}
	if setting.RetentionPeriodDays > affiliateRetentionDaysMax {
		setting.RetentionPeriodDays = affiliateRetentionDaysMax
	}

	setting.AvailablePaymentMethods = normalizeAffiliatePaymentMethods(setting.AvailablePaymentMethods)
	setting.TermsAndConditionsURL = normalizeSettingTextWithRuneLimit(setting.TermsAndConditionsURL, affiliateTermsURLMaxRune)
	if setting.TermsAndConditionsURL == "" {
		setting.TermsAndConditionsURL = affiliateDefaultTermsURL
	}
	return setting
}

// ValidateAffiliateSetting 校验推广计划配置（未归一化的原始输入）
func ValidateAffiliateSetting(setting AffiliateSetting) error {
	if setting.CommissionRatePercent < affiliateCommissionRateMin || setting.CommissionRatePercent > affiliateCommissionRateMax {
		return fmt.Errorf("%w: commission rate must be within 0-100", ErrAffiliateConfigInvalid)
	}
	if setting.MinimumPayoutAmount < affiliateMinPayoutAmountMin {
		return fmt.Errorf("%w: minimum payout amount must not be negative", ErrAffiliateConfigInvalid)
	}
	if setting.RetentionPeriodDays < affiliateRetentionDaysMin || setting.RetentionPeriodDays > affiliateRetentionDaysMax {
		return fmt.Errorf("%w: retention period must be within 0-3650 days", ErrAffiliateConfigInvalid)
	}
	for _, method := range setting.AvailablePaymentMethods {
		if !commission.IsKnownMethod(strings.ToLower(strings.TrimSpace(method))) {
			return fmt.Errorf("%w: unknown payment method %q", ErrAffiliateConfigInvalid, method)
		}
	}
	return nil
}

// AffiliateSettingToMap 将推广计划配置转换为 settings 存储结构
func AffiliateSettingToMap(setting AffiliateSetting) map[string]interface{} {
	normalized := NormalizeAffiliateSetting(setting)
	return map[string]interface{}{
		"commission_rate_percent":   normalized.CommissionRatePercent,
		"commission_type":           normalized.CommissionType,
		"minimum_payout_amount":     normalized.MinimumPayoutAmount,
		"retention_period_days":     normalized.RetentionPeriodDays,
		"available_payment_methods": cloneStringSlice(normalized.AvailablePaymentMethods),
		"terms_and_conditions_url":  normalized.TermsAndConditionsURL,
	}
}

func affiliateSettingFromJSON(raw models.JSON, fallback AffiliateSetting) AffiliateSetting {
	result := fallback

	if rateRaw, ok := raw["commission_rate_percent"]; ok {
		if parsed, err := parseSettingFloat(rateRaw); err == nil {
			result.CommissionRatePercent = parsed
		}
	}
	if typeRaw, ok := raw["commission_type"]; ok {
		result.CommissionType = normalizeSettingText(typeRaw)
	}
	if minRaw, ok := raw["minimum_payout_amount"]; ok {
		if parsed, err := parseSettingFloat(minRaw); err == nil {
			result.MinimumPayoutAmount = parsed
		}
	}
	if daysRaw, ok := raw["retention_period_days"]; ok {
		if parsed, err := parseSettingInt(daysRaw); err == nil {
			result.RetentionPeriodDays = parsed
		}
	}
	if methodsRaw, ok := raw["available_payment_methods"]; ok {
		result.AvailablePaymentMethods = normalizeSettingStringList(methodsRaw)
	}
	if termsRaw, ok := raw["terms_and_conditions_url"]; ok {
		result.TermsAndConditionsURL = normalizeSettingText(termsRaw)
	}

	return NormalizeAffiliateSetting(result)
}

// GetAffiliateSetting 获取推广计划设置（优先 settings，空时回退默认）
func (s *SettingService) GetAffiliateSetting() (AffiliateSetting, error) {
	fallback := AffiliateDefaultSetting()
	if s == nil {
		return fallback, nil
	}

	value, err := s.GetByKey(constants.SettingKeyAffiliateConfig)
	if err != nil {
		return fallback, err
	}
	if value == nil {
		return fallback, nil
	}
	return affiliateSettingFromJSON(value, fallback), nil
}

// UpdateAffiliateSetting 更新推广计划设置
func (s *SettingService) UpdateAffiliateSetting(setting AffiliateSetting) (AffiliateSetting, error) {
	if err := ValidateAffiliateSetting(setting); err != nil {
		return AffiliateDefaultSetting(), err
	}
	normalized := NormalizeAffiliateSetting(setting)
	if _, err := s.Update(constants.SettingKeyAffiliateConfig, AffiliateSettingToMap(normalized)); err != nil {
		return AffiliateDefaultSetting(), err
	}
	return normalized, nil
}

func roundAffiliateDecimal(value float64) float64 {
	return math.Round(value*100) / 100
}

// normalizeAffiliatePaymentMethods 去重并剔除未知结算方式，保持原顺序
func normalizeAffiliatePaymentMethods(methods []string) []string {
	if len(methods) == 0 {
		return []string{}
	}
	result := make([]string, 0, len(methods))
	seen := make(map[string]struct{}, len(methods))
	for _, raw := range methods {
		value := strings.ToLower(strings.TrimSpace(raw))
		if !commission.IsKnownMethod(value) {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
