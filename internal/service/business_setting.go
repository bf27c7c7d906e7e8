package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/models"
)

const (
	businessTextMaxRune     = 200
	businessLongTextMaxRune = 2000
	businessDefaultColor    = "#2563eb"

	// DefaultWhatsAppOrderTemplate 默认下单消息模板
	DefaultWhatsAppOrderTemplate = "Hola {businessName}, quiero confirmar mi pedido:\n{cartItemsList}\nTotal: ${totalAmount}.\nMis notas: {customerNotes}.\nGracias."
	// DefaultWhatsAppInquiryTemplate 默认商品咨询消息模板
	DefaultWhatsAppInquiryTemplate = "Hola {businessName}, estoy interesado/a en el producto: \"{productName}\". ¿Podrías darme más información?"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// BusinessSetting 商家资料与 WhatsApp 模板
type BusinessSetting struct {
	BusinessName               string `json:"business_name"`
	BusinessCategory           string `json:"business_category"`
	ContactInfo                string `json:"contact_info"`
	WhatsAppNumber             string `json:"whatsapp_number"`
	WhatsAppOrderTemplate      string `json:"whatsapp_order_template"`
	WhatsAppInquiryTemplate    string `json:"whatsapp_inquiry_template"`
	PrimaryColor               string `json:"primary_color"`
	LogoURL                    string `json:"logo_url"`
	EnableCashOnDelivery       bool   `json:"enable_cash_on_delivery"`
	CashOnDeliveryInstructions string `json:"cash_on_delivery_instructions"`
	EnableNequiPayment         bool   `json:"enable_nequi_payment"`
	NequiPhoneNumber           string `json:"nequi_phone_number"`
	NequiPaymentInstructions   string `json:"nequi_payment_instructions"`
}

// BusinessDefaultSetting 默认商家设置
func BusinessDefaultSetting() BusinessSetting {
	return BusinessSetting{
		WhatsAppOrderTemplate:   DefaultWhatsAppOrderTemplate,
		WhatsAppInquiryTemplate: DefaultWhatsAppInquiryTemplate,
		PrimaryColor:            businessDefaultColor,
	}
}

// NormalizeBusinessSetting 归一化商家设置
func NormalizeBusinessSetting(setting BusinessSetting) BusinessSetting {
	setting.BusinessName = normalizeSettingTextWithRuneLimit(setting.BusinessName, businessTextMaxRune)
	setting.BusinessCategory = normalizeSettingTextWithRuneLimit(setting.BusinessCategory, businessTextMaxRune)
	setting.ContactInfo = normalizeSettingTextWithRuneLimit(setting.ContactInfo, businessLongTextMaxRune)
	setting.WhatsAppNumber = normalizeSettingTextWithRuneLimit(setting.WhatsAppNumber, 32)
	setting.WhatsAppOrderTemplate = normalizeSettingTextWithRuneLimit(setting.WhatsAppOrderTemplate, businessLongTextMaxRune)
	if setting.WhatsAppOrderTemplate == "" {
		setting.WhatsAppOrderTemplate = DefaultWhatsAppOrderTemplate
	}
	setting.WhatsAppInquiryTemplate = normalizeSettingTextWithRuneLimit(setting.WhatsAppInquiryTemplate, businessLongTextMaxRune)
	if setting.WhatsAppInquiryTemplate == "" {
		setting.WhatsAppInquiryTemplate = DefaultWhatsAppInquiryTemplate
	}
	setting.PrimaryColor = strings.TrimSpace(setting.PrimaryColor)
	if !hexColorPattern.MatchString(setting.PrimaryColor) {
		setting.PrimaryColor = businessDefaultColor
	}
	setting.LogoURL = normalizeSettingTextWithRuneLimit(setting.LogoURL, 500)
	setting.CashOnDeliveryInstructions = normalizeSettingTextWithRuneLimit(setting.CashOnDeliveryInstructions, businessLongTextMaxRune)
	setting.NequiPhoneNumber = normalizeSettingTextWithRuneLimit(setting.NequiPhoneNumber, 32)
	setting.NequiPaymentInstructions = normalizeSettingTextWithRuneLimit(setting.NequiPaymentInstructions, businessLongTextMaxRune)
	return setting
}

// ValidateBusinessSetting 校验商家设置
func ValidateBusinessSetting(setting BusinessSetting) error {
	if number := strings.TrimSpace(setting.WhatsAppNumber); number != "" && cleanPhoneDigits(number) == "" {
		return fmt.Errorf("%w: whatsapp number has no digits", ErrBusinessConfigInvalid)
	}
	if setting.EnableNequiPayment && cleanPhoneDigits(setting.NequiPhoneNumber) == "" {
		return fmt.Errorf("%w: nequi phone number required", ErrBusinessConfigInvalid)
	}
	return nil
}

// PublicView 前台可见字段
func (s BusinessSetting) PublicView() map[string]interface{} {
	view := map[string]interface{}{
		"business_name":           s.BusinessName,
		"business_category":       s.BusinessCategory,
		"contact_info":            s.ContactInfo,
		"whatsapp_available":      cleanPhoneDigits(s.WhatsAppNumber) != "",
		"primary_color":           s.PrimaryColor,
		"logo_url":                s.LogoURL,
		"enable_cash_on_delivery": s.EnableCashOnDelivery,
		"enable_nequi_payment":    s.EnableNequiPayment,
	}
	if s.EnableCashOnDelivery {
		view["cash_on_delivery_instructions"] = s.CashOnDeliveryInstructions
	}
	if s.EnableNequiPayment {
		view["nequi_phone_number"] = s.NequiPhoneNumber
		view["nequi_payment_instructions"] = s.NequiPaymentInstructions
	}
	return view
}

// BusinessSettingToMap 转换为 settings 存储结构
func BusinessSettingToMap(setting BusinessSetting) map[string]interface{} {
	n := NormalizeBusinessSetting(setting)
	return map[string]interface{}{
		"business_name":                 n.BusinessName,
		"business_category":             n.BusinessCategory,
		"contact_info":                  n.ContactInfo,
		"whatsapp_number":               n.WhatsAppNumber,
		"whatsapp_order_template":       n.WhatsAppOrderTemplate,
		"whatsapp_inquiry_template":     n.WhatsAppInquiryTemplate,
		"primary_color":                 n.PrimaryColor,
		"logo_url":                      n.LogoURL,
		"enable_cash_on_delivery":       n.EnableCashOnDelivery,
		"cash_on_delivery_instructions": n.CashOnDeliveryInstructions,
		"enable_nequi_payment":          n.EnableNequiPayment,
		"nequi_phone_number":            n.NequiPhoneNumber,
		"nequi_payment_instructions":    n.NequiPaymentInstructions,
	}
}

func businessSettingFromJSON(raw models.JSON, fallback BusinessSetting) BusinessSetting {
	result := fallback
	texts := map[string]*string{
		"business_name":                 &result.BusinessName,
		"business_category":             &result.BusinessCategory,
		"contact_info":                  &result.ContactInfo,
		"whatsapp_number":               &result.WhatsAppNumber,
		"whatsapp_order_template":       &result.WhatsAppOrderTemplate,
		"whatsapp_inquiry_template":     &result.WhatsAppInquiryTemplate,
		"primary_color":                 &result.PrimaryColor,
		"logo_url":                      &result.LogoURL,
		"cash_on_delivery_instructions": &result.CashOnDeliveryInstructions,
		"nequi_phone_number":            &result.NequiPhoneNumber,
		"nequi_payment_instructions":    &result.NequiPaymentInstructions,
	}
	for key, dst := range texts {
		if value, ok := raw[key]; ok {
			*dst = normalizeSettingText(value)
		}
	}
	if value, ok := raw["enable_cash_on_delivery"]; ok {
		result.EnableCashOnDelivery = parseSettingBool(value)
	}
	if value, ok := raw["enable_nequi_payment"]; ok {
		result.EnableNequiPayment = parseSettingBool(value)
	}
	return NormalizeBusinessSetting(result)
}

// GetBusinessSetting 获取商家设置（空时回退默认）
func (s *SettingService) GetBusinessSetting() (BusinessSetting, error) {
	fallback := BusinessDefaultSetting()
	if s == nil {
		return fallback, nil
	}
	value, err := s.GetByKey(constants.SettingKeyBusinessConfig)
	if err != nil {
		return fallback, err
	}
	if value == nil {
		return fallback, nil
	}
	return businessSettingFromJSON(value, fallback), nil
}

// UpdateBusinessSetting 更新商家设置
func (s *SettingService) UpdateBusinessSetting(setting BusinessSetting) (BusinessSetting, error) {
	normalized := NormalizeBusinessSetting(setting)
	if err := ValidateBusinessSetting(normalized); err != nil {
		return BusinessDefaultSetting(), err
	}
	if _, err := s.Update(constants.SettingKeyBusinessConfig, BusinessSettingToMap(normalized)); err != nil {
		return BusinessDefaultSetting(), err
	}
	return normalized, nil
}
