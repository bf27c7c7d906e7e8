package public

import (
	"strings"

	"github.com/vitrina-next/internal/catalog"
	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/pricing"
	"github.com/vitrina-next/internal/service"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// GetStorefront 前台商品目录
func (h *Handler) GetStorefront(c *gin.Context) {
	var criteria catalog.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	products, err := h.ProductService.Storefront(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, products)
}

// GetStorefrontProduct 前台商品详情
func (h *Handler) GetStorefrontProduct(c *gin.Context) {
	product, err := h.ProductService.GetPublicByID(c.Param("id"))
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// GetStorefrontCategories 前台分类列表
func (h *Handler) GetStorefrontCategories(c *gin.Context) {
	categories, err := h.ProductService.Categories(true)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}

// GetProductInquiry 生成商品咨询的 WhatsApp 消息与链接
func (h *Handler) GetProductInquiry(c *gin.Context) {
	product, err := h.ProductService.GetPublicByID(c.Param("id"))
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	setting, err := h.SettingService.GetBusinessSetting()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, service.BuildInquiryMessage(setting, product.Name, product.Pricing))
}

// GetConfig 店铺公开配置
func (h *Handler) GetConfig(c *gin.Context) {
	setting, err := h.SettingService.GetBusinessSetting()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	data := setting.PublicView()
	data["locales"] = constants.SupportedLocales
	data["currencies"] = []string{constants.CurrencyUSD, constants.CurrencyEUR, constants.CurrencyCOP}
	data["captcha_enabled"] = h.CaptchaService != nil && h.CaptchaService.Enabled()
	response.Success(c, data)
}

// FormatPrice 按币种格式化金额
func (h *Handler) FormatPrice(c *gin.Context) {
	currency := displayCurrency(c)
	amount := strings.TrimSpace(c.Query("amount"))
	response.Success(c, gin.H{
		"amount":    amount,
		"currency":  currency,
		"formatted": pricing.FormatString(amount, currency),
	})
}

// QuotePrice 计算含税折后价
func (h *Handler) QuotePrice(c *gin.Context) {
	quote := pricing.Calculate(pricing.Input{
		BasePrice:    c.Query("base_price"),
		TaxRate:      c.Query("tax_rate"),
		DiscountRate: c.Query("discount_rate"),
		Currency:     c.Query("currency"),
	})
	response.Success(c, gin.H{
		"quote":            quote,
		"final_display":    pricing.Format(quote.FinalPrice, quote.Currency),
		"original_display": pricing.Format(quote.OriginalPrice, quote.Currency),
	})
}
