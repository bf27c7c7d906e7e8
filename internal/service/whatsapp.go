package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vitrina-next/internal/cart"
	"github.com/vitrina-next/internal/pricing"
)

const whatsAppBaseURL = "https://wa.me/"

// WhatsAppMessage 渲染后的 WhatsApp 消息与跳转链接
// Link 为空表示商家未配置号码
type WhatsAppMessage struct {
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}

// RenderTemplate 替换模板中的 {key} 占位符，未提供的占位符原样保留
func RenderTemplate(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// WhatsAppLink 生成 wa.me 链接，号码只保留数字
func WhatsAppLink(number, text string) string {
	digits := cleanPhoneDigits(number)
	if digits == "" {
		return ""
	}
	// 空格编码为 %20，与浏览器 encodeURIComponent 行为一致
	return whatsAppBaseURL + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// BuildOrderMessage 按商家模板渲染下单确认消息
func BuildOrderMessage(setting BusinessSetting, items cart.Cart, totalAmount, notes, currency string) WhatsAppMessage {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %d x %s (%s)", item.Quantity, item.Name, pricing.FormatString(item.Price, currency)))
	}
	text := RenderTemplate(setting.WhatsAppOrderTemplate, map[string]string{
		"businessName":  setting.BusinessName,
		"cartItemsList": strings.Join(lines, "\n"),
		"totalAmount":   totalAmount,
		"customerNotes": notes,
	})
	return WhatsAppMessage{Text: text, Link: WhatsAppLink(setting.WhatsAppNumber, text)}
}

// BuildInquiryMessage 按商家模板渲染商品咨询消息
func BuildInquiryMessage(setting BusinessSetting, productName string, quote pricing.Quote) WhatsAppMessage {
	text := RenderTemplate(setting.WhatsAppInquiryTemplate, map[string]string{
		"businessName": setting.BusinessName,
		"productName":  productName,
		"productPrice": pricing.Format(quote.FinalPrice, quote.Currency),
	})
	return WhatsAppMessage{Text: text, Link: WhatsAppLink(setting.WhatsAppNumber, text)}
}

func cleanPhoneDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
