// Package pricing 计算商品成交价并按币种格式化金额。
//
// 所有函数都是纯计算：价格解析失败时返回零值结果而不是错误。
package pricing

import (
	"encoding/json"
	"strings"

	"github.com/vitrina-next/internal/constants"

	"github.com/shopspring/decimal"
)

var (
	hundred         = decimal.NewFromInt(100)
	discountEpsilon = decimal.RequireFromString("0.001")
)

// Input 定价输入，均为用户录入的原始字符串
type Input struct {
	BasePrice    string
	TaxRate      string
	DiscountRate string
	Currency     string
}

// Quote 定价结果
type Quote struct {
	FinalPrice         decimal.Decimal // 含税折后价（2 位小数）
	OriginalPrice      decimal.Decimal // 含税未折扣价（2 位小数）
	DiscountPercentage string          // 整数折扣百分比，无折扣时为空
	Currency           string
	HasDiscount        bool
	Valid              bool // 基础价格是否可解析
}

type quoteJSON struct {
	FinalPrice         string `json:"final_price"`
	OriginalPrice      string `json:"original_price_for_display"`
	DiscountPercentage string `json:"discount_percentage,omitempty"`
	Currency           string `json:"currency"`
	HasDiscount        bool   `json:"has_discount"`
	Valid              bool   `json:"valid"`
}

// MarshalJSON 金额统一输出 2 位小数字符串
func (q Quote) MarshalJSON() ([]byte, error) {
	return json.Marshal(quoteJSON{
		FinalPrice:         q.FinalPrice.StringFixed(2),
		OriginalPrice:      q.OriginalPrice.StringFixed(2),
		DiscountPercentage: q.DiscountPercentage,
		Currency:           q.Currency,
		HasDiscount:        q.HasDiscount,
		Valid:              q.Valid,
	})
}

// FinalPriceString 返回 2 位小数的成交价字符串
func (q Quote) FinalPriceString() string {
	return q.FinalPrice.StringFixed(2)
}

// Calculate 计算含税、折扣后的成交价
// 基础价格无法解析或为负数时返回零值结果；税率、折扣率无法解析时按 0 处理
func Calculate(in Input) Quote {
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = constants.CurrencyDefault
	}
	base, ok := ParseAmount(in.BasePrice)
	if !ok || base.IsNegative() {
		return Quote{
			FinalPrice:    decimal.Zero,
			OriginalPrice: decimal.Zero,
			Currency:      currency,
		}
	}

	taxRate := parseRate(in.TaxRate)
	discountRate := parseRate(in.DiscountRate)

	priceWithTax := base.Mul(decimal.NewFromInt(1).Add(taxRate.Div(hundred)))
	discountAmount := priceWithTax.Mul(discountRate.Div(hundred))
	finalPrice := priceWithTax.Sub(discountAmount)

	quote := Quote{
		FinalPrice:    finalPrice.Round(2),
		OriginalPrice: priceWithTax.Round(2),
		Currency:      currency,
		Valid:         true,
	}
	if discountRate.IsPositive() && discountAmount.GreaterThan(discountEpsilon) {
		quote.HasDiscount = true
		quote.DiscountPercentage = discountRate.Round(0).String()
	}
	return quote
}

// ParseAmount 解析金额字符串，失败时 ok 为 false
func ParseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseRate(raw string) decimal.Decimal {
	d, ok := ParseAmount(raw)
	if !ok {
		return decimal.Zero
	}
	return d
}
