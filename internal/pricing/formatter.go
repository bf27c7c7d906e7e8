package pricing

import (
	"math"
	"strings"

	"github.com/vitrina-next/internal/constants"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const nbsp = "\u00a0"

// currencyStyle 币种展示规则
type currencyStyle struct {
	tag      language.Tag
	symbol   string
	prefix   bool // 符号在数字之前
	spaced   bool // 符号与数字之间有不换行空格
	decimals int
}

var currencyStyles = map[string]currencyStyle{
	constants.CurrencyUSD: {tag: language.AmericanEnglish, symbol: "$", prefix: true, decimals: 2},
	constants.CurrencyEUR: {tag: language.MustParse("de-DE"), symbol: "€", spaced: true, decimals: 2},
	constants.CurrencyCOP: {tag: language.MustParse("es-CO"), symbol: "$", prefix: true, spaced: true, decimals: 0},
}

var fallbackTag = language.AmericanEnglish

// Format 按币种格式化金额
// USD/EUR/COP 使用各自的地区格式，其它币种输出“千分位数字 + 空格 + 币种代码”
func Format(amount decimal.Decimal, currencyCode string) string {
	return FormatFloat(amount.InexactFloat64(), currencyCode)
}

// FormatString 解析字符串金额后格式化，解析失败返回无效价格标记
func FormatString(raw string, currencyCode string) string {
	amount, ok := ParseAmount(raw)
	if !ok {
		return constants.InvalidPriceDisplay
	}
	return Format(amount, currencyCode)
}

// FormatFloat 格式化浮点金额，NaN 与无穷大返回无效价格标记
func FormatFloat(amount float64, currencyCode string) (out string) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return constants.InvalidPriceDisplay
	}
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	style, ok := currencyStyles[code]
	if !ok {
		return plainFormat(amount, currencyCode)
	}

	defer func() {
		if recover() != nil {
			out = plainFormat(amount, currencyCode)
		}
	}()

	digits := formatNumber(style.tag, math.Abs(amount), style.decimals)
	sign := ""
	if amount < 0 && digits != formatNumber(style.tag, 0, style.decimals) {
		sign = "-"
	}
	sep := ""
	if style.spaced {
		sep = nbsp
	}
	if style.prefix {
		return sign + style.symbol + sep + digits
	}
	return sign + digits + sep + style.symbol
}

// plainFormat 回退格式：千分位数字、空格、原始币种代码
func plainFormat(amount float64, currencyCode string) (out string) {
	decimals := 2
	if strings.EqualFold(strings.TrimSpace(currencyCode), constants.CurrencyCOP) {
		decimals = 0
	}
	defer func() {
		if recover() != nil {
			out = decimal.NewFromFloat(amount).StringFixed(int32(decimals)) + " " + currencyCode
		}
	}()
	return formatNumber(fallbackTag, amount, decimals) + " " + currencyCode
}

func formatNumber(tag language.Tag, amount float64, decimals int) string {
	printer := message.NewPrinter(tag)
	return printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}
