// Package commission 推广佣金计提与手动结算的校验规则
package commission

import (
	"errors"
	"strings"

	"github.com/vitrina-next/internal/constants"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount 结算金额必须大于 0
	ErrInvalidAmount = errors.New("payout amount must be greater than zero")
	// ErrInvalidMethod 结算方式未知或未启用
	ErrInvalidMethod = errors.New("payout method is not available")
)

var hundred = decimal.NewFromInt(100)

// KnownMethods 系统支持的全部结算方式
var KnownMethods = []string{
	constants.PaymentMethodPaypal,
	constants.PaymentMethodBankTransfer,
	constants.PaymentMethodNequiDaviplata,
	constants.PaymentMethodManual,
}

// IsKnownMethod 判断结算方式是否受支持
func IsKnownMethod(method string) bool {
	for _, known := range KnownMethods {
		if method == known {
			return true
		}
	}
	return false
}

// Accrual 计算一笔营收带来的佣金：amount * rate / 100，保留 2 位小数
// 负数营收或费率不产生佣金
func Accrual(revenue, ratePercent decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() || !ratePercent.IsPositive() {
		return decimal.Zero
	}
	return revenue.Mul(ratePercent).Div(hundred).Round(2)
}

// Deduct 结算扣减，余额最低为 0
func Deduct(balance, amount decimal.Decimal) decimal.Decimal {
	remaining := balance.Sub(amount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining.Round(2)
}

// PayoutRequest 手动结算请求
type PayoutRequest struct {
	Amount decimal.Decimal
	Method string
}

// PayoutCheck 结算校验结果中的软提示，不阻断结算
type PayoutCheck struct {
	ExceedsBalance bool `json:"exceeds_balance"` // 金额超过当前累计佣金
	BelowMinimum   bool `json:"below_minimum"`   // 金额低于最低结算额
}

// ValidatePayout 校验手动结算请求
// available 为空时接受所有已知方式；超额与低于最低额只作为提示返回
func ValidatePayout(req PayoutRequest, balance, minimum decimal.Decimal, available []string) (PayoutCheck, error) {
	if !req.Amount.IsPositive() {
		return PayoutCheck{}, ErrInvalidAmount
	}
	method := strings.TrimSpace(req.Method)
	if !IsKnownMethod(method) {
		return PayoutCheck{}, ErrInvalidMethod
	}
	if len(available) > 0 {
		allowed := false
		for _, m := range available {
			if m == method {
				allowed = true
				break
			}
		}
		if !allowed {
			return PayoutCheck{}, ErrInvalidMethod
		}
	}
	return PayoutCheck{
		ExceedsBalance: req.Amount.GreaterThan(balance),
		BelowMinimum:   minimum.IsPositive() && req.Amount.LessThan(minimum),
	}, nil
}
