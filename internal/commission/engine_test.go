package commission

import (
	"testing"

	"github.com/vitrina-next/internal/constants"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAccrual(t *testing.T) {
	assert.Equal(t, "20.00", Accrual(dec("100"), dec("20")).StringFixed(2))
	assert.Equal(t, "3.33", Accrual(dec("16.65"), dec("20")).StringFixed(2))
	assert.True(t, Accrual(dec("-10"), dec("20")).IsZero())
	assert.True(t, Accrual(dec("10"), dec("0")).IsZero())
}

func TestDeductFloorsAtZero(t *testing.T) {
	assert.Equal(t, "30.00", Deduct(dec("80"), dec("50")).StringFixed(2))
	assert.True(t, Deduct(dec("80"), dec("80")).IsZero())
	assert.True(t, Deduct(dec("20"), dec("50")).IsZero())
	assert.False(t, Deduct(dec("20"), dec("50")).IsNegative())
}

func TestValidatePayoutRejectsBadAmount(t *testing.T) {
	for _, amount := range []string{"0", "-1"} {
		_, err := ValidatePayout(PayoutRequest{Amount: dec(amount), Method: constants.PaymentMethodPaypal}, dec("100"), dec("50"), nil)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestValidatePayoutRejectsUnknownOrDisabledMethod(t *testing.T) {
	_, err := ValidatePayout(PayoutRequest{Amount: dec("10"), Method: "crypto"}, dec("100"), dec("0"), nil)
	assert.ErrorIs(t, err, ErrInvalidMethod)

	_, err = ValidatePayout(PayoutRequest{Amount: dec("10"), Method: ""}, dec("100"), dec("0"), nil)
	assert.ErrorIs(t, err, ErrInvalidMethod)

	available := []string{constants.PaymentMethodPaypal, constants.PaymentMethodBankTransfer}
	_, err = ValidatePayout(PayoutRequest{Amount: dec("10"), Method: constants.PaymentMethodNequiDaviplata}, dec("100"), dec("0"), available)
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestValidatePayoutSoftWarnings(t *testing.T) {
	check, err := ValidatePayout(PayoutRequest{Amount: dec("120"), Method: constants.PaymentMethodManual}, dec("100"), dec("50"), nil)
	require.NoError(t, err)
	assert.True(t, check.ExceedsBalance)
	assert.False(t, check.BelowMinimum)

	check, err = ValidatePayout(PayoutRequest{Amount: dec("20"), Method: constants.PaymentMethodPaypal}, dec("100"), dec("50"), []string{constants.PaymentMethodPaypal})
	require.NoError(t, err)
	assert.False(t, check.ExceedsBalance)
	assert.True(t, check.BelowMinimum)
}
