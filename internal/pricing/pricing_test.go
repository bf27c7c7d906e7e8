package pricing

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/vitrina-next/internal/constants"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTaxAndDiscount(t *testing.T) {
	quote := Calculate(Input{BasePrice: "100", TaxRate: "19", DiscountRate: "10", Currency: "USD"})

	require.True(t, quote.Valid)
	assert.Equal(t, "119.00", quote.OriginalPrice.StringFixed(2))
	assert.Equal(t, "107.10", quote.FinalPriceString())
	assert.True(t, quote.HasDiscount)
	assert.Equal(t, "10", quote.DiscountPercentage)
	assert.Equal(t, "USD", quote.Currency)
}

func TestCalculateIdentityWithoutRates(t *testing.T) {
	for _, base := range []string{"0", "1", "19.99", "1234.5", "0.01"} {
		quote := Calculate(Input{BasePrice: base, Currency: "EUR"})
		expected := decimal.RequireFromString(base)
		assert.True(t, quote.FinalPrice.Equal(expected.Round(2)), "base=%s final=%s", base, quote.FinalPrice)
		assert.False(t, quote.HasDiscount)
		assert.Empty(t, quote.DiscountPercentage)
	}
}

func TestCalculateFinalNeverAboveOriginal(t *testing.T) {
	cases := []Input{
		{BasePrice: "50", TaxRate: "0", DiscountRate: "0"},
		{BasePrice: "50", TaxRate: "8", DiscountRate: "25"},
		{BasePrice: "9.99", TaxRate: "21", DiscountRate: "100"},
		{BasePrice: "1200", TaxRate: "19", DiscountRate: "3"},
	}
	for _, in := range cases {
		quote := Calculate(in)
		assert.True(t, quote.FinalPrice.LessThanOrEqual(quote.OriginalPrice), "input=%+v", in)
	}
}

func TestCalculateNegligibleDiscountIsNotFlagged(t *testing.T) {
	// 0.01 * 5% = 0.0005，低于阈值
	quote := Calculate(Input{BasePrice: "0.01", DiscountRate: "5"})
	assert.False(t, quote.HasDiscount)
	assert.Empty(t, quote.DiscountPercentage)

	quote = Calculate(Input{BasePrice: "10", DiscountRate: "0"})
	assert.False(t, quote.HasDiscount)
}

func TestCalculateInvalidBasePriceDegradesToZero(t *testing.T) {
	for _, base := range []string{"", "abc", "12,50", "12abc", "-5"} {
		quote := Calculate(Input{BasePrice: base, TaxRate: "19", DiscountRate: "10"})
		assert.False(t, quote.Valid, "base=%q", base)
		assert.True(t, quote.FinalPrice.IsZero())
		assert.True(t, quote.OriginalPrice.IsZero())
		assert.False(t, quote.HasDiscount)
		assert.Equal(t, constants.CurrencyDefault, quote.Currency)
	}
}

func TestCalculateInvalidRatesCountAsZero(t *testing.T) {
	quote := Calculate(Input{BasePrice: "40", TaxRate: "n/a", DiscountRate: "x", Currency: "cop"})
	require.True(t, quote.Valid)
	assert.Equal(t, "40.00", quote.FinalPriceString())
	assert.Equal(t, "COP", quote.Currency)
}

func TestQuoteMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(Calculate(Input{BasePrice: "100", TaxRate: "19", DiscountRate: "10", Currency: "USD"}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"final_price":"107.10"`)
	assert.Contains(t, string(raw), `"original_price_for_display":"119.00"`)
	assert.Contains(t, string(raw), `"discount_percentage":"10"`)
}

func TestFormatKnownCurrencies(t *testing.T) {
	assert.Equal(t, "$1,234.56", Format(decimal.RequireFromString("1234.56"), "USD"))
	assert.Equal(t, "$0.50", FormatFloat(0.5, "usd"))
	assert.Equal(t, "1.234,56\u00a0€", Format(decimal.RequireFromString("1234.56"), "EUR"))

	cop := FormatFloat(1234567.4, "COP")
	assert.True(t, strings.HasPrefix(cop, "$\u00a0"), cop)
	assert.NotContains(t, cop, ",")
	assert.Contains(t, cop, "567")
}

func TestFormatUnknownCurrencyFallsBack(t *testing.T) {
	assert.Equal(t, "1,234.50 GBP", FormatFloat(1234.5, "GBP"))
	assert.Equal(t, "3.00 xyz", FormatFloat(3, "xyz"))
}

func TestFormatInvalidAmounts(t *testing.T) {
	assert.Equal(t, constants.InvalidPriceDisplay, FormatFloat(math.NaN(), "USD"))
	assert.Equal(t, constants.InvalidPriceDisplay, FormatFloat(math.Inf(1), "EUR"))
	assert.Equal(t, constants.InvalidPriceDisplay, FormatString("not-a-price", "USD"))
	assert.Equal(t, "$10.00", FormatString("10", "USD"))
}

func TestFormatNegativeAmount(t *testing.T) {
	assert.Equal(t, "-$5.25", FormatFloat(-5.25, "USD"))
}
