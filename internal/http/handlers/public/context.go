package public

import (
	"strings"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// getCartKey 读取购物车 key，缺失时直接返回错误响应
func getCartKey(c *gin.Context) (string, bool) {
	key := strings.TrimSpace(c.GetHeader(constants.HeaderCartKey))
	if key == "" {
		respondError(c, response.CodeBadRequest, "error.cart_key_required", nil)
		return "", false
	}
	return key, true
}

func displayCurrency(c *gin.Context) string {
	currency := strings.ToUpper(strings.TrimSpace(c.Query("currency")))
	if currency == "" {
		return constants.CurrencyDefault
	}
	return currency
}
