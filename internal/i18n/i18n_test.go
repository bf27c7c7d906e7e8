package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/vitrina-next/internal/constants"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocale(t *testing.T) {
	assert.Equal(t, constants.LocaleEsCO, NormalizeLocale(""))
	assert.Equal(t, constants.LocaleEnUS, NormalizeLocale("en-GB,en;q=0.9"))
	assert.Equal(t, constants.LocaleZhCN, NormalizeLocale("zh"))
	assert.Equal(t, constants.LocaleEsCO, NormalizeLocale("es-MX"))
	assert.Equal(t, constants.LocaleEsCO, NormalizeLocale("!!"))
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Order not found", T(constants.LocaleEnUS, "error.order_not_found"))
	assert.Equal(t, "Pedido no encontrado", T(constants.LocaleEsCO, "error.order_not_found"))
	assert.Equal(t, "Too many requests, retry in 30 seconds", Sprintf(constants.LocaleEnUS, "error.rate_limited", 30))
	assert.Equal(t, "error.unknown_key", T(constants.LocaleEnUS, "error.unknown_key"))
}

func TestResolveLocalePrefersHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN")
	c.Request.Header.Set(constants.HeaderLocale, "en-US")

	assert.Equal(t, constants.LocaleEnUS, ResolveLocale(c))

	c.Request.Header.Del(constants.HeaderLocale)
	assert.Equal(t, constants.LocaleZhCN, ResolveLocale(c))
}
