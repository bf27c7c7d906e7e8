// Package i18n 提供接口提示语的多语言翻译。
package i18n

import (
	"strings"
	"sync"

	"github.com/vitrina-next/internal/constants"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	buildOnce sync.Once
	cat       *catalog.Builder
	matcher   language.Matcher
	tags      []language.Tag
)

func setup() {
	buildOnce.Do(func() {
		cat = catalog.NewBuilder(catalog.Fallback(language.MustParse(constants.SupportedLocales[0])))
		tags = make([]language.Tag, 0, len(constants.SupportedLocales))
		for _, locale := range constants.SupportedLocales {
			tag := language.MustParse(locale)
			tags = append(tags, tag)
			for key, msg := range messages[locale] {
				_ = cat.SetString(tag, key, msg)
			}
		}
		matcher = language.NewMatcher(tags)
	})
}

// ResolveLocale 解析请求语言：X-Locale 优先，其次 Accept-Language，默认西班牙语
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return constants.SupportedLocales[0]
	}
	if locale := strings.TrimSpace(c.GetHeader(constants.HeaderLocale)); locale != "" {
		return NormalizeLocale(locale)
	}
	return NormalizeLocale(c.GetHeader("Accept-Language"))
}

// NormalizeLocale 将任意语言标识匹配到受支持的站点语言
func NormalizeLocale(raw string) string {
	setup()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return constants.SupportedLocales[0]
	}
	accepted, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(accepted) == 0 {
		return constants.SupportedLocales[0]
	}
	_, index, confidence := matcher.Match(accepted...)
	if confidence == language.No {
		return constants.SupportedLocales[0]
	}
	return constants.SupportedLocales[index]
}

// T 翻译消息 key，未知 key 原样返回
func T(locale, key string) string {
	return Sprintf(locale, key)
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	setup()
	tag, err := language.Parse(NormalizeLocale(locale))
	if err != nil {
		tag = tags[0]
	}
	printer := message.NewPrinter(tag, message.Catalog(cat))
	return printer.Sprintf(key, args...)
}
