package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleEN   = "en"
	LocaleES   = "es"
	LocaleZhCN = "zh-CN"

	// DefaultLocale 默认语言
	DefaultLocale = LocaleEN

	localeQueryKey  = "lang"
	localeHeaderKey = "Accept-Language"
)

// SupportedLocales 支持的语言列表
var SupportedLocales = []string{LocaleEN, LocaleES, LocaleZhCN}

// T 返回指定语言的文案，缺失时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if msgs, ok := catalog[NormalizeLocale(locale)]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回格式化后的文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// NormalizeLocale 规范化语言标识，未知语言返回默认语言
func NormalizeLocale(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultLocale
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return LocaleZhCN
	case strings.HasPrefix(lower, "es"):
		return LocaleES
	case strings.HasPrefix(lower, "en"):
		return LocaleEN
	}
	return DefaultLocale
}

// ResolveLocale 从请求中解析语言（query lang 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query(localeQueryKey)); lang != "" {
		return NormalizeLocale(lang)
	}
	header := c.GetHeader(localeHeaderKey)
	if header == "" {
		return DefaultLocale
	}
	first := strings.Split(header, ",")[0]
	first = strings.Split(first, ";")[0]
	return NormalizeLocale(first)
}
