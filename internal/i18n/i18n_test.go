package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTFallback(t *testing.T) {
	if got := T(LocaleES, "error.cart_empty"); got != "El carrito está vacío o no existe" {
		t.Fatalf("unexpected es message: %s", got)
	}
	if got := T(LocaleES, "error.jwt_secret_missing"); got != catalog[LocaleEN]["error.jwt_secret_missing"] {
		t.Fatalf("expected fallback to default locale, got: %s", got)
	}
	if got := T(LocaleEN, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("expected key fallback, got: %s", got)
	}
	if got := Sprintf(LocaleES, "email.order_confirmation.subject", 7); got != "Confirmación de Orden #7" {
		t.Fatalf("unexpected subject: %s", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		url    string
		header string
		want   string
	}{
		{url: "/", want: LocaleEN},
		{url: "/?lang=es", want: LocaleES},
		{url: "/", header: "zh-CN,zh;q=0.9", want: LocaleZhCN},
		{url: "/", header: "fr-FR", want: LocaleEN},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, tc.url, nil)
		if tc.header != "" {
			c.Request.Header.Set("Accept-Language", tc.header)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("url=%s header=%s: expected %s, got %s", tc.url, tc.header, tc.want, got)
		}
	}
}
