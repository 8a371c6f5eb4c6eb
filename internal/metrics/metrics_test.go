package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCheckoutCountsByResult(t *testing.T) {
	before := testutil.ToFloat64(checkoutTotal.WithLabelValues(CheckoutResultConflict))
	RecordCheckout(CheckoutResultConflict)
	RecordCheckout(CheckoutResultConflict)
	after := testutil.ToFloat64(checkoutTotal.WithLabelValues(CheckoutResultConflict))
	if after-before != 2 {
		t.Fatalf("expected conflict counter to grow by 2, got %v", after-before)
	}
}

func TestRecordCartMutationIgnoresNonPositive(t *testing.T) {
	before := testutil.ToFloat64(cartMutations.WithLabelValues(CartOpPrune))
	RecordCartMutation(CartOpPrune, 0)
	RecordCartMutation(CartOpPrune, 3)
	after := testutil.ToFloat64(cartMutations.WithLabelValues(CartOpPrune))
	if after-before != 3 {
		t.Fatalf("expected prune counter to grow by 3, got %v", after-before)
	}
}

func TestRecordKitRequest(t *testing.T) {
	before := testutil.ToFloat64(kitRequests)
	RecordKitRequest()
	if after := testutil.ToFloat64(kitRequests); after-before != 1 {
		t.Fatalf("expected kit request counter to grow by 1, got %v", after-before)
	}
}

func TestGinMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware("/metrics"))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(Handler()))

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/items/:id", "204"))
	if got < 1 {
		t.Fatalf("expected request counted under route template, got %v", got)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics endpoint status: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "kitshop_http_requests_total") {
		t.Fatalf("metrics output missing http counter")
	}
}
