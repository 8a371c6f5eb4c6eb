package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kitshop"

// 结账结果标签
const (
	CheckoutResultSuccess  = "success"
	CheckoutResultEmpty    = "empty"
	CheckoutResultConflict = "conflict"
	CheckoutResultError    = "error"
)

// 购物车变更标签
const (
	CartOpAdd    = "add"
	CartOpRemove = "remove"
	CartOpPrune  = "prune"
	CartOpClear  = "clear"
)

var (
	// Registry 应用自有的指标注册表
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	checkoutTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Checkout attempts by result.",
		},
		[]string{"result"},
	)

	checkoutRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_conflict_retries_total",
			Help:      "Checkout attempts repeated after a cart version conflict.",
		},
	)

	cartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutation_total",
			Help:      "Cart mutations by operation.",
		},
		[]string{"op"},
	)

	kitRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kit_requests_total",
			Help:      "Kit information requests submitted.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		checkoutTotal,
		checkoutRetries,
		cartMutations,
		kitRequests,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler 暴露注册表中的指标
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// GinMiddleware 记录 HTTP 请求指标，路由标签使用 gin 的路由模板
func GinMiddleware(skipPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipPath != "" && c.Request.URL.Path == skipPath {
			c.Next()
			return
		}
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)
		httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordCheckout 记录一次结账结果
func RecordCheckout(result string) {
	if result == "" {
		result = CheckoutResultError
	}
	checkoutTotal.WithLabelValues(result).Inc()
}

// RecordCheckoutRetry 记录一次冲突重试
func RecordCheckoutRetry() {
	checkoutRetries.Inc()
}

// RecordCartMutation 记录购物车变更
func RecordCartMutation(op string, count int) {
	if count <= 0 {
		return
	}
	cartMutations.WithLabelValues(op).Add(float64(count))
}

// RecordKitRequest 记录一条套件咨询
func RecordKitRequest() {
	kitRequests.Inc()
}
