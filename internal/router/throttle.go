package router

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kitshop/internal/cache"
	"github.com/kitshop/internal/config"
	handlershared "github.com/kitshop/internal/http/handlers/shared"
	"github.com/kitshop/internal/http/response"
	"github.com/kitshop/internal/i18n"
	"github.com/kitshop/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const maxLocalBuckets = 10000

// ThrottlePolicy 命名限流策略：同一 key 在 Window 内最多 Limit 次
type ThrottlePolicy struct {
	Name   string
	Window time.Duration
	Limit  int
	Key    func(*gin.Context) string
}

func (p ThrottlePolicy) active() bool {
	return p.Window > 0 && p.Limit > 0
}

func policyFrom(name string, cfg config.RateLimitConfig, key func(*gin.Context) string) ThrottlePolicy {
	return ThrottlePolicy{
		Name:   name,
		Window: time.Duration(cfg.WindowSeconds) * time.Second,
		Limit:  cfg.MaxAttempts,
		Key:    key,
	}
}

// LoginPolicy 登录：按邮箱 + IP
func LoginPolicy(cfg config.SecurityConfig) ThrottlePolicy {
	return policyFrom("login", cfg.LoginRateLimit, keyByJSONFieldAndIP("email"))
}

// CheckoutPolicy 结账：按用户
func CheckoutPolicy(cfg config.SecurityConfig) ThrottlePolicy {
	return policyFrom("checkout", cfg.CheckoutRateLimit, keyByUser)
}

// KitRequestPolicy 套件咨询：按 IP
func KitRequestPolicy(cfg config.SecurityConfig) ThrottlePolicy {
	return policyFrom("kit_request", cfg.KitRequestRateLimit, keyByIP)
}

type verdict struct {
	allowed    bool
	retryAfter int
}

// windowVerdict 固定窗口判定：count 为窗口内第几次请求，ttl 为窗口剩余时间
func windowVerdict(count int64, ttl time.Duration, p ThrottlePolicy) verdict {
	if count <= int64(p.Limit) {
		return verdict{allowed: true}
	}
	wait := ttl
	if wait <= 0 || wait > p.Window {
		wait = p.Window
	}
	return verdict{retryAfter: ceilSeconds(wait)}
}

func ceilSeconds(d time.Duration) int {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// Throttler 限流器：Redis 可用时跨实例计数，否则使用进程内令牌桶
type Throttler struct {
	store *cache.Store

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewThrottler 创建限流器
func NewThrottler(store *cache.Store) *Throttler {
	return &Throttler{
		store:   store,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Guard 按策略限流的中间件
func (t *Throttler) Guard(policy ThrottlePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !policy.active() {
			c.Next()
			return
		}
		key := ""
		if policy.Key != nil {
			key = strings.TrimSpace(policy.Key(c))
		}
		if key == "" {
			key = c.ClientIP()
		}

		v := t.check(c, policy, key)
		if v.allowed {
			c.Next()
			return
		}
		logger.Warnw("request_throttled", "policy", policy.Name, "key", key, "retry_after", v.retryAfter)
		c.Header("Retry-After", strconv.Itoa(v.retryAfter))
		response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), "error.rate_limited", v.retryAfter))
		c.Abort()
	}
}

func (t *Throttler) check(c *gin.Context, policy ThrottlePolicy, key string) verdict {
	if t.store.Enabled() {
		v, err := t.checkShared(c, policy, key)
		if err == nil {
			return v
		}
		logger.Warnw("throttle_redis_failed", "policy", policy.Name, "error", err)
	}
	return t.checkLocal(policy, key)
}

func (t *Throttler) checkShared(c *gin.Context, policy ThrottlePolicy, key string) (verdict, error) {
	redisKey := t.store.Key("rate", policy.Name, key)
	values, err := fixedWindowScript.Run(c.Request.Context(), t.store.Redis(), []string{redisKey}, policy.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return verdict{}, err
	}
	if len(values) < 2 {
		return verdict{}, redis.Nil
	}
	return windowVerdict(values[0], time.Duration(values[1])*time.Millisecond, policy), nil
}

func (t *Throttler) checkLocal(policy ThrottlePolicy, key string) verdict {
	reservation := t.bucket(policy, key).Reserve()
	if !reservation.OK() {
		return verdict{retryAfter: ceilSeconds(policy.Window)}
	}
	delay := reservation.Delay()
	if delay <= 0 {
		return verdict{allowed: true}
	}
	reservation.Cancel()
	return verdict{retryAfter: ceilSeconds(delay)}
}

func (t *Throttler) bucket(policy ThrottlePolicy, key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := policy.Name + "|" + key
	if limiter, ok := t.buckets[id]; ok {
		return limiter
	}
	if len(t.buckets) >= maxLocalBuckets {
		t.buckets = make(map[string]*rate.Limiter)
	}
	limiter := rate.NewLimiter(rate.Every(policy.Window/time.Duration(policy.Limit)), policy.Limit)
	t.buckets[id] = limiter
	return limiter
}

func keyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// keyByUser 已鉴权用户按 ID，匿名请求回退到 IP
func keyByUser(c *gin.Context) string {
	if value, ok := c.Get(handlershared.ContextUserID); ok {
		if uid, ok := value.(uint); ok && uid > 0 {
			return "user:" + strconv.FormatUint(uint64(uid), 10)
		}
	}
	return c.ClientIP()
}

func keyByJSONFieldAndIP(field string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// peekJSONField 读取 JSON 字段后恢复请求体
func peekJSONField(c *gin.Context, field string) string {
	if c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
