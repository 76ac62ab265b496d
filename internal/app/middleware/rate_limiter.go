package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"cuca-backend/internal/error/code"
	"cuca-backend/internal/error/response"
)

// TokenBucket 简单的令牌桶限流器
type TokenBucket struct {
	rate       float64   // 每秒填充的令牌数
	capacity   int       // 桶的容量
	tokens     float64   // 当前令牌数
	lastRefill time.Time // 上次填充时间
	mu         sync.Mutex
}

// NewTokenBucket 创建新的令牌桶限流器
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow 尝试获取令牌
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	// 填充令牌
	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}

	return false
}

// limiterRegistry 按键保存限流器，键通常是客户端IP或请求路径
type limiterRegistry struct {
	mu       sync.RWMutex
	limiters map[string]*TokenBucket
	lastSeen map[string]time.Time
}

func newLimiterRegistry() *limiterRegistry {
	return &limiterRegistry{
		limiters: make(map[string]*TokenBucket),
		lastSeen: make(map[string]time.Time),
	}
}

func (r *limiterRegistry) get(key string, rate float64, burst int) *TokenBucket {
	r.mu.Lock()
	limiter, exists := r.limiters[key]
	if !exists {
		limiter = NewTokenBucket(rate, burst)
		r.limiters[key] = limiter
	}
	r.lastSeen[key] = time.Now()
	r.mu.Unlock()

	return limiter
}

// cleanup 移除一段时间未出现的键
func (r *limiterRegistry) cleanup(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, seen := range r.lastSeen {
		if seen.Before(cutoff) {
			delete(r.limiters, key)
			delete(r.lastSeen, key)
		}
	}
}

var (
	ipLimiters   = newLimiterRegistry()
	pathLimiters = newLimiterRegistry()
)

// IPRateLimiter 按客户端IP限流
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := ipLimiters.get(c.ClientIP(), rate, burst)
		if !limiter.Allow() {
			response.Fail(c, code.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

// PathRateLimiter 按请求路径限流
func PathRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := pathLimiters.get(c.Request.URL.Path, rate, burst)
		if !limiter.Allow() {
			response.Fail(c, code.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

// 定期清理过期的限流器
func init() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			ipLimiters.cleanup(1 * time.Hour)
			pathLimiters.cleanup(1 * time.Hour)
		}
	}()
}
