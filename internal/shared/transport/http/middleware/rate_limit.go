package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"UserCenter/internal/shared/transport"
	"UserCenter/modules/kit/errx"
	"UserCenter/modules/kit/logx"
)

const defaultClientTTL = 10 * time.Minute

type clientEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter 按客户端 IP 做令牌桶限流，空闲超过 ttl 的条目由 Cleanup 回收。
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientEntry
	rps     rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time
}

func NewRateLimiter(rps float64, burst int, ttl time.Duration) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = defaultClientTTL
	}
	return &RateLimiter{
		clients: make(map[string]*clientEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Allow 在同一个临界区里查找/创建条目并刷新访问时间。
func (rl *RateLimiter) Allow(clientIP string) bool {
	now := rl.now()

	rl.mu.Lock()
	entry, ok := rl.clients[clientIP]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[clientIP] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// Cleanup 删除空闲超过 ttl 的客户端，返回删除数量。
func (rl *RateLimiter) Cleanup() int {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for ip, entry := range rl.clients {
		if now.Sub(entry.lastAccess) > rl.ttl {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

// Run 周期性执行 Cleanup，直到 stop 关闭。
func (rl *RateLimiter) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.Cleanup()
		case <-stop:
			return
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// RateLimit 超限时返回 429 + RateLimited 业务码。
func RateLimit(rl *RateLimiter, log logx.Logger) gin.HandlerFunc {
	if log == nil {
		log = logx.Nop()
	}
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if rl.Allow(ip) {
			c.Next()
			return
		}
		transport.SetErrorReason(c.Request.Context(), "RATE_LIMITED")
		log.WithContext(c.Request.Context()).Warn("rate limit exceeded",
			zap.String("client_ip", ip),
			zap.String("path", c.Request.URL.Path),
		)
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, transport.Fail(transport.RateLimited, errx.ErrRateLimited.Msg()))
	}
}
