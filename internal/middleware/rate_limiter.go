package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== RateLimiter 冷却限流器 ====================

// RateLimiter 按 key 冷却的限流器
// 同一 key 两次放行之间至少间隔 interval
type RateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// NewRateLimiter 创建限流器
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时记录本次时间
func (r *RateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key
func (r *RateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== 登录限流 ====================

// SignInThrottle 按登录 ID 限制登录频率
type SignInThrottle struct {
	limiter  *RateLimiter
	interval time.Duration
}

// NewSignInThrottle 创建登录限流，interval 为 0 时不限流
func NewSignInThrottle(limiter *RateLimiter, interval time.Duration) *SignInThrottle {
	return &SignInThrottle{limiter: limiter, interval: interval}
}

// Allow 是否允许本次登录尝试
func (t *SignInThrottle) Allow(loginID string) bool {
	if t == nil || t.interval <= 0 {
		return true
	}
	return t.limiter.Check(SignInKey(loginID), t.interval).Allowed
}

// SignInKey 登录限流 Key
func SignInKey(loginID string) string {
	return fmt.Sprintf("signin:%s", loginID)
}

// ==================== Gin 中间件 ====================

// RateLimitByIP 按客户端 IP 限流，超限返回 429
func RateLimitByIP(limiter *RateLimiter, scope string, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if interval <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())
		result := limiter.Check(key, interval)
		if !result.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": errTooManyRequests})
			return
		}

		c.Next()
	}
}
