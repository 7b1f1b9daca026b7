package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/vera-byte/vgo-admin/pkg/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LoginLimiter 登录尝试限制器
type LoginLimiter interface {
	// Allow 记录一次尝试并返回是否允许
	Allow(ctx context.Context, key string) (bool, error)
	// Remaining 窗口内剩余次数
	Remaining(ctx context.Context, key string) (int, error)
	// Reset 清除 key 的记录，登录成功后调用
	Reset(ctx context.Context, key string) error
}

// NewLoginLimiter 创建登录限制器
// limit 为 0 时不限制；client 不为空时使用 Redis，多个导航服务实例共享计数
func NewLoginLimiter(limit int, window time.Duration, client *redis.Client, prefix string) LoginLimiter {
	switch {
	case limit <= 0:
		return noopLimiter{}
	case client != nil:
		return NewRedisLoginLimiter(client, limit, window, prefix)
	default:
		return NewMemoryLoginLimiter(limit, window)
	}
}

// allowScript 滑动窗口计数，成员带唯一后缀避免同一毫秒内的尝试被合并
const allowScript = `
local key = KEYS[1]
local window_start = tonumber(ARGV[1])
local now = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, window_start)
local current = redis.call('ZCARD', key)
if current >= limit then
	return 0
end
redis.call('ZADD', key, now, now .. ':' .. ARGV[4])
redis.call('PEXPIRE', key, ARGV[5])
return 1
`

// RedisLoginLimiter Redis 实现
type RedisLoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisLoginLimiter 创建 Redis 登录限制器
func NewRedisLoginLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RedisLoginLimiter {
	if prefix == "" {
		prefix = "vgo-admin:login"
	}
	return &RedisLoginLimiter{client: client, limit: limit, window: window, prefix: prefix, now: time.Now}
}

// Allow 实现 LoginLimiter
func (r *RedisLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := r.now().UnixMilli()
	res, err := r.client.Eval(ctx, allowScript, []string{r.getKey(key)},
		now-r.window.Milliseconds(), now, r.limit, uuid.NewString(), r.window.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("login limiter: %w", err)
	}
	return res == 1, nil
}

// Remaining 实现 LoginLimiter
func (r *RedisLoginLimiter) Remaining(ctx context.Context, key string) (int, error) {
	fullKey := r.getKey(key)
	windowStart := r.now().UnixMilli() - r.window.Milliseconds()
	if err := r.client.ZRemRangeByScore(ctx, fullKey, "0", strconv.FormatInt(windowStart, 10)).Err(); err != nil {
		return 0, fmt.Errorf("login limiter: %w", err)
	}
	n, err := r.client.ZCard(ctx, fullKey).Result()
	if err != nil {
		return 0, fmt.Errorf("login limiter: %w", err)
	}
	return max(r.limit-int(n), 0), nil
}

// Reset 实现 LoginLimiter
func (r *RedisLoginLimiter) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.getKey(key)).Err()
}

func (r *RedisLoginLimiter) getKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

// MemoryLoginLimiter 进程内实现
type MemoryLoginLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	attempts map[string][]time.Time
	now      func() time.Time
}

// NewMemoryLoginLimiter 创建进程内登录限制器
func NewMemoryLoginLimiter(limit int, window time.Duration) *MemoryLoginLimiter {
	return &MemoryLoginLimiter{
		limit:    limit,
		window:   window,
		attempts: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// prune 丢弃窗口外的记录，调用方持有锁
func (m *MemoryLoginLimiter) prune(key string) []time.Time {
	windowStart := m.now().Add(-m.window)
	kept := m.attempts[key][:0]
	for _, at := range m.attempts[key] {
		if at.After(windowStart) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(m.attempts, key)
		return nil
	}
	m.attempts[key] = kept
	return kept
}

// Allow 实现 LoginLimiter
func (m *MemoryLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prune(key)) >= m.limit {
		return false, nil
	}
	m.attempts[key] = append(m.attempts[key], m.now())
	return true, nil
}

// Remaining 实现 LoginLimiter
func (m *MemoryLoginLimiter) Remaining(ctx context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return max(m.limit-len(m.prune(key)), 0), nil
}

// Reset 实现 LoginLimiter
func (m *MemoryLoginLimiter) Reset(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.attempts, key)
	m.mu.Unlock()
	return nil
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (bool, error)    { return true, nil }
func (noopLimiter) Remaining(context.Context, string) (int, error) { return -1, nil }
func (noopLimiter) Reset(context.Context, string) error            { return nil }

// KeyFunc 生成限制 key
type KeyFunc func(c *gin.Context) string

// ClientIPKey 按客户端 IP 计数
func ClientIPKey(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// LimitLogin 登录限流中间件
// 超出限制返回 429；限制器故障时放行并交由后台判断
func LimitLogin(limiter LoginLimiter, keyFunc KeyFunc) gin.HandlerFunc {
	if keyFunc == nil {
		keyFunc = ClientIPKey
	}

	return func(c *gin.Context) {
		key := keyFunc(c)
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			_ = c.Error(err)
			c.Next()
			return
		}

		if remaining, err := limiter.Remaining(c.Request.Context(), key); err == nil && remaining >= 0 {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, model.ErrorResponse{
				Code:    http.StatusTooManyRequests,
				Message: "Too many login attempts",
			})
			return
		}

		c.Set(limitKey, key)
		c.Next()
	}
}

const limitKey = "login_limit_key"

// ResetLoginLimit 登录成功后清除当前请求的计数
func ResetLoginLimit(c *gin.Context, limiter LoginLimiter) {
	if key := c.GetString(limitKey); key != "" {
		_ = limiter.Reset(c.Request.Context(), key)
	}
}
