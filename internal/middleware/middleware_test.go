package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSession struct {
	authenticated bool
	expired       bool
	roles         []string
}

func (f fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f fakeSession) IsExpired() bool       { return f.expired }
func (f fakeSession) Roles() []string       { return f.roles }

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "10.0.0.1:5555"
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name    string
		session fakeSession
		want    int
	}{
		{"anonymous", fakeSession{}, http.StatusUnauthorized},
		{"expired", fakeSession{authenticated: true, expired: true}, http.StatusUnauthorized},
		{"active", fakeSession{authenticated: true, roles: []string{"admin"}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", RequireSession(tt.session), func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			})
			assert.Equal(t, tt.want, serve(r, http.MethodGet, "/x").Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/finance", RequireSession(fakeSession{authenticated: true, roles: []string{"finance"}}), RequireRole("admin", "finance"), ok)
	r.GET("/admin", RequireSession(fakeSession{authenticated: true, roles: []string{"finance"}}), RequireRole("admin"), ok)
	r.GET("/bare", RequireRole("admin"), ok)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/finance").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/bare").Code)
}

func TestMemoryLoginLimiter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLoginLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		allowed, err := l.Allow(ctx, "ip:1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow(ctx, "ip:1")
	assert.False(t, allowed)
	remaining, _ := l.Remaining(ctx, "ip:1")
	assert.Equal(t, 0, remaining)

	allowed, _ = l.Allow(ctx, "ip:2")
	assert.True(t, allowed, "keys are independent")

	now = now.Add(61 * time.Second)
	remaining, _ = l.Remaining(ctx, "ip:1")
	assert.Equal(t, 2, remaining, "window slides")

	_, _ = l.Allow(ctx, "ip:1")
	require.NoError(t, l.Reset(ctx, "ip:1"))
	remaining, _ = l.Remaining(ctx, "ip:1")
	assert.Equal(t, 2, remaining)
}

func TestNewLoginLimiter(t *testing.T) {
	assert.IsType(t, noopLimiter{}, NewLoginLimiter(0, time.Minute, nil, ""))
	assert.IsType(t, &MemoryLoginLimiter{}, NewLoginLimiter(5, time.Minute, nil, ""))
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	assert.IsType(t, &RedisLoginLimiter{}, NewLoginLimiter(5, time.Minute, client, ""))
}

func TestLimitLogin(t *testing.T) {
	limiter := NewMemoryLoginLimiter(1, time.Minute)
	r := gin.New()
	r.POST("/login", LimitLogin(limiter, nil), func(c *gin.Context) {
		if c.Query("ok") == "1" {
			ResetLoginLimit(c, limiter)
		}
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodPost, "/login")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = serve(r, http.MethodPost, "/login")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many login attempts")

	require.NoError(t, limiter.Reset(context.Background(), "ip:10.0.0.1"))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/login?ok=1").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/login").Code, "successful login clears the count")
}

// RedisLoginLimiterTestSuite 使用 miniredis 验证 Lua 脚本
type RedisLoginLimiterTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	limiter *RedisLoginLimiter
}

func (s *RedisLoginLimiterTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.limiter = NewRedisLoginLimiter(s.client, 3, time.Minute, "")
}

func (s *RedisLoginLimiterTestSuite) TearDownTest() {
	s.client.Close()
}

func (s *RedisLoginLimiterTestSuite) TestAllowUntilLimit() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		allowed, err := s.limiter.Allow(ctx, "ip:1")
		s.Require().NoError(err)
		s.True(allowed)
	}
	allowed, err := s.limiter.Allow(ctx, "ip:1")
	s.Require().NoError(err)
	s.False(allowed)

	remaining, err := s.limiter.Remaining(ctx, "ip:1")
	s.Require().NoError(err)
	s.Equal(0, remaining)
	s.True(s.mr.Exists("vgo-admin:login:ip:1"))
}

func (s *RedisLoginLimiterTestSuite) TestWindowSlides() {
	ctx := context.Background()
	now := time.Now()
	s.limiter.now = func() time.Time { return now }
	for i := 0; i < 3; i++ {
		_, _ = s.limiter.Allow(ctx, "ip:1")
	}

	now = now.Add(2 * time.Minute)
	allowed, err := s.limiter.Allow(ctx, "ip:1")
	s.Require().NoError(err)
	s.True(allowed)
	remaining, _ := s.limiter.Remaining(ctx, "ip:1")
	s.Equal(2, remaining)
}

func (s *RedisLoginLimiterTestSuite) TestReset() {
	ctx := context.Background()
	_, _ = s.limiter.Allow(ctx, "ip:1")
	s.Require().NoError(s.limiter.Reset(ctx, "ip:1"))
	s.False(s.mr.Exists("vgo-admin:login:ip:1"))
}

func TestRedisLoginLimiterTestSuite(t *testing.T) {
	suite.Run(t, new(RedisLoginLimiterTestSuite))
}
