// Package session 后台登录会话
//
// Store 持有当前登录用户的令牌、身份与权限，并把完整记录以 UserKey 写入持久化存储。
// 状态机: Anonymous -> Authenticating -> Authenticated，登出回到 Anonymous。
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vera-byte/vgo-admin/internal/storage"
	"github.com/vera-byte/vgo-admin/pkg/api"
	"github.com/vera-byte/vgo-admin/pkg/metrics"
	"github.com/vera-byte/vgo-admin/pkg/model"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	// UserKey 会话记录在持久化存储中的键
	UserKey = "user-info"
	// DefaultTTL 令牌不是 JWT 时的默认有效期
	DefaultTTL = 7 * 24 * time.Hour
	// DefaultRole 后台未返回分组时的角色
	DefaultRole = "admin"
	// AllPermissions 按钮级通配权限
	AllPermissions = "*:*:*"

	loginFailedMessage = "登录失败"
)

// ErrRefreshRejected 后台拒绝刷新令牌
var ErrRefreshRejected = errors.New("refresh token rejected")

// State 会话状态
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DataInfo 持久化的会话记录
type DataInfo struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Expires      int64    `json:"expires"` // 毫秒时间戳
	Avatar       string   `json:"avatar"`
	Username     string   `json:"username"`
	Nickname     string   `json:"nickname"`
	Roles        []string `json:"roles"`
	Permissions  []string `json:"permissions"`
	UserEmail    string   `json:"userEmail"`
}

// ExpiresAt 过期时间
func (d DataInfo) ExpiresAt() time.Time {
	if d.Expires <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(d.Expires)
}

// Authenticator 登录与刷新接口，*api.API 实现了它
type Authenticator interface {
	Login(ctx context.Context, p api.LoginParams) (*model.Envelope[api.LoginData], error)
	RefreshToken(ctx context.Context, p api.RefreshTokenParams) (*model.Result[api.RefreshData], error)
}

// Navigator 登出时需要的导航操作
type Navigator interface {
	ResetTabs()
	Redirect(path string)
}

// LoginPath 登出后跳转的登录页
const LoginPath = "/login"

// LoginResult 登录结果
// 业务失败不是 error，Success 为 false 且 Message 为后台提示
type LoginResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    *api.LoginData `json:"data,omitempty"`
}

// Store 会话存储
type Store struct {
	mu           sync.RWMutex
	state        State
	info         DataInfo
	googleStatus int

	storage storage.Storage
	auth    Authenticator
	nav     Navigator
	logger  *zap.Logger
	now     func() time.Time
}

// Option Store 选项
type Option func(*Store)

// WithNavigator 设置登出时使用的导航器
func WithNavigator(nav Navigator) Option {
	return func(s *Store) { s.nav = nav }
}

// WithLogger 设置日志记录器
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock 设置时间来源
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore 创建会话存储，并从持久化存储同步恢复上次的会话
// 恢复时不校验过期时间
func NewStore(ctx context.Context, st storage.Storage, auth Authenticator, opts ...Option) (*Store, error) {
	s := &Store{
		storage: st,
		auth:    auth,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	var info DataInfo
	err := st.Get(ctx, UserKey, &info)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("restore session: %w", err)
	default:
		s.info = info
		if info.AccessToken != "" {
			s.state = Authenticated
		}
		s.logger.Debug("Session restored", zap.String("username", info.Username), zap.Stringer("state", s.state))
	}
	return s, nil
}

// SetNavigator 设置导航器，用于导航器晚于会话创建的场景
func (s *Store) SetNavigator(nav Navigator) {
	s.mu.Lock()
	s.nav = nav
	s.mu.Unlock()
}

// LoginByUsername 账号密码登录
// 传输失败返回 error 且状态回到登录前；业务失败返回 Success=false 且不写存储
func (s *Store) LoginByUsername(ctx context.Context, p api.LoginParams) (*LoginResult, error) {
	s.mu.Lock()
	prev := s.state
	s.state = Authenticating
	s.mu.Unlock()

	restore := func() {
		s.mu.Lock()
		if s.state == Authenticating {
			s.state = prev
		}
		s.mu.Unlock()
	}

	resp, err := s.auth.Login(ctx, p)
	if err != nil {
		restore()
		metrics.SessionEventsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("login %s: %w", p.Username, err)
	}
	if !resp.OK() {
		restore()
		metrics.SessionEventsTotal.WithLabelValues("login", "rejected").Inc()
		msg := resp.Msg
		if msg == "" {
			msg = loginFailedMessage
		}
		s.logger.Info("Login rejected", zap.String("username", p.Username), zap.Int("code", resp.Code))
		return &LoginResult{Success: false, Message: msg}, nil
	}

	data := resp.Data
	info := s.newInfo(data)
	if err := s.storage.Set(ctx, UserKey, info); err != nil {
		restore()
		metrics.SessionEventsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.info = info
	s.state = Authenticated
	if data.GoogleStatus != nil {
		s.googleStatus = *data.GoogleStatus
	}
	s.mu.Unlock()

	metrics.SessionEventsTotal.WithLabelValues("login", "ok").Inc()
	s.logger.Info("Logged in", zap.String("username", info.Username), zap.Strings("roles", info.Roles))
	return &LoginResult{Success: true, Message: resp.Msg, Data: &data}, nil
}

// newInfo 由登录结果构造会话记录
func (s *Store) newInfo(data api.LoginData) DataInfo {
	nickname := data.GroupName
	if nickname == "" {
		nickname = data.Username
	}
	role := data.GroupName
	if role == "" {
		role = DefaultRole
	}
	return DataInfo{
		AccessToken:  data.Token,
		RefreshToken: data.Token,
		Expires:      s.expiresFor(data.Token).UnixMilli(),
		Avatar:       data.Avatar,
		Username:     data.Username,
		Nickname:     nickname,
		Roles:        []string{role},
		Permissions:  []string{AllPermissions},
		UserEmail:    data.Email,
	}
}

// expiresFor JWT 取 exp，否则为当前时间加 DefaultTTL
func (s *Store) expiresFor(token string) time.Time {
	if exp, ok := tokenExpiry(token); ok {
		return exp
	}
	return s.now().Add(DefaultTTL)
}

// tokenExpiry 不校验签名读取 JWT 的 exp
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// LogOut 前端登出，不调用后台接口
// 无论当前状态如何都会清空存储、重置内存字段、重置标签页并跳转登录页
func (s *Store) LogOut(ctx context.Context) error {
	s.mu.Lock()
	username := s.info.Username
	s.info = DataInfo{}
	s.state = Anonymous
	s.googleStatus = 0
	nav := s.nav
	s.mu.Unlock()

	err := s.storage.Remove(ctx, UserKey)
	if nav != nil {
		nav.ResetTabs()
		nav.Redirect(LoginPath)
	}
	if err != nil {
		metrics.SessionEventsTotal.WithLabelValues("logout", "error").Inc()
		return fmt.Errorf("clear session: %w", err)
	}
	metrics.SessionEventsTotal.WithLabelValues("logout", "ok").Inc()
	s.logger.Info("Logged out", zap.String("username", username))
	return nil
}

// HandRefreshToken 刷新令牌
// 成功时覆盖存储中的令牌字段，身份信息保持不变；失败时由调用方决定是否登出
func (s *Store) HandRefreshToken(ctx context.Context, refreshToken string) (*model.Result[api.RefreshData], error) {
	if refreshToken == "" {
		s.mu.RLock()
		refreshToken = s.info.RefreshToken
		s.mu.RUnlock()
	}

	res, err := s.auth.RefreshToken(ctx, api.RefreshTokenParams{RefreshToken: refreshToken})
	if err != nil {
		metrics.SessionEventsTotal.WithLabelValues("refresh", "error").Inc()
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	if !res.Success {
		metrics.SessionEventsTotal.WithLabelValues("refresh", "rejected").Inc()
		if res.Message != "" {
			return res, fmt.Errorf("%w: %s", ErrRefreshRejected, res.Message)
		}
		return res, ErrRefreshRejected
	}

	s.mu.Lock()
	info := s.info
	if res.Data.AccessToken != "" {
		info.AccessToken = res.Data.AccessToken
	}
	if res.Data.RefreshToken != "" {
		info.RefreshToken = res.Data.RefreshToken
	}
	switch {
	case !res.Data.Expires.IsZero():
		info.Expires = res.Data.Expires.UnixMilli()
	default:
		info.Expires = s.expiresFor(info.AccessToken).UnixMilli()
	}
	s.mu.Unlock()

	if err := s.storage.Set(ctx, UserKey, info); err != nil {
		metrics.SessionEventsTotal.WithLabelValues("refresh", "error").Inc()
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.info = info
	if info.AccessToken != "" {
		s.state = Authenticated
	}
	s.mu.Unlock()

	metrics.SessionEventsTotal.WithLabelValues("refresh", "ok").Inc()
	s.logger.Debug("Token refreshed", zap.Time("expires", info.ExpiresAt()))
	return res, nil
}

// SetUserEmail 更新当前用户邮箱，已有会话记录时同步写入存储
func (s *Store) SetUserEmail(ctx context.Context, email string) error {
	s.mu.Lock()
	s.info.UserEmail = email
	s.mu.Unlock()

	var stored DataInfo
	err := s.storage.Get(ctx, UserKey, &stored)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	stored.UserEmail = email
	return s.storage.Set(ctx, UserKey, stored)
}

// AccessToken 实现 client.TokenSource
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info.AccessToken
}

// State 当前状态
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated 是否已登录
func (s *Store) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// Roles 当前角色
func (s *Store) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.info.Roles...)
}

// HasRole 是否持有任一角色
func (s *Store) HasRole(roles ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, want := range roles {
		for _, have := range s.info.Roles {
			if want == have {
				return true
			}
		}
	}
	return false
}

// HasPermission 按钮级权限判断，*:*:* 视为全部权限
func (s *Store) HasPermission(perm string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.info.Permissions {
		if p == AllPermissions || p == perm {
			return true
		}
	}
	return false
}

// IsExpired 令牌是否已过期，未登录视为过期
func (s *Store) IsExpired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.info.AccessToken == "" {
		return true
	}
	return !s.now().Before(s.info.ExpiresAt())
}

// GoogleStatus 登录时后台返回的谷歌验证状态
func (s *Store) GoogleStatus() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.googleStatus
}

// Snapshot 当前会话记录的副本
func (s *Store) Snapshot() DataInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info := s.info
	info.Roles = append([]string(nil), s.info.Roles...)
	info.Permissions = append([]string(nil), s.info.Permissions...)
	return info
}
