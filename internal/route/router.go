package route

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vera-byte/vgo-admin/pkg/metrics"

	"go.uber.org/zap"
)

const (
	// LoginPath 登录页
	LoginPath = "/login"
	// AccessDeniedPath 无权限页
	AccessDeniedPath = "/access-denied"
	// ServerErrorPath 服务端错误页
	ServerErrorPath = "/server-error"

	maxRedirects = 8
)

var (
	// ErrForbidden 当前角色无权访问
	ErrForbidden = errors.New("route forbidden")
	// ErrUnauthenticated 未登录
	ErrUnauthenticated = errors.New("not authenticated")
)

// whiteList 未登录也可访问的路径
var whiteList = map[string]bool{
	LoginPath:        true,
	AccessDeniedPath: true,
	ServerErrorPath:  true,
}

// Principal 导航守卫所需的会话信息
type Principal interface {
	IsAuthenticated() bool
	Roles() []string
}

// Navigation 一次导航的结果
type Navigation struct {
	Path string `json:"path"`
	Node *Node  `json:"node"`
	View View   `json:"-"`
	// From 发生重定向时的原始路径
	From string `json:"from,omitempty"`
}

// Router 带守卫的导航器
type Router struct {
	table   *Table
	tabs    *Tabs
	logger  *zap.Logger
	mu      sync.Mutex
	current string
}

// NewRouter 创建导航器
func NewRouter(table *Table, tabs *Tabs, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tabs == nil {
		tabs = NewTabs()
	}
	return &Router{table: table, tabs: tabs, logger: logger, current: HomePath}
}

// Navigate 导航到 path
// 未登录访问受保护页面时当前位置切到登录页并返回 ErrUnauthenticated；
// 角色不符时切到无权限页并返回 ErrForbidden
func (r *Router) Navigate(ctx context.Context, path string, who Principal) (*Navigation, error) {
	node, err := r.lookup(path)
	if err != nil {
		metrics.NavigationsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	if !whiteList[node.Path] && (who == nil || !who.IsAuthenticated()) {
		metrics.NavigationsTotal.WithLabelValues("unauthenticated").Inc()
		r.Redirect(LoginPath)
		return nil, fmt.Errorf("%w: %s", ErrUnauthenticated, path)
	}
	if who != nil && !node.AllowedFor(who.Roles()) {
		metrics.NavigationsTotal.WithLabelValues("forbidden").Inc()
		r.Redirect(AccessDeniedPath)
		return nil, fmt.Errorf("%w: %s", ErrForbidden, path)
	}

	view, err := r.table.Resolve(ctx, node)
	if err != nil {
		metrics.NavigationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if !whiteList[node.Path] && !node.IsLayout() {
		r.tabs.Open(node)
	}
	r.Redirect(node.Path)
	metrics.NavigationsTotal.WithLabelValues("ok").Inc()

	nav := &Navigation{Path: node.Path, Node: node, View: view}
	if node.Path != path {
		nav.From = path
		if node.Match(path) {
			nav.Path = path
		}
	}
	r.logger.Debug("Navigated", zap.String("path", nav.Path), zap.String("component", node.Component))
	return nav, nil
}

// lookup 查找节点并跟随布局节点的 redirect
func (r *Router) lookup(path string) (*Node, error) {
	node, ok := r.table.Find(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	for i := 0; node.Redirect != ""; i++ {
		if i == maxRedirects {
			return nil, fmt.Errorf("too many redirects from %s", path)
		}
		next, ok := r.table.Find(node.Redirect)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, node.Redirect)
		}
		node = next
	}
	return node, nil
}

// Redirect 设置当前位置，不做守卫检查
func (r *Router) Redirect(path string) {
	r.mu.Lock()
	r.current = path
	r.mu.Unlock()
}

// ResetTabs 重置多标签页
func (r *Router) ResetTabs() {
	r.tabs.Reset()
}

// Current 当前位置
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Tabs 标签页缓存
func (r *Router) Tabs() *Tabs {
	return r.tabs
}

// Table 路由表
func (r *Router) Table() *Table {
	return r.table
}
