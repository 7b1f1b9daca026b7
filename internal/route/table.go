package route

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vera-byte/vgo-admin/pkg/metrics"

	"go.uber.org/zap"
)

var (
	// ErrNotFound 路径未注册
	ErrNotFound = errors.New("route not found")
	// ErrNoLoader 组件没有注册加载函数
	ErrNoLoader = errors.New("no loader registered for component")
)

// Table 路由表
type Table struct {
	sections []*Node
	index    map[string]*Node
	patterns []*Node
	loaders  map[string]Loader
	views    map[string]*lazyView
	logger   *zap.Logger
	mu       sync.RWMutex
}

// lazyView 单个节点的懒加载视图
type lazyView struct {
	mu   sync.Mutex
	view View
}

// NewTable 创建路由表
// logger: 日志记录器
// 返回值: *Table 路由表实例
func NewTable(logger *zap.Logger) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Table{
		index:   make(map[string]*Node),
		loaders: make(map[string]Loader),
		views:   make(map[string]*lazyView),
		logger:  logger,
	}
	t.loaders[LayoutComponent] = loadLayout
	return t
}

// Register 注册顶级路由及其子路由
// 返回值: error 路径重复时返回错误
func (t *Table) Register(section *Node) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var paths []*Node
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if n.Path == "" {
			return fmt.Errorf("route %q has empty path", n.Name)
		}
		if _, exists := t.index[n.Path]; exists {
			return fmt.Errorf("route %s already registered", n.Path)
		}
		for _, p := range paths {
			if p.Path == n.Path {
				return fmt.Errorf("route %s declared twice", n.Path)
			}
		}
		paths = append(paths, n)
		for _, c := range n.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(section); err != nil {
		return err
	}

	for _, n := range paths {
		t.index[n.Path] = n
		t.views[n.Path] = &lazyView{}
		if n.Path != "" && containsParam(n.Path) {
			t.patterns = append(t.patterns, n)
		}
	}
	t.sections = append(t.sections, section)
	sort.SliceStable(t.sections, func(i, j int) bool {
		return t.sections[i].Meta.Rank < t.sections[j].Meta.Rank
	})
	t.logger.Debug("Route registered", zap.String("path", section.Path), zap.Int("nodes", len(paths)))
	return nil
}

// RegisterAll 依次注册多个顶级路由
func (t *Table) RegisterAll(sections []*Node) error {
	for _, s := range sections {
		if err := t.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// RegisterLoader 注册组件加载函数
func (t *Table) RegisterLoader(component string, loader Loader) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loaders[component] = loader
}

// Sections 按 rank 排序的顶级路由
func (t *Table) Sections() []*Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Node, len(t.sections))
	copy(out, t.sections)
	return out
}

// Find 查找路径对应的节点
func (t *Table) Find(path string) (*Node, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if n, ok := t.index[path]; ok {
		return n, true
	}
	for _, n := range t.patterns {
		if n.Match(path) {
			return n, true
		}
	}
	return nil, false
}

// Entry 展开后的路由条目
type Entry struct {
	Node   *Node
	Depth  int
	Parent *Node
}

// Flatten 深度优先展开整棵路由树
func (t *Table) Flatten() []Entry {
	var out []Entry
	var walk func(n, parent *Node, depth int)
	walk = func(n, parent *Node, depth int) {
		out = append(out, Entry{Node: n, Depth: depth, Parent: parent})
		for _, c := range n.Children {
			walk(c, n, depth+1)
		}
	}
	for _, s := range t.Sections() {
		walk(s, nil, 0)
	}
	return out
}

// Resolve 解析节点视图
// 首次解析调用组件的 Loader 并缓存结果；Loader 失败时不缓存，下次导航重试
func (t *Table) Resolve(ctx context.Context, n *Node) (View, error) {
	t.mu.RLock()
	lv, ok := t.views[n.Path]
	loader, hasLoader := t.loaders[n.Component]
	t.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, n.Path)
	}

	lv.mu.Lock()
	defer lv.mu.Unlock()
	if lv.view != nil {
		return lv.view, nil
	}
	if !hasLoader {
		metrics.ViewLoadsTotal.WithLabelValues(n.Component, "missing").Inc()
		return nil, fmt.Errorf("%w: %s", ErrNoLoader, n.Component)
	}

	view, err := loader(ctx, n)
	if err != nil {
		metrics.ViewLoadsTotal.WithLabelValues(n.Component, "error").Inc()
		t.logger.Warn("View load failed",
			zap.String("path", n.Path),
			zap.String("component", n.Component),
			zap.Error(err))
		return nil, fmt.Errorf("load view %s: %w", n.Component, err)
	}
	metrics.ViewLoadsTotal.WithLabelValues(n.Component, "ok").Inc()
	lv.view = view
	return view, nil
}

// Resolved 节点视图是否已经解析
func (t *Table) Resolved(path string) bool {
	t.mu.RLock()
	lv, ok := t.views[path]
	t.mu.RUnlock()
	if !ok {
		return false
	}
	lv.mu.Lock()
	defer lv.mu.Unlock()
	return lv.view != nil
}

func containsParam(path string) bool {
	return strings.Contains(path, "/:")
}
