// Package route 静态路由表
//
// 路由树在启动时声明，节点构造后不再修改。每个节点的视图由组件键对应的
// Loader 在首次导航时解析，结果在路由表生命周期内缓存；解析失败不缓存。
package route

import (
	"context"
	"strings"
)

// LayoutComponent 布局组件键，只承载子路由
const LayoutComponent = "layout"

// Meta 路由元信息
type Meta struct {
	// Title 标题，可以是 i18n 键（如 menus.home）或直接文本
	Title string `json:"title"`
	Icon string `json:"icon,omitempty"`
	Rank int    `json:"rank"`
	// ShowLink 为 nil 时视为显示
	ShowLink   *bool    `json:"showLink,omitempty"`
	ShowParent bool     `json:"showParent,omitempty"`
	KeepAlive  bool     `json:"keepAlive,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	Auths      []string `json:"auths,omitempty"`
}

// Visible 是否在菜单中显示
func (m Meta) Visible() bool {
	return m.ShowLink == nil || *m.ShowLink
}

// Node 路由节点
type Node struct {
	Path      string  `json:"path"`
	Name      string  `json:"name,omitempty"`
	Component string  `json:"component"`
	Redirect  string  `json:"redirect,omitempty"`
	Meta      Meta    `json:"meta"`
	Children  []*Node `json:"children,omitempty"`
}

// IsLayout 是否为布局节点
func (n *Node) IsLayout() bool {
	return n.Component == LayoutComponent
}

// AllowedFor 节点是否对持有 roles 的用户开放
// 未声明 Roles 的节点对所有已登录用户开放
func (n *Node) AllowedFor(roles []string) bool {
	if len(n.Meta.Roles) == 0 {
		return true
	}
	for _, want := range n.Meta.Roles {
		for _, have := range roles {
			if want == have {
				return true
			}
		}
	}
	return false
}

// Match 判断 path 是否命中该节点
// 支持 /redirect/:path(.*) 形式的通配
func (n *Node) Match(path string) bool {
	if n.Path == path {
		return true
	}
	idx := strings.Index(n.Path, "/:")
	if idx < 0 {
		return false
	}
	prefix := n.Path[:idx+1]
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	if strings.HasSuffix(n.Path, "(.*)") {
		return rest != ""
	}
	return rest != "" && !strings.Contains(rest, "/")
}

// View 解析后的视图
type View interface {
	// Component 视图对应的组件键
	Component() string
}

// Loader 视图加载函数
type Loader func(ctx context.Context, n *Node) (View, error)

// layoutView 布局组件的内建视图
type layoutView struct{}

func (layoutView) Component() string { return LayoutComponent }

func loadLayout(context.Context, *Node) (View, error) {
	return layoutView{}, nil
}

func show(b bool) *bool {
	return &b
}
