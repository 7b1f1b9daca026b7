package route

import "sync"

// HomePath 固定首页标签路径
const HomePath = "/home"

// Tag 多标签页中的一项
type Tag struct {
	Path      string `json:"path"`
	Name      string `json:"name,omitempty"`
	Title     string `json:"title"`
	KeepAlive bool   `json:"keepAlive,omitempty"`
}

// HomeTag 固定的首页标签，不可关闭
var HomeTag = Tag{Path: HomePath, Name: "Dashboard", Title: "menus.dashboard"}

// Tabs 多标签页缓存
type Tabs struct {
	mu   sync.Mutex
	tags []Tag
}

// NewTabs 创建仅含首页标签的缓存
func NewTabs() *Tabs {
	return &Tabs{tags: []Tag{HomeTag}}
}

// Open 打开标签，已存在时不重复添加
func (t *Tabs) Open(n *Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tag := range t.tags {
		if tag.Path == n.Path {
			return
		}
	}
	t.tags = append(t.tags, Tag{
		Path:      n.Path,
		Name:      n.Name,
		Title:     n.Meta.Title,
		KeepAlive: n.Meta.KeepAlive,
	})
}

// Close 关闭标签，首页标签不会被关闭
func (t *Tabs) Close(path string) bool {
	if path == HomePath {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, tag := range t.tags {
		if tag.Path == path {
			t.tags = append(t.tags[:i], t.tags[i+1:]...)
			return true
		}
	}
	return false
}

// Reset 恢复为仅含首页标签
func (t *Tabs) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tags = []Tag{HomeTag}
}

// List 当前标签快照
func (t *Tabs) List() []Tag {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Tag, len(t.tags))
	copy(out, t.tags)
	return out
}
