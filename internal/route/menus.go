package route

// MenuItem 侧边栏菜单项
type MenuItem struct {
	Path     string     `json:"path"`
	Name     string     `json:"name,omitempty"`
	Title    string     `json:"title"`
	Icon     string     `json:"icon,omitempty"`
	Rank     int        `json:"rank"`
	Children []MenuItem `json:"children,omitempty"`
}

// Menus 生成 roles 可见的菜单树
// 分区按 rank 排序；showLink 为 false 的节点及其子树不显示；
// 声明了 roles 的节点仅在持有其一时显示；子节点全部隐藏的分区不显示
func (t *Table) Menus(roles []string, tr *Translator) []MenuItem {
	var build func(n *Node) (MenuItem, bool)
	build = func(n *Node) (MenuItem, bool) {
		if !n.Meta.Visible() || !n.AllowedFor(roles) {
			return MenuItem{}, false
		}
		item := MenuItem{
			Path:  n.Path,
			Name:  n.Name,
			Title: tr.Title(n.Meta.Title),
			Icon:  n.Meta.Icon,
			Rank:  n.Meta.Rank,
		}
		for _, c := range n.Children {
			if child, ok := build(c); ok {
				item.Children = append(item.Children, child)
			}
		}
		if n.IsLayout() && len(n.Children) > 0 && len(item.Children) == 0 {
			return MenuItem{}, false
		}
		return item, true
	}

	var out []MenuItem
	for _, s := range t.Sections() {
		if item, ok := build(s); ok {
			out = append(out, item)
		}
	}
	return out
}
