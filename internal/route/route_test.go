package route

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView string

func (v stubView) Component() string { return string(v) }

type principal struct {
	authenticated bool
	roles         []string
}

func (p principal) IsAuthenticated() bool { return p.authenticated }
func (p principal) Roles() []string       { return p.roles }

var admin = principal{authenticated: true, roles: []string{"admin"}}

func newTestTable(t *testing.T, opts Options) *Table {
	t.Helper()
	table := NewTable(nil)
	require.NoError(t, Build(table, opts))
	for _, e := range table.Flatten() {
		if e.Node.IsLayout() {
			continue
		}
		component := e.Node.Component
		table.RegisterLoader(component, func(context.Context, *Node) (View, error) {
			return stubView(component), nil
		})
	}
	return table
}

func TestSections_SortedByRank(t *testing.T) {
	table := newTestTable(t, Options{})
	sections := table.Sections()

	require.NotEmpty(t, sections)
	assert.Equal(t, "/", sections[0].Path)
	for i := 1; i < len(sections); i++ {
		assert.LessOrEqual(t, sections[i-1].Meta.Rank, sections[i].Meta.Rank)
	}
	assert.Equal(t, "/login", sections[len(sections)-5].Path)
}

func TestRegister_DuplicatePath(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Register(&Node{Path: "/a", Component: LayoutComponent}))

	err := table.Register(&Node{Path: "/b", Component: LayoutComponent, Children: []*Node{{Path: "/a"}}})
	require.Error(t, err)
	_, ok := table.Find("/b")
	assert.False(t, ok, "failed registration must not be partially indexed")
}

func TestFind(t *testing.T) {
	table := newTestTable(t, Options{})

	n, ok := table.Find("/merchant/adjustment-record")
	require.True(t, ok)
	assert.Equal(t, "AdjustmentRecord", n.Name)
	assert.True(t, n.Meta.KeepAlive)

	n, ok = table.Find("/redirect/player/transfer")
	require.True(t, ok)
	assert.Equal(t, "Redirect", n.Name)

	_, ok = table.Find("/redirect/")
	assert.False(t, ok)
	_, ok = table.Find("/nope")
	assert.False(t, ok)
}

func TestMenus(t *testing.T) {
	table := newTestTable(t, Options{})
	menus := table.Menus([]string{"admin"}, NewTranslator("zh-CN"))

	require.NotEmpty(t, menus)
	assert.Equal(t, "首页", menus[0].Title)
	for _, m := range menus {
		assert.NotEqual(t, "/login", m.Path)
		assert.NotEqual(t, "/profile", m.Path)
	}

	var player MenuItem
	for _, m := range menus {
		if m.Path == "/player" {
			player = m
		}
	}
	require.Len(t, player.Children, 2)
	assert.Equal(t, "转账钱包", player.Children[0].Title)
	assert.Len(t, player.Children[0].Children, 2)
}

func TestMenus_HideHome(t *testing.T) {
	table := newTestTable(t, Options{HideHome: true})
	menus := table.Menus(nil, NewTranslator("en"))

	for _, m := range menus {
		assert.NotEqual(t, "/", m.Path, "home section has no visible children")
		assert.NotEqual(t, "/system", m.Path)
		if m.Path == "/player" {
			require.Len(t, m.Children, 1)
			assert.Equal(t, "Transfer Wallet", m.Children[0].Title)
		}
	}
}

func TestMenus_Roles(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Register(&Node{
		Path: "/ops", Component: LayoutComponent, Meta: Meta{Title: "ops"},
		Children: []*Node{
			{Path: "/ops/open", Component: "ops/open", Meta: Meta{Title: "open"}},
			{Path: "/ops/root", Component: "ops/root", Meta: Meta{Title: "root", Roles: []string{"root"}}},
		},
	}))

	menus := table.Menus([]string{"admin"}, nil)
	require.Len(t, menus, 1)
	require.Len(t, menus[0].Children, 1)
	assert.Equal(t, "/ops/open", menus[0].Children[0].Path)

	menus = table.Menus([]string{"root"}, nil)
	assert.Len(t, menus[0].Children, 2)
}

func TestTranslator(t *testing.T) {
	assert.Equal(t, "Loading...", NewTranslator("en-US").Title("status.pureLoad"))
	assert.Equal(t, "加载中...", NewTranslator("").Title("status.pureLoad"))
	assert.Equal(t, "仪表盘", NewTranslator("fr").Title("menus.dashboard"))
	assert.Equal(t, "代理管理", NewTranslator("en").Title("代理管理"))
	assert.Equal(t, "menus.unknown", NewTranslator("en").Title("menus.unknown"))
}

func TestResolve_CachesView(t *testing.T) {
	table := NewTable(nil)
	node := &Node{Path: "/x", Component: "x"}
	require.NoError(t, table.Register(node))

	var calls int32
	table.RegisterLoader("x", func(context.Context, *Node) (View, error) {
		atomic.AddInt32(&calls, 1)
		return stubView("x"), nil
	})

	for i := 0; i < 3; i++ {
		v, err := table.Resolve(context.Background(), node)
		require.NoError(t, err)
		assert.Equal(t, "x", v.Component())
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.True(t, table.Resolved("/x"))
}

func TestResolve_FailureNotCached(t *testing.T) {
	table := NewTable(nil)
	node := &Node{Path: "/x", Component: "x"}
	require.NoError(t, table.Register(node))

	fail := true
	table.RegisterLoader("x", func(context.Context, *Node) (View, error) {
		if fail {
			return nil, errors.New("chunk load failed")
		}
		return stubView("x"), nil
	})

	_, err := table.Resolve(context.Background(), node)
	require.Error(t, err)
	assert.False(t, table.Resolved("/x"))

	fail = false
	v, err := table.Resolve(context.Background(), node)
	require.NoError(t, err)
	assert.Equal(t, "x", v.Component())
}

func TestResolve_NoLoader(t *testing.T) {
	table := NewTable(nil)
	node := &Node{Path: "/x", Component: "x"}
	require.NoError(t, table.Register(node))

	_, err := table.Resolve(context.Background(), node)
	assert.ErrorIs(t, err, ErrNoLoader)
}

func TestNavigate_FollowsRedirect(t *testing.T) {
	router := NewRouter(newTestTable(t, Options{}), nil, nil)

	nav, err := router.Navigate(context.Background(), "/agent", admin)
	require.NoError(t, err)
	assert.Equal(t, "/agent/agent-list", nav.Path)
	assert.Equal(t, "/agent", nav.From)
	assert.Equal(t, "agent/agentList", nav.View.Component())
	assert.Equal(t, "/agent/agent-list", router.Current())

	tabs := router.Tabs().List()
	require.Len(t, tabs, 2)
	assert.Equal(t, HomeTag, tabs[0])
	assert.Equal(t, "/agent/agent-list", tabs[1].Path)
}

func TestNavigate_RootGoesHome(t *testing.T) {
	router := NewRouter(newTestTable(t, Options{}), nil, nil)

	nav, err := router.Navigate(context.Background(), "/", admin)
	require.NoError(t, err)
	assert.Equal(t, HomePath, nav.Path)
	assert.Len(t, router.Tabs().List(), 1, "home tab is not duplicated")
}

func TestNavigate_Unauthenticated(t *testing.T) {
	router := NewRouter(newTestTable(t, Options{}), nil, nil)

	_, err := router.Navigate(context.Background(), "/game/games", principal{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, LoginPath, router.Current())

	nav, err := router.Navigate(context.Background(), LoginPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "login/index", nav.View.Component())
	assert.Len(t, router.Tabs().List(), 1, "white-listed pages do not open tabs")
}

func TestNavigate_Forbidden(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Register(&Node{Path: "/root", Component: "root", Meta: Meta{Roles: []string{"root"}}}))
	router := NewRouter(table, nil, nil)

	_, err := router.Navigate(context.Background(), "/root", admin)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, AccessDeniedPath, router.Current())
}

func TestNavigate_NotFound(t *testing.T) {
	router := NewRouter(newTestTable(t, Options{}), nil, nil)

	_, err := router.Navigate(context.Background(), "/missing", admin)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, HomePath, router.Current())
}

func TestNavigate_RedirectPattern(t *testing.T) {
	router := NewRouter(newTestTable(t, Options{}), nil, nil)

	nav, err := router.Navigate(context.Background(), "/redirect/game/games", admin)
	require.NoError(t, err)
	assert.Equal(t, "/redirect/game/games", nav.Path)
	assert.Equal(t, "layout/redirect", nav.View.Component())
}

func TestTabs(t *testing.T) {
	tabs := NewTabs()
	node := &Node{Path: "/game/games", Name: "Games", Meta: Meta{Title: "游戏列表"}}

	tabs.Open(node)
	tabs.Open(node)
	assert.Len(t, tabs.List(), 2)

	assert.False(t, tabs.Close(HomePath))
	assert.True(t, tabs.Close("/game/games"))
	assert.False(t, tabs.Close("/game/games"))

	tabs.Open(node)
	tabs.Reset()
	assert.Equal(t, []Tag{HomeTag}, tabs.List())
}
