package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vera-byte/vgo-admin/internal/route"
	"github.com/vera-byte/vgo-admin/internal/views"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		entries := a.table.Flatten()
		if jsonOutput {
			type row struct {
				Path      string `json:"path"`
				Name      string `json:"name,omitempty"`
				Component string `json:"component"`
				Title     string `json:"title"`
				Rank      int    `json:"rank"`
				ShowLink  bool   `json:"showLink"`
			}
			out := make([]row, 0, len(entries))
			for _, e := range entries {
				out = append(out, row{
					Path:      e.Node.Path,
					Name:      e.Node.Name,
					Component: e.Node.Component,
					Title:     a.tr.Title(e.Node.Meta.Title),
					Rank:      e.Node.Meta.Rank,
					ShowLink:  e.Node.Meta.Visible(),
				})
			}
			return printJSON(cmd.OutOrStdout(), out)
		}

		printRoutes(cmd.OutOrStdout(), a.table, a.tr)
		return nil
	}),
}

// printRoutes 以表格输出路由，子路由按层级缩进
func printRoutes(w io.Writer, table *route.Table, tr *route.Translator) {
	t := newTable(w, []string{"Path", "Title", "Component", "Rank", "Show", "Roles"})
	for _, e := range table.Flatten() {
		n := e.Node
		t.Append([]string{
			strings.Repeat("  ", e.Depth) + n.Path,
			tr.Title(n.Meta.Title),
			n.Component,
			fmt.Sprint(n.Meta.Rank),
			fmt.Sprint(n.Meta.Visible()),
			strings.Join(n.Meta.Roles, ","),
		})
	}
	t.Render()
}

var menusCmd = &cobra.Command{
	Use:   "menus",
	Short: "Print the menu tree visible to the current session",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		menus := a.table.Menus(a.store.Roles(), a.tr)
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), menus)
		}
		printMenus(cmd.OutOrStdout(), menus, 0)
		return nil
	}),
}

func printMenus(w io.Writer, items []route.MenuItem, depth int) {
	for _, it := range items {
		fmt.Fprintf(w, "%s%s  %s\n", strings.Repeat("  ", depth), it.Title, it.Path)
		printMenus(w, it.Children, depth+1)
	}
}

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Navigate to a route and show the resolved view",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		nav, err := navigate(ctx, a, args[0])
		if err != nil {
			return err
		}

		out := map[string]any{
			"path":      nav.Path,
			"from":      nav.From,
			"component": nav.View.Component(),
			"title":     a.tr.Title(nav.Node.Meta.Title),
		}
		if lister, ok := nav.View.(views.Lister); ok {
			out["columns"] = lister.Columns()
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), out)
		}

		t := newTable(cmd.OutOrStdout(), []string{"Field", "Value"})
		t.Append([]string{"Path", nav.Path})
		if nav.From != "" {
			t.Append([]string{"From", nav.From})
		}
		t.Append([]string{"Component", nav.View.Component()})
		t.Append([]string{"Title", a.tr.Title(nav.Node.Meta.Title)})
		if cols, ok := out["columns"].([]string); ok {
			t.Append([]string{"Columns", strings.Join(cols, ",")})
		}
		t.Render()
		return nil
	}),
}

var listOpts struct {
	page    int
	size    int
	filters []string
}

var listCmd = &cobra.Command{
	Use:   "list <path>",
	Short: "Navigate to a list route and print a page of rows",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		nav, err := navigate(ctx, a, args[0])
		if err != nil {
			return err
		}
		lister, ok := nav.View.(views.Lister)
		if !ok {
			return fmt.Errorf("%s (%s) is not a list view", nav.Path, nav.View.Component())
		}

		q := views.Query{PageNumber: listOpts.page, PageSize: listOpts.size, Filters: map[string]string{}}
		for _, f := range listOpts.filters {
			k, v, ok := strings.Cut(f, "=")
			if !ok || k == "" {
				return fmt.Errorf("invalid filter %q, want key=value", f)
			}
			q.Filters[k] = v
		}

		result, err := lister.List(ctx, q)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), result)
		}

		t := newTable(cmd.OutOrStdout(), result.Columns)
		for _, row := range result.Rows {
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = truncate(c, 40)
			}
			t.Append(cells)
		}
		t.SetFooter(footer(len(result.Columns), fmt.Sprintf("total %d", result.Total)))
		t.Render()
		return nil
	}),
}

func init() {
	listCmd.Flags().IntVar(&listOpts.page, "page", 1, "page number")
	listCmd.Flags().IntVar(&listOpts.size, "size", views.DefaultPageSize, "rows per page")
	listCmd.Flags().StringArrayVarP(&listOpts.filters, "filter", "f", nil, "filter as key=value, repeatable")
}

// navigate 以当前会话导航，守卫拒绝时给出可读的错误
func navigate(ctx context.Context, a *app, path string) (*route.Navigation, error) {
	nav, err := a.router.Navigate(ctx, path, a.store)
	switch {
	case errors.Is(err, route.ErrUnauthenticated):
		return nil, fmt.Errorf("%w, run `vgo-admin login` first", err)
	case errors.Is(err, route.ErrForbidden):
		return nil, fmt.Errorf("%w for roles %v", err, a.store.Roles())
	}
	return nav, err
}

// footer 把说明放在最后一列
func footer(n int, text string) []string {
	if n == 0 {
		return nil
	}
	f := make([]string, n)
	f[n-1] = text
	return f
}
