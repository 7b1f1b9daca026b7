// Package views 路由组件对应的视图
//
// 列表视图把查询条件转换为对应接口的参数并把结果整理成表格；其余组件为静态视图。
// 业务失败以 *model.BusinessError 返回，由调用方决定如何呈现。
package views

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vera-byte/vgo-admin/internal/route"
	"github.com/vera-byte/vgo-admin/pkg/model"
)

// DefaultPageSize 未指定时的每页条数
const DefaultPageSize = 10

// Query 列表查询条件
type Query struct {
	PageNumber int
	PageSize   int
	Filters    map[string]string
}

// Get 读取过滤条件
func (q Query) Get(key string) string {
	return q.Filters[key]
}

func (q Query) normalize() Query {
	if q.PageNumber <= 0 {
		q.PageNumber = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Table 表格数据
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// Lister 可分页查询的视图
type Lister interface {
	route.View
	Columns() []string
	List(ctx context.Context, q Query) (*Table, error)
}

type fetchFunc func(ctx context.Context, q Query) (*Table, error)

// ListView 列表视图
type ListView struct {
	component string
	columns   []string
	fetch     fetchFunc
}

// Component 实现 route.View
func (v *ListView) Component() string { return v.component }

// Columns 表头
func (v *ListView) Columns() []string { return v.columns }

// List 查询一页数据
func (v *ListView) List(ctx context.Context, q Query) (*Table, error) {
	return v.fetch(ctx, q.normalize())
}

// StaticView 没有数据绑定的视图
type StaticView struct {
	component string
}

// Component 实现 route.View
func (v StaticView) Component() string { return v.component }

// binding 由表头生成 fetchFunc
type binding func(columns []string) fetchFunc

// pageOf 把返回 Page[T] 的列表接口包装为 binding
func pageOf[T any](call func(ctx context.Context, q Query) (*model.Envelope[model.Page[T]], error)) binding {
	return func(columns []string) fetchFunc {
		return func(ctx context.Context, q Query) (*Table, error) {
			env, err := call(ctx, q)
			if err != nil {
				return nil, err
			}
			if err := env.Err(); err != nil {
				return nil, err
			}
			rows, err := rowsOf(env.Data.Rows, columns)
			if err != nil {
				return nil, err
			}
			return &Table{Columns: columns, Rows: rows, Total: env.Data.Total.Int()}, nil
		}
	}
}

// rowsOf 按 JSON 字段名取出每行的列
func rowsOf[T any](items []T, columns []string) ([][]string, error) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encode row: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var fields map[string]any
		if err := dec.Decode(&fields); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cell(fields[col])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return strings.TrimSpace(string(b))
	}
}
