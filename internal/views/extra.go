package views

import (
	"context"

	"github.com/vera-byte/vgo-admin/pkg/api"
)

// transferPlayers 转账钱包玩家列表，接口使用 {success,message,data} 响应
func transferPlayers(a *api.API) binding {
	return func(columns []string) fetchFunc {
		return func(ctx context.Context, q Query) (*Table, error) {
			res, err := a.GetTransferPlayerList(ctx, api.TransferPlayerListParams{
				Page:              q.PageNumber,
				PageSize:          q.PageSize,
				ID:                q.Get("id"),
				Name:              q.Get("name"),
				UserID:            q.Get("user_id"),
				Status:            q.Get("status"),
				RegisterTimeStart: q.Get("register_time_start"),
				RegisterTimeEnd:   q.Get("register_time_end"),
			})
			if err != nil {
				return nil, err
			}
			if !res.Success {
				return nil, &ResultError{Message: res.Message}
			}
			rows, err := rowsOf(res.Data.List, columns)
			if err != nil {
				return nil, err
			}
			return &Table{Columns: columns, Rows: rows, Total: res.Data.Total.Int()}, nil
		}
	}
}

// systemConfig 系统配置，每个配置项一行，按分组名排序
func systemConfig(a *api.API) binding {
	return func(columns []string) fetchFunc {
		return func(ctx context.Context, q Query) (*Table, error) {
			env, err := a.GetSystemConfig(ctx)
			if err != nil {
				return nil, err
			}
			if err := env.Err(); err != nil {
				return nil, err
			}
			group := q.Get("group")
			t := &Table{Columns: columns}
			for _, name := range env.Data.GroupNames() {
				if group != "" && group != name {
					continue
				}
				for _, item := range env.Data.SiteList[name].List {
					t.Rows = append(t.Rows, []string{name, item.Name, item.Title, item.Type, item.Value.String()})
				}
			}
			t.Total = len(t.Rows)
			return t, nil
		}
	}
}

// ResultError {success:false} 形态的业务失败
type ResultError struct {
	Message string
}

func (e *ResultError) Error() string {
	if e.Message == "" {
		return "request failed"
	}
	return e.Message
}
