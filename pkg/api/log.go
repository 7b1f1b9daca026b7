package api

import (
	"context"

	"github.com/vera-byte/vgo-admin/pkg/model"
)

// OperationLogItem 操作日志
type OperationLogItem struct {
	ID         int64            `json:"id"`
	Username   string           `json:"username"`
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	URL        string           `json:"url"`
	IP         string           `json:"ip"`
	UserAgent  string           `json:"useragent"`
	CreateTime model.FlexString `json:"createtime"`
}

// OperationLogListParams 操作日志查询参数
type OperationLogListParams struct {
	Username        string
	Title           string
	Content         string
	URL             string
	IP              string
	CreateStartTime string
	CreateEndTime   string
	PageNumber      int
	PageSize        int
}

// GetOperationLogList 获取操作日志
func (a *API) GetOperationLogList(ctx context.Context, p OperationLogListParams) (*model.Envelope[model.Page[OperationLogItem]], error) {
	q := NewFields().
		String("username", p.Username).
		String("title", p.Title).
		String("content", p.Content).
		String("url", p.URL).
		String("ip", p.IP).
		String("create_start_time", p.CreateStartTime).
		String("create_end_time", p.CreateEndTime).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[OperationLogItem](ctx, a, "/log/adminlog/index", q)
}
