package api

import (
	"context"

	"github.com/vera-byte/vgo-admin/pkg/model"
)

// HelpItem 帮助文章
type HelpItem struct {
	ID         int64            `json:"id"`
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	Weigh      model.FlexInt    `json:"weigh"`
	CreateTime model.FlexString `json:"createtime"`
	UpdateTime model.FlexString `json:"updatetime"`
}

// HelpListParams 帮助文章查询参数
type HelpListParams struct {
	ID              string
	Title           string
	UpdateStartTime string
	UpdateEndTime   string
	CreateStartTime string
	CreateEndTime   string
	PageNumber      int
	PageSize        int
}

// GetHelpList 获取帮助文章列表
func (a *API) GetHelpList(ctx context.Context, p HelpListParams) (*model.Envelope[model.Page[HelpItem]], error) {
	q := NewFields().
		String("id", p.ID).
		String("title", p.Title).
		String("update_start_time", p.UpdateStartTime).
		String("update_end_time", p.UpdateEndTime).
		String("create_start_time", p.CreateStartTime).
		String("create_end_time", p.CreateEndTime).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[HelpItem](ctx, a, "/article/help/index", q)
}

// HelpParams 新增或编辑帮助文章
type HelpParams struct {
	ID      int64
	Title   string
	Content string
	Weigh   int
}

func (p HelpParams) fields() *Fields {
	f := NewFields()
	if p.ID != 0 {
		f.SetInt("id", p.ID)
	}
	return f.
		Set("title", p.Title).
		Set("content", p.Content).
		SetInt("weigh", int64(p.Weigh))
}

// AddHelp 新增帮助文章
func (a *API) AddHelp(ctx context.Context, p HelpParams) (*Ack, error) {
	p.ID = 0
	return ack(ctx, a, "/article/help/add", p.fields())
}

// EditHelp 编辑帮助文章
func (a *API) EditHelp(ctx context.Context, p HelpParams) (*Ack, error) {
	return ack(ctx, a, "/article/help/edit", p.fields())
}

// DeleteBatchHelp 批量删除帮助文章
func (a *API) DeleteBatchHelp(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/article/help/del_batch", NewFields().Set("ids", JoinIDs(ids)))
}
