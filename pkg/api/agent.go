package api

import (
	"context"

	"github.com/vera-byte/vgo-admin/pkg/model"
)

// AgentItem 代理列表项
type AgentItem struct {
	ID              int64            `json:"id"`
	Username        string           `json:"username"`
	Nickname        string           `json:"nickname"`
	ParentName      string           `json:"parent_name"`
	GroupsText      string           `json:"groups_text"`
	MerchantProNum  model.FlexInt    `json:"merchant_pro_num"`
	MerchantTestNum model.FlexInt    `json:"merchant_test_num"`
	Status          string           `json:"status"` // normal 正常, hidden 隐藏
	CreateTime      model.FlexString `json:"createtime"`
	UpdateTime      model.FlexString `json:"updatetime"`
}

// AgentListParams 代理列表查询参数
type AgentListParams struct {
	ID             string
	Username       string
	Status         string
	LoginStartTime string
	LoginEndTime   string
	PageNumber     int
	PageSize       int
}

func (p AgentListParams) fields() *Fields {
	return NewFields().
		String("id", p.ID).
		String("username", p.Username).
		String("status", p.Status).
		String("login_start_time", p.LoginStartTime).
		String("login_end_time", p.LoginEndTime).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
}

// GetAgentList 获取代理列表
func (a *API) GetAgentList(ctx context.Context, p AgentListParams) (*model.Envelope[model.Page[AgentItem]], error) {
	return list[AgentItem](ctx, a, "/agent/agent/index", p.fields())
}

// SwitchStatusParams 切换状态参数
type SwitchStatusParams struct {
	ID     int64
	Status string
}

func (p SwitchStatusParams) fields() *Fields {
	return NewFields().SetInt("id", p.ID).Set("status", p.Status)
}

// SwitchAgentStatus 切换代理状态
func (a *API) SwitchAgentStatus(ctx context.Context, p SwitchStatusParams) (*Ack, error) {
	return ack(ctx, a, "/agent/agent/status", p.fields())
}

// MerchantItem 商户列表项
type MerchantItem = AgentItem

// MerchantListParams 商户列表查询参数
type MerchantListParams struct {
	ID             string
	Username       string
	Status         string
	LoginStartTime string
	LoginEndTime   string
	WalletType     string
	Currency       string
	Type           string
	APIKey         string
	PID            string
	PageNumber     int
	PageSize       int
}

// GetMerchantList 获取商户列表
func (a *API) GetMerchantList(ctx context.Context, p MerchantListParams) (*model.Envelope[model.Page[MerchantItem]], error) {
	q := NewFields().
		String("id", p.ID).
		String("username", p.Username).
		String("status", p.Status).
		String("login_start_time", p.LoginStartTime).
		String("login_end_time", p.LoginEndTime).
		String("wallet_type", p.WalletType).
		String("currency", p.Currency).
		String("type", p.Type).
		String("api_key", p.APIKey).
		String("pid", p.PID).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[MerchantItem](ctx, a, "/agent/merchant/index", q)
}

// SwitchMerchantStatus 切换商户状态
func (a *API) SwitchMerchantStatus(ctx context.Context, p SwitchStatusParams) (*Ack, error) {
	return ack(ctx, a, "/agent/merchant/status", p.fields())
}
