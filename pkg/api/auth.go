package api

import (
	"context"

	"github.com/vera-byte/vgo-admin/pkg/model"
)

// AccountItem 账号管理列表项
type AccountItem struct {
	ID           int64            `json:"id"`
	PID          int64            `json:"pid"`
	WalletType   model.FlexInt    `json:"wallet_type"`
	Username     string           `json:"username"`
	Email        string           `json:"email"`
	Status       string           `json:"status"`
	LoginTime    model.FlexString `json:"logintime"`
	GoogleStatus model.FlexInt    `json:"google_status"`
	AgentName    string           `json:"agentname"`
	Groups       model.FlexString `json:"groups"`
	GroupsText   string           `json:"groups_text"`
	CreateTime   model.FlexString `json:"createtime"`
}

// AccountListParams 账号管理列表查询参数
type AccountListParams struct {
	ID              string
	WalletType      string
	Currency        string
	GameID          string
	CreateStartTime string
	CreateEndTime   string
	ErrorMessage    string
	TypeID          string
	TypeName        string
	ShortName       string
	MerchantID      string
	MerchantName    string
	Username        string
	Status          string
	PageNumber      int
	PageSize        int
}

// GetAccountList 获取账号管理列表
func (a *API) GetAccountList(ctx context.Context, p AccountListParams) (*model.Envelope[model.Page[AccountItem]], error) {
	q := NewFields().
		String("id", p.ID).
		String("wallet_type", p.WalletType).
		String("currency", p.Currency).
		String("game_id", p.GameID).
		String("create_start_time", p.CreateStartTime).
		String("create_end_time", p.CreateEndTime).
		String("error_message", p.ErrorMessage).
		String("type_id", p.TypeID).
		String("type_name", p.TypeName).
		String("shortname", p.ShortName).
		String("merchant_id", p.MerchantID).
		String("merchant_name", p.MerchantName).
		String("username", p.Username).
		String("status", p.Status).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[AccountItem](ctx, a, "/auth/admin/index", q)
}

// AddAccountParams 新增账号参数
type AddAccountParams struct {
	GroupID    int64
	PID        int64
	Username   string
	Password   string
	Type       int    // 1 正式账号, 2 测试账号
	WalletType int    // 1 单一钱包, 2 转账钱包
	Version    string // API 版本 1.0/2.0
	Currency   string
	TypeIDs    string // 开通的游戏品牌 ID，逗号分隔
	Status     string // normal 正常, hidden 禁用
	Nickname   string
}

// AddAccount 新增账号
func (a *API) AddAccount(ctx context.Context, p AddAccountParams) (*Ack, error) {
	form := NewFields().
		SetInt("group_id", p.GroupID).
		SetInt("pid", p.PID).
		Set("username", p.Username).
		Set("password", p.Password).
		SetInt("type", int64(p.Type)).
		SetInt("wallet_type", int64(p.WalletType)).
		Set("version", p.Version).
		Set("currency", p.Currency).
		String("type_ids", p.TypeIDs).
		String("status", p.Status).
		String("nickname", p.Nickname)
	return ack(ctx, a, "/auth/admin/add", form)
}

// EditAccountParams 编辑账号参数
// TypeIDs 为 nil 时不修改开通游戏，指向空串时清空
type EditAccountParams struct {
	ID           int64
	GroupID      int64
	PID          int64
	GoogleStatus int
	Password     string
	TypeIDs      *string
}

// EditAccount 编辑账号
func (a *API) EditAccount(ctx context.Context, p EditAccountParams) (*Ack, error) {
	form := NewFields().
		SetInt("id", p.ID).
		SetInt("group_id", p.GroupID).
		SetInt("pid", p.PID).
		SetInt("google_status", int64(p.GoogleStatus)).
		Set("password", p.Password).
		StringPtr("type_ids", p.TypeIDs)
	return ack(ctx, a, "/auth/admin/edit", form)
}

// DeleteBatchAccount 批量删除账号
func (a *API) DeleteBatchAccount(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/auth/admin/del_batch", NewFields().Set("ids", JoinIDs(ids)))
}

// ParentAdminItem 上级管理员列表项
type ParentAdminItem struct {
	ID           int64            `json:"id"`
	PID          int64            `json:"pid"`
	Username     string           `json:"username"`
	WalletType   model.FlexInt    `json:"wallet_type"`
	Email        string           `json:"email"`
	Status       string           `json:"status"`
	LoginTime    model.FlexString `json:"logintime"`
	GoogleStatus model.FlexInt    `json:"google_status"`
}

// ParentAdminListParams 上级管理员查询参数
type ParentAdminListParams struct {
	Username   string
	PageNumber int
	PageSize   int
}

// GetParentAdminList 获取上级管理员列表
func (a *API) GetParentAdminList(ctx context.Context, p ParentAdminListParams) (*model.Envelope[model.Page[ParentAdminItem]], error) {
	q := NewFields().
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize).
		String("username", p.Username)
	return list[ParentAdminItem](ctx, a, "/auth/admin/parent_admin", q)
}

// MenuItem 菜单规则
type MenuItem struct {
	ID       int64         `json:"id"`
	PID      int64         `json:"pid"`
	Name     string        `json:"name"`
	Title    string        `json:"title"`
	Icon     string        `json:"icon"`
	URL      string        `json:"url"`
	IsMenu   model.FlexInt `json:"ismenu"`
	MenuType string        `json:"menutype"`
	Extend   string        `json:"extend"`
	Weigh    model.FlexInt `json:"weigh"`
	Status   string        `json:"status"`
	HasChild model.FlexInt `json:"haschild"`
}

// MenuListParams 菜单列表查询参数
type MenuListParams struct {
	ID         string
	Title      string
	Name       string
	Status     string
	IsMenu     string
	PageNumber int
	PageSize   int
}

// GetMenuList 获取菜单规则列表
func (a *API) GetMenuList(ctx context.Context, p MenuListParams) (*model.Envelope[model.Page[MenuItem]], error) {
	q := NewFields().
		String("id", p.ID).
		String("title", p.Title).
		String("name", p.Name).
		String("status", p.Status).
		String("ismenu", p.IsMenu).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[MenuItem](ctx, a, "/auth/rule/index", q)
}

// MenuParams 新增或编辑菜单参数
// ID 为 0 时表示新增；指针字段为 nil 时不提交
type MenuParams struct {
	ID        int64
	IsMenu    int
	PID       int64
	Name      string
	Title     string
	URL       *string
	Icon      *string
	Condition *string
	MenuType  *string
	Extend    *string
	Remark    *string
	Weigh     int
	Status    string
}

func (p MenuParams) fields() *Fields {
	f := NewFields()
	if p.ID != 0 {
		f.SetInt("id", p.ID)
	}
	return f.
		SetInt("ismenu", int64(p.IsMenu)).
		SetInt("pid", p.PID).
		Set("name", p.Name).
		Set("title", p.Title).
		StringPtr("url", p.URL).
		StringPtr("icon", p.Icon).
		StringPtr("condition", p.Condition).
		StringPtr("menutype", p.MenuType).
		StringPtr("extend", p.Extend).
		StringPtr("remark", p.Remark).
		SetInt("weigh", int64(p.Weigh)).
		Set("status", p.Status)
}

// AddMenu 新增菜单
func (a *API) AddMenu(ctx context.Context, p MenuParams) (*Ack, error) {
	p.ID = 0
	return ack(ctx, a, "/auth/rule/add", p.fields())
}

// EditMenu 编辑菜单
func (a *API) EditMenu(ctx context.Context, p MenuParams) (*Ack, error) {
	return ack(ctx, a, "/auth/rule/edit", p.fields())
}

// DeleteBatchMenu 批量删除菜单
func (a *API) DeleteBatchMenu(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/auth/rule/del_batch", NewFields().Set("ids", JoinIDs(ids)))
}

// RoleItem 角色
type RoleItem struct {
	ID         int64            `json:"id"`
	PID        int64            `json:"pid"`
	Name       string           `json:"name"`
	Rules      string           `json:"rules"`
	CreateTime model.FlexString `json:"createtime"`
	UpdateTime model.FlexString `json:"updatetime"`
	Status     string           `json:"status"`
	Spacer     string           `json:"spacer"`
	HasChild   model.FlexInt    `json:"haschild"`
}

// GetRoleList 获取角色列表
func (a *API) GetRoleList(ctx context.Context) (*model.Envelope[model.Page[RoleItem]], error) {
	return list[RoleItem](ctx, a, "/auth/group/index", nil)
}
