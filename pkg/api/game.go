package api

import (
	"context"
	"io"

	"github.com/vera-byte/vgo-admin/pkg/model"
)

// ---- 供应商 ----

// SupplierItem 供应商
type SupplierItem struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Remark     string           `json:"remark"`
	Pic        string           `json:"pic"`
	SortNo     model.FlexInt    `json:"sort_no"`
	Status     model.FlexString `json:"status"` // 1 正常, 0 禁用
	CreateTime model.FlexString `json:"createtime"`
	UpdateTime model.FlexString `json:"updatetime"`
}

// SupplierListParams 供应商查询参数
type SupplierListParams struct {
	ID              string
	Name            string
	Remark          string
	Status          string
	UpdateStartTime string
	UpdateEndTime   string
	PageNumber      int
	PageSize        int
}

// GetSupplierList 获取供应商列表
func (a *API) GetSupplierList(ctx context.Context, p SupplierListParams) (*model.Envelope[model.Page[SupplierItem]], error) {
	q := NewFields().
		String("id", p.ID).
		String("name", p.Name).
		String("remark", p.Remark).
		String("status", p.Status).
		String("update_start_time", p.UpdateStartTime).
		String("update_end_time", p.UpdateEndTime).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[SupplierItem](ctx, a, "/provider/provider/index", q)
}

// SupplierParams 新增或编辑供应商
type SupplierParams struct {
	ID     int64
	Name   string
	Remark string
	SortNo int
	Pic    string
	Status string
}

// AddSupplier 新增供应商，排序默认 1，状态默认正常
func (a *API) AddSupplier(ctx context.Context, p SupplierParams) (*Ack, error) {
	sortNo := p.SortNo
	if sortNo == 0 {
		sortNo = 1
	}
	form := NewFields().
		Set("name", p.Name).
		Set("remark", p.Remark).
		SetInt("sort_no", int64(sortNo)).
		Set("pic", p.Pic).
		Default("status", p.Status, "1")
	return ack(ctx, a, "/provider/provider/add", form)
}

// EditSupplier 编辑供应商
func (a *API) EditSupplier(ctx context.Context, p SupplierParams) (*Ack, error) {
	form := NewFields().
		SetInt("id", p.ID).
		Set("name", p.Name).
		Set("remark", p.Remark).
		Int("sort_no", p.SortNo).
		Set("pic", p.Pic).
		String("status", p.Status)
	return ack(ctx, a, "/provider/provider/edit", form)
}

// DeleteSupplier 删除供应商
func (a *API) DeleteSupplier(ctx context.Context, id int64) (*Ack, error) {
	return ack(ctx, a, "/provider/provider/del", NewFields().SetInt("id", id))
}

// DeleteBatchSupplier 批量删除供应商
func (a *API) DeleteBatchSupplier(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/provider/provider/del_batch", NewFields().Set("ids", JoinIDs(ids)))
}

// ---- 上传 ----

// UploadImageParams 上传图片参数
type UploadImageParams struct {
	Filename string
	File     io.Reader
	Type     string
}

// UploadImage 上传图片，data 为图片 URL
func (a *API) UploadImage(ctx context.Context, p UploadImageParams) (*model.Envelope[string], error) {
	form := NewFields().
		Default("type", p.Type, "1").
		File("file", p.Filename, p.File)
	return submit[string](ctx, a, "/upload/upload", form)
}

// ---- 玩法类型 ----

// GamePlayTypeItem 玩法类型
type GamePlayTypeItem struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	ShortName  string           `json:"shortname"`
	NameCN     string           `json:"name_cn"`
	Pic        string           `json:"pic"`
	SortNo     model.FlexInt    `json:"sort_no"`
	Status     model.FlexString `json:"status"`
	CreateTime model.FlexString `json:"createtime"`
	UpdateTime model.FlexString `json:"updatetime"`
}

// GamePlayTypeListParams 玩法类型查询参数
type GamePlayTypeListParams struct {
	ID              string
	Name            string
	ShortName       string
	NameCN          string
	Status          string
	UpdateStartTime string
	UpdateEndTime   string
	PageNumber      int
	PageSize        int
}

// GetGamePlayTypeList 获取玩法类型列表
func (a *API) GetGamePlayTypeList(ctx context.Context, p GamePlayTypeListParams) (*model.Envelope[model.Page[GamePlayTypeItem]], error) {
	q := NewFields().
		String("id", p.ID).
		String("name", p.Name).
		String("shortname", p.ShortName).
		String("name_cn", p.NameCN).
		String("status", p.Status).
		String("update_start_time", p.UpdateStartTime).
		String("update_end_time", p.UpdateEndTime).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[GamePlayTypeItem](ctx, a, "/game/gametype/index", q)
}

// GamePlayTypeParams 新增或编辑玩法类型
type GamePlayTypeParams struct {
	ID        int64
	Name      string
	NameCN    string
	ShortName string
	Pic       string
	SortNo    int
	Status    string
}

func (p GamePlayTypeParams) fields() *Fields {
	sortNo := p.SortNo
	if sortNo == 0 {
		sortNo = 1
	}
	f := NewFields()
	if p.ID != 0 {
		f.SetInt("id", p.ID)
	}
	return f.
		Set("name", p.Name).
		Set("name_cn", p.NameCN).
		Set("shortname", p.ShortName).
		Set("pic", p.Pic).
		SetInt("sort_no", int64(sortNo)).
		Default("status", p.Status, "1")
}

// AddGamePlayType 新增玩法类型
func (a *API) AddGamePlayType(ctx context.Context, p GamePlayTypeParams) (*Ack, error) {
	p.ID = 0
	return ack(ctx, a, "/game/gametype/add", p.fields())
}

// EditGamePlayType 编辑玩法类型
func (a *API) EditGamePlayType(ctx context.Context, p GamePlayTypeParams) (*Ack, error) {
	return ack(ctx, a, "/game/gametype/edit", p.fields())
}

// DeleteGamePlayType 删除玩法类型
func (a *API) DeleteGamePlayType(ctx context.Context, id int64) (*Ack, error) {
	return ack(ctx, a, "/game/gametype/del", NewFields().SetInt("id", id))
}

// DeleteBatchGamePlayType 批量删除玩法类型
func (a *API) DeleteBatchGamePlayType(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/game/gametype/del_batch", NewFields().Set("ids", JoinIDs(ids)))
}

// ---- 币种 ----

// CurrencyItem 币种
type CurrencyItem struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Remark     string           `json:"remark"`
	DiffTime   model.FlexString `json:"difftime"`
	Status     model.FlexString `json:"status"`
	CreateTime model.FlexString `json:"createtime"`
	UpdateTime model.FlexString `json:"updatetime"`
}

// CurrencyListParams 币种查询参数
type CurrencyListParams struct {
	ID              string
	Name            string
	Remark          string
	Status          string
	CreateStartTime string
	CreateEndTime   string
	UpdateStartTime string
	UpdateEndTime   string
	PageNumber      int
	PageSize        int
}

// GetCurrencyList 获取币种列表
func (a *API) GetCurrencyList(ctx context.Context, p CurrencyListParams) (*model.Envelope[model.Page[CurrencyItem]], error) {
	q := NewFields().
		String("id", p.ID).
		String("name", p.Name).
		String("remark", p.Remark).
		String("status", p.Status).
		String("create_start_time", p.CreateStartTime).
		String("create_end_time", p.CreateEndTime).
		String("update_start_time", p.UpdateStartTime).
		String("update_end_time", p.UpdateEndTime).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[CurrencyItem](ctx, a, "/game/currency/index", q)
}

// CurrencyParams 新增或编辑币种
type CurrencyParams struct {
	ID       int64
	Name     string
	Remark   string
	DiffTime string
	Status   string // 1 开启, -1 关闭
}

func (p CurrencyParams) fields() *Fields {
	f := NewFields()
	if p.ID != 0 {
		f.SetInt("id", p.ID)
	}
	return f.
		Set("name", p.Name).
		Set("remark", p.Remark).
		Set("difftime", p.DiffTime).
		Default("status", p.Status, "1")
}

// AddCurrency 新增币种
func (a *API) AddCurrency(ctx context.Context, p CurrencyParams) (*Ack, error) {
	p.ID = 0
	return ack(ctx, a, "/game/currency/add", p.fields())
}

// EditCurrency 编辑币种
func (a *API) EditCurrency(ctx context.Context, p CurrencyParams) (*Ack, error) {
	return ack(ctx, a, "/game/currency/edit", p.fields())
}

// DeleteCurrency 删除币种
func (a *API) DeleteCurrency(ctx context.Context, id int64) (*Ack, error) {
	return ack(ctx, a, "/game/currency/del", NewFields().SetInt("id", id))
}

// ---- WLG 账号 ----

// WlgAccountItem WLG 账号
type WlgAccountItem struct {
	ID            int64            `json:"id"`
	WalletType    model.FlexInt    `json:"wallet_type"`
	Type          model.FlexInt    `json:"type"`
	CurrencyID    model.FlexInt    `json:"currency_id"`
	DealerName    string           `json:"dealer_name"`
	DealerID      string           `json:"dealer_id"`
	AgentID       string           `json:"agent_id"`
	Key           string           `json:"key"`
	APIHost       string           `json:"api_host"`
	SnURL         string           `json:"sn_url"`
	DealerAccount string           `json:"dealer_account"`
	DealerPwd     string           `json:"dealer_pwd"`
	AgentURL      string           `json:"agent_url"`
	AgentAccount  string           `json:"agent_account"`
	AgentPwd      string           `json:"agent_pwd"`
	Remark        string           `json:"remark"`
	Status        model.FlexString `json:"status"`
	CreateTime    model.FlexString `json:"createtime"`
	UpdateTime    model.FlexString `json:"updatetime"`
}

// WlgAccountListParams WLG 账号查询参数
type WlgAccountListParams struct {
	ID              string
	WalletType      string
	Type            string
	Status          string
	CurrencyID      string
	DealerName      string
	DealerID        string
	AgentID         string
	APIHost         string
	Remark          string
	CreateStartTime string
	CreateEndTime   string
	UpdateStartTime string
	UpdateEndTime   string
	PageNumber      int
	PageSize        int
}

// GetWlgAccountList 获取 WLG 账号列表
func (a *API) GetWlgAccountList(ctx context.Context, p WlgAccountListParams) (*model.Envelope[model.Page[WlgAccountItem]], error) {
	q := NewFields().
		String("id", p.ID).
		String("wallet_type", p.WalletType).
		String("type", p.Type).
		String("status", p.Status).
		String("currency_id", p.CurrencyID).
		String("dealer_name", p.DealerName).
		String("dealer_id", p.DealerID).
		String("agent_id", p.AgentID).
		String("api_host", p.APIHost).
		String("remark", p.Remark).
		String("create_start_time", p.CreateStartTime).
		String("create_end_time", p.CreateEndTime).
		String("update_start_time", p.UpdateStartTime).
		String("update_end_time", p.UpdateEndTime).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[WlgAccountItem](ctx, a, "/game/wlg/index", q)
}

// WlgAccountParams 新增或编辑 WLG 账号，空值字段不提交
type WlgAccountParams struct {
	ID            int64
	WalletType    int
	Type          int
	CurrencyID    int
	DealerName    string
	DealerID      string
	AgentID       string
	Key           string
	APIHost       string
	SnURL         string
	DealerAccount string
	DealerPwd     string
	AgentURL      string
	AgentAccount  string
	AgentPwd      string
	Remark        string
	Status        string
}

func (p WlgAccountParams) optional(f *Fields) *Fields {
	return f.
		Int("type", p.Type).
		Int("currency_id", p.CurrencyID).
		String("dealer_name", p.DealerName).
		String("dealer_id", p.DealerID).
		String("agent_id", p.AgentID).
		String("key", p.Key).
		String("api_host", p.APIHost).
		String("sn_url", p.SnURL).
		String("dealer_account", p.DealerAccount).
		String("dealer_pwd", p.DealerPwd).
		String("agent_url", p.AgentURL).
		String("agent_account", p.AgentAccount).
		String("agent_pwd", p.AgentPwd).
		String("remark", p.Remark)
}

// AddWlgAccount 新增 WLG 账号，状态默认开启
func (a *API) AddWlgAccount(ctx context.Context, p WlgAccountParams) (*Ack, error) {
	form := NewFields().
		SetInt("wallet_type", int64(p.WalletType)).
		Default("status", p.Status, "1")
	return ack(ctx, a, "/game/wlg/add", p.optional(form))
}

// EditWlgAccount 编辑 WLG 账号
func (a *API) EditWlgAccount(ctx context.Context, p WlgAccountParams) (*Ack, error) {
	form := NewFields().
		SetInt("id", p.ID).
		Int("wallet_type", p.WalletType)
	form = p.optional(form).String("status", p.Status)
	return ack(ctx, a, "/game/wlg/edit", form)
}

// DeleteWlgAccount 删除 WLG 账号
func (a *API) DeleteWlgAccount(ctx context.Context, id int64) (*Ack, error) {
	return ack(ctx, a, "/game/wlg/del", NewFields().SetInt("id", id))
}

// DeleteBatchWlgAccount 批量删除 WLG 账号
func (a *API) DeleteBatchWlgAccount(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/game/wlg/del_batch", NewFields().Set("ids", JoinIDs(ids)))
}

// UnbindBatchWlgAccount 批量解绑 WLG 账号
func (a *API) UnbindBatchWlgAccount(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/game/wlg/unbind_batch", NewFields().Set("ids", JoinIDs(ids)))
}

// ---- PGF 账号 ----

// PgfAccountItem PGF 账号
type PgfAccountItem struct {
	ID         int64            `json:"id"`
	WalletType model.FlexInt    `json:"wallet_type"`
	Type       model.FlexInt    `json:"type"`
	Token      string           `json:"token"`
	Key        string           `json:"key"`
	APIHost    string           `json:"api_host"`
	Status     model.FlexString `json:"status"`
	CreateTime model.FlexString `json:"createtime"`
	UpdateTime model.FlexString `json:"updatetime"`
}

// PgfAccountListParams PGF 账号查询参数
type PgfAccountListParams struct {
	ID              string
	WalletType      string
	Type            string
	Status          string
	Token           string
	Key             string
	APIHost         string
	CurrencyID      string
	CreateStartTime string
	CreateEndTime   string
	UpdateStartTime string
	UpdateEndTime   string
	PageNumber      int
	PageSize        int
}

// GetPgfAccountList 获取 PGF 账号列表
func (a *API) GetPgfAccountList(ctx context.Context, p PgfAccountListParams) (*model.Envelope[model.Page[PgfAccountItem]], error) {
	q := NewFields().
		String("id", p.ID).
		String("wallet_type", p.WalletType).
		String("type", p.Type).
		String("status", p.Status).
		String("token", p.Token).
		String("key", p.Key).
		String("api_host", p.APIHost).
		String("currency_id", p.CurrencyID).
		String("create_start_time", p.CreateStartTime).
		String("create_end_time", p.CreateEndTime).
		String("update_start_time", p.UpdateStartTime).
		String("update_end_time", p.UpdateEndTime).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[PgfAccountItem](ctx, a, "/game/pgf/index", q)
}

// PgfAccountParams 新增或编辑 PGF 账号
type PgfAccountParams struct {
	ID         int64
	WalletType int
	Type       int
	Status     string
	Token      string
	Key        string
	APIHost    string
}

func (p PgfAccountParams) optional(f *Fields) *Fields {
	return f.
		Int("type", p.Type).
		String("status", p.Status).
		String("token", p.Token).
		String("key", p.Key).
		String("api_host", p.APIHost)
}

// AddPgfAccount 新增 PGF 账号
func (a *API) AddPgfAccount(ctx context.Context, p PgfAccountParams) (*Ack, error) {
	form := NewFields().SetInt("wallet_type", int64(p.WalletType))
	return ack(ctx, a, "/game/pgf/add", p.optional(form))
}

// EditPgfAccount 编辑 PGF 账号
func (a *API) EditPgfAccount(ctx context.Context, p PgfAccountParams) (*Ack, error) {
	form := NewFields().SetInt("id", p.ID).Int("wallet_type", p.WalletType)
	return ack(ctx, a, "/game/pgf/edit", p.optional(form))
}

// DeletePgfAccount 删除 PGF 账号
func (a *API) DeletePgfAccount(ctx context.Context, id int64) (*Ack, error) {
	return ack(ctx, a, "/game/pgf/del", NewFields().SetInt("id", id))
}

// DeleteBatchPgfAccount 批量删除 PGF 账号
func (a *API) DeleteBatchPgfAccount(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/game/pgf/del_batch", NewFields().Set("ids", JoinIDs(ids)))
}

// UnbindBatchPgfAccount 批量解绑 PGF 账号
func (a *API) UnbindBatchPgfAccount(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/game/pgf/unbind_batch", NewFields().Set("ids", JoinIDs(ids)))
}
