package api

import (
	"context"

	"github.com/vera-byte/vgo-admin/pkg/model"
)

// ---- 游戏品牌 ----

// GameBrandItem 游戏品牌
type GameBrandItem struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	ShortName   string           `json:"shortname"`
	Status      model.FlexString `json:"status"` // 1 正常, -1 隐藏, 0 维护
	WalletType  model.FlexString `json:"wallet_type"`
	Category    string           `json:"category"`
	Provider    string           `json:"provider"`
	ProductCode string           `json:"product_code"`
	Currency    string           `json:"currency"`
	UpdateTime  model.FlexString `json:"update_time"`
}

// GameBrandListParams 游戏品牌查询参数
type GameBrandListParams struct {
	ID              string
	Name            string
	ShortName       string
	Status          string
	UpdateStartTime string
	UpdateEndTime   string
	WalletType      string
	Category        string
	Provider        string
	ProductCode     string
	ProductID       string
	Type            string
	GameCount       string
	Currency        string
	TypeCode        string
	TypeDesc        string
	PageNumber      int
	PageSize        int
}

// GetGameBrandList 获取游戏品牌列表
func (a *API) GetGameBrandList(ctx context.Context, p GameBrandListParams) (*model.Envelope[model.Page[GameBrandItem]], error) {
	q := NewFields().
		String("id", p.ID).
		String("name", p.Name).
		String("shortname", p.ShortName).
		String("status", p.Status).
		String("update_start_time", p.UpdateStartTime).
		String("update_end_time", p.UpdateEndTime).
		String("wallet_type", p.WalletType).
		String("category", p.Category).
		String("provider", p.Provider).
		String("product_code", p.ProductCode).
		String("product_id", p.ProductID).
		String("type", p.Type).
		String("game_count", p.GameCount).
		String("currency", p.Currency).
		String("type_code", p.TypeCode).
		String("type_desc", p.TypeDesc).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[GameBrandItem](ctx, a, "/game/producttype/index", q)
}

// GameBrandParams 新增或编辑游戏品牌，空值字段不提交
type GameBrandParams struct {
	ID              int64
	Name            string
	ShortName       string
	WalletType      string
	Provider        string
	Category        string
	Currency        string
	ProductCode     string
	TypeCode        string
	TypeDesc        string
	CostPrice       string
	CostPriceAsia   string
	MarketPrice     string
	MarketPriceAsia string
	Pic             string
	SortNo          int
	// SyncCurrencyToGames 同步币种到游戏列表，1 开启 0 关闭
	SyncCurrencyToGames string
	Status              string
}

func (p GameBrandParams) fields() *Fields {
	f := NewFields()
	if p.ID != 0 {
		f.SetInt("id", p.ID)
	}
	return f.
		String("name", p.Name).
		String("shortname", p.ShortName).
		String("wallet_type", p.WalletType).
		String("provider", p.Provider).
		String("category", p.Category).
		String("currency", p.Currency).
		String("product_code", p.ProductCode).
		String("type_code", p.TypeCode).
		String("type_desc", p.TypeDesc).
		String("cost_price", p.CostPrice).
		String("cost_price_asia", p.CostPriceAsia).
		String("market_price", p.MarketPrice).
		String("market_price_asia", p.MarketPriceAsia).
		String("pic", p.Pic).
		Int("sort_no", p.SortNo).
		// 后台字段名拼写为 currecny
		String("syn_currecny_to_games", p.SyncCurrencyToGames).
		String("status", p.Status)
}

// AddGameBrand 新增游戏品牌
func (a *API) AddGameBrand(ctx context.Context, p GameBrandParams) (*Ack, error) {
	p.ID = 0
	return ack(ctx, a, "/game/producttype/add", p.fields())
}

// EditGameBrand 编辑游戏品牌
func (a *API) EditGameBrand(ctx context.Context, p GameBrandParams) (*Ack, error) {
	return ack(ctx, a, "/game/producttype/edit", p.fields())
}

// DeleteBatchGameBrand 批量删除游戏品牌
func (a *API) DeleteBatchGameBrand(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/game/producttype/del_batch", NewFields().Set("ids", JoinIDs(ids)))
}

// SyncGameBrand 同步品牌下的游戏
func (a *API) SyncGameBrand(ctx context.Context, id int64) (*Ack, error) {
	return ack(ctx, a, "/game/producttype/syn_games", NewFields().SetInt("id", id))
}

// SyncGameBrandPics 同步品牌下的游戏图片
func (a *API) SyncGameBrandPics(ctx context.Context, id int64) (*Ack, error) {
	return ack(ctx, a, "/game/producttype/syn_pics", NewFields().SetInt("id", id))
}

// TestGameData 测试游戏返回的地址
type TestGameData struct {
	GameURL string `json:"game_url"`
}

// TestGameBrand 测试游戏品牌，返回可打开的游戏地址
func (a *API) TestGameBrand(ctx context.Context, id int64) (*model.Envelope[TestGameData], error) {
	return submit[TestGameData](ctx, a, "/game/producttype/test_game", NewFields().SetInt("id", id))
}

// BatchStatusParams 批量切换状态参数
type BatchStatusParams struct {
	IDs    []int64
	Status string
}

func (p BatchStatusParams) fields() *Fields {
	return NewFields().Set("ids", JoinIDs(p.IDs)).Set("status", p.Status)
}

// SwitchGameBrandStatus 批量切换游戏品牌状态
func (a *API) SwitchGameBrandStatus(ctx context.Context, p BatchStatusParams) (*Ack, error) {
	return ack(ctx, a, "/game/producttype/status_batch", p.fields())
}

// ---- 游戏 ----

// GameItem 游戏
type GameItem struct {
	ID            int64            `json:"id"`
	GameID        model.FlexString `json:"game_id"`
	Name          string           `json:"name"`
	NameCN        string           `json:"name_cn"`
	Pic           string           `json:"pic"`
	Provider      string           `json:"provider"`
	WalletType    model.FlexInt    `json:"wallet_type"`
	Currency      string           `json:"currency"`
	ProductCode   string           `json:"product_code"`
	TypeID        model.FlexInt    `json:"type_id"`
	CommonName    string           `json:"common_name"`
	CommonContent string           `json:"common_content"`
	IsLocal       model.FlexInt    `json:"is_local"`
	Weigh         model.FlexInt    `json:"weigh"`
	Status        model.FlexString `json:"status"`
	CreateTime    model.FlexString `json:"createtime"`
	UpdateTime    model.FlexString `json:"updatetime"`
}

// GameListParams 游戏查询参数
type GameListParams struct {
	ID              string
	GameID          string
	Name            string
	GameCode        string
	Status          string
	CreateStartTime string
	CreateEndTime   string
	UpdateStartTime string
	UpdateEndTime   string
	WalletType      string
	NameCN          string
	Provider        string
	CommonName      string
	ProductCode     string
	CommonContent   string
	TypeID          string
	IsLocal         string
	HasPic          string
	Currency        string
	PageNumber      int
	PageSize        int
}

// GetGameList 获取游戏列表
func (a *API) GetGameList(ctx context.Context, p GameListParams) (*model.Envelope[model.Page[GameItem]], error) {
	q := NewFields().
		String("id", p.ID).
		String("game_id", p.GameID).
		String("name", p.Name).
		String("game_code", p.GameCode).
		String("status", p.Status).
		String("create_start_time", p.CreateStartTime).
		String("create_end_time", p.CreateEndTime).
		String("update_start_time", p.UpdateStartTime).
		String("update_end_time", p.UpdateEndTime).
		String("wallet_type", p.WalletType).
		String("name_cn", p.NameCN).
		String("provider", p.Provider).
		String("common_name", p.CommonName).
		String("product_code", p.ProductCode).
		String("common_content", p.CommonContent).
		String("type_id", p.TypeID).
		String("is_local", p.IsLocal).
		String("has_pic", p.HasPic).
		String("currency", p.Currency).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
	return list[GameItem](ctx, a, "/game/product/index", q)
}

// GameParams 新增或编辑游戏，空值字段不提交
type GameParams struct {
	ID            int64
	GameID        string
	Name          string
	NameCN        string
	WalletType    string
	Provider      string
	CommonName    string
	ProductCode   string
	CommonContent string
	TypeID        string
	Pic           string
	WebPic        string
	WebpPic       string
	Weigh         string
	Ranking       string
	FeeRate       string
	PrizeRate     string
	Tag           string
	PicText       string
	PicTextStatus string
	Recommend     string
	Status        string
	Currency      string
}

func (p GameParams) fields() *Fields {
	f := NewFields()
	if p.ID != 0 {
		f.SetInt("id", p.ID)
	}
	return f.
		String("game_id", p.GameID).
		String("name", p.Name).
		String("name_cn", p.NameCN).
		String("wallet_type", p.WalletType).
		String("provider", p.Provider).
		String("common_name", p.CommonName).
		String("product_code", p.ProductCode).
		String("common_content", p.CommonContent).
		String("type_id", p.TypeID).
		String("pic", p.Pic).
		String("web_pic", p.WebPic).
		String("webp_pic", p.WebpPic).
		String("weigh", p.Weigh).
		String("ranking", p.Ranking).
		String("fee_rate", p.FeeRate).
		String("prize_rate", p.PrizeRate).
		String("tag", p.Tag).
		String("pic_text", p.PicText).
		String("pic_text_status", p.PicTextStatus).
		String("recommend", p.Recommend).
		String("status", p.Status).
		String("currency", p.Currency)
}

// AddGame 新增游戏
func (a *API) AddGame(ctx context.Context, p GameParams) (*Ack, error) {
	p.ID = 0
	return ack(ctx, a, "/game/product/add", p.fields())
}

// EditGame 编辑游戏
func (a *API) EditGame(ctx context.Context, p GameParams) (*Ack, error) {
	return ack(ctx, a, "/game/product/edit", p.fields())
}

// DeleteBatchGame 批量删除游戏
func (a *API) DeleteBatchGame(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/game/product/del_batch", NewFields().Set("ids", JoinIDs(ids)))
}

// SwitchGameStatus 批量切换游戏状态
func (a *API) SwitchGameStatus(ctx context.Context, p BatchStatusParams) (*Ack, error) {
	return ack(ctx, a, "/game/product/status_batch", p.fields())
}

// TestGames 批量测试游戏
func (a *API) TestGames(ctx context.Context, ids []int64) (*Ack, error) {
	return ack(ctx, a, "/game/product/test_games", NewFields().Set("ids", JoinIDs(ids)))
}
