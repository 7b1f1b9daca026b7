package api

import (
	"context"

	"github.com/vera-byte/vgo-admin/pkg/model"
)

// GameStatsItem 游戏统计行，日报带 Date，月报带 Month
type GameStatsItem struct {
	ID          int64            `json:"id"`
	Date        string           `json:"date,omitempty"`
	Month       string           `json:"month,omitempty"`
	AdminID     int64            `json:"admin_id"`
	AdminName   string           `json:"admin_name"`
	GameID      model.FlexString `json:"game_id"`
	GameName    string           `json:"game_name"`
	TypeName    string           `json:"type_name"`
	Provider    string           `json:"provider"`
	WalletType  model.FlexInt    `json:"wallet_type"`
	Currency    string           `json:"currency"`
	Bet         model.FlexString `json:"bet"`
	Win         model.FlexString `json:"win"`
	CompanyWin  model.FlexString `json:"company_win"`
	CostPrice   model.FlexString `json:"cost_price"`
	AgentPrice  model.FlexString `json:"agent_price"`
	Cost        model.FlexString `json:"cost"`
	AgentSale   model.FlexString `json:"agent_sale"`
	Sale        model.FlexString `json:"sale"`
	AgentProfit model.FlexString `json:"agent_profit"`
	Profit      model.FlexString `json:"profit"`
}

// GameStatsParams 游戏统计查询参数
// 日报使用 StartTime/EndTime，月报使用 Month
type GameStatsParams struct {
	AdminID    string
	GameID     string
	AdminName  string
	TypeName   string
	Provider   string
	WalletType string
	GameName   string
	StartTime  string
	EndTime    string
	Month      string
	PageNumber int
	PageSize   int
}

func (p GameStatsParams) fields() *Fields {
	return NewFields().
		String("admin_id", p.AdminID).
		String("game_id", p.GameID).
		String("admin_name", p.AdminName).
		String("type_name", p.TypeName).
		String("provider", p.Provider).
		String("wallet_type", p.WalletType).
		String("game_name", p.GameName).
		String("start_time", p.StartTime).
		String("end_time", p.EndTime).
		String("month", p.Month).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
}

// GetGameStatsDaily 游戏日统计
func (a *API) GetGameStatsDaily(ctx context.Context, p GameStatsParams) (*model.Envelope[model.Page[GameStatsItem]], error) {
	return list[GameStatsItem](ctx, a, "/data/game/index", p.fields())
}

// GetGameStatsMonthly 游戏月统计
func (a *API) GetGameStatsMonthly(ctx context.Context, p GameStatsParams) (*model.Envelope[model.Page[GameStatsItem]], error) {
	return list[GameStatsItem](ctx, a, "/data/gamemonth/index", p.fields())
}

// PlayerStatsItem 玩家统计行
type PlayerStatsItem struct {
	ID         int64            `json:"id"`
	Date       string           `json:"date,omitempty"`
	Month      string           `json:"month,omitempty"`
	AdminID    int64            `json:"admin_id"`
	UserID     int64            `json:"user_id"`
	Currency   string           `json:"currency"`
	Bet        model.FlexString `json:"bet"`
	Win        model.FlexString `json:"win"`
	CompanyWin model.FlexString `json:"company_win"`
}

// PlayerStatsParams 玩家统计查询参数
type PlayerStatsParams struct {
	AdminID    string
	UserID     string
	Currency   string
	WalletType string
	GameName   string
	StartTime  string
	EndTime    string
	Month      string
	PageNumber int
	PageSize   int
}

func (p PlayerStatsParams) fields() *Fields {
	return NewFields().
		String("admin_id", p.AdminID).
		String("user_id", p.UserID).
		String("currency", p.Currency).
		String("wallet_type", p.WalletType).
		String("game_name", p.GameName).
		String("start_time", p.StartTime).
		String("end_time", p.EndTime).
		String("month", p.Month).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
}

// GetPlayerStatsDaily 玩家日统计
func (a *API) GetPlayerStatsDaily(ctx context.Context, p PlayerStatsParams) (*model.Envelope[model.Page[PlayerStatsItem]], error) {
	return list[PlayerStatsItem](ctx, a, "/data/player/index", p.fields())
}

// GetPlayerStatsMonthly 玩家月统计
func (a *API) GetPlayerStatsMonthly(ctx context.Context, p PlayerStatsParams) (*model.Envelope[model.Page[PlayerStatsItem]], error) {
	return list[PlayerStatsItem](ctx, a, "/data/playermonth/index", p.fields())
}

// ProductStatsItem 产品统计行
type ProductStatsItem struct {
	ID          int64            `json:"id"`
	Date        string           `json:"date,omitempty"`
	Month       string           `json:"month,omitempty"`
	AdminID     int64            `json:"admin_id"`
	TypeName    string           `json:"type_name"`
	Provider    string           `json:"provider"`
	Currency    string           `json:"currency"`
	Bet         model.FlexString `json:"bet"`
	Win         model.FlexString `json:"win"`
	CompanyWin  model.FlexString `json:"company_win"`
	CostPrice   model.FlexString `json:"cost_price"`
	AgentPrice  model.FlexString `json:"agent_price"`
	Cost        model.FlexString `json:"cost"`
	AgentSale   model.FlexString `json:"agent_sale"`
	Sale        model.FlexString `json:"sale"`
	AgentProfit model.FlexString `json:"agent_profit"`
	Profit      model.FlexString `json:"profit"`
}

// ProductStatsParams 产品统计查询参数
type ProductStatsParams struct {
	AdminID    string
	TypeName   string
	Provider   string
	StartTime  string
	EndTime    string
	Month      string
	PageNumber int
	PageSize   int
}

func (p ProductStatsParams) fields() *Fields {
	return NewFields().
		String("admin_id", p.AdminID).
		String("type_name", p.TypeName).
		String("provider", p.Provider).
		String("start_time", p.StartTime).
		String("end_time", p.EndTime).
		String("month", p.Month).
		Int("pageNumber", p.PageNumber).
		Int("pageSize", p.PageSize)
}

// GetProductStatsDaily 产品日统计
func (a *API) GetProductStatsDaily(ctx context.Context, p ProductStatsParams) (*model.Envelope[model.Page[ProductStatsItem]], error) {
	return list[ProductStatsItem](ctx, a, "/data/product/index", p.fields())
}

// GetProductStatsMonthly 产品月统计
func (a *API) GetProductStatsMonthly(ctx context.Context, p ProductStatsParams) (*model.Envelope[model.Page[ProductStatsItem]], error) {
	return list[ProductStatsItem](ctx, a, "/data/productmonth/index", p.fields())
}
