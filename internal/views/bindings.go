package views

import (
	"context"

	"github.com/vera-byte/vgo-admin/internal/route"
	"github.com/vera-byte/vgo-admin/pkg/api"
	"github.com/vera-byte/vgo-admin/pkg/model"
)

var (
	statsColumns   = []string{"id", "date", "month", "admin_id", "currency", "bet", "win", "company_win"}
	opLogColumns   = []string{"id", "username", "title", "url", "ip", "createtime"}
	accountColumns = []string{"id", "username", "email", "groups_text", "agentname", "status", "logintime"}
	brandColumns   = []string{"id", "name", "shortname", "provider", "product_code", "currency", "wallet_type", "status", "update_time"}
)

// staticComponents 没有列表数据的组件
var staticComponents = []string{
	"home/index",
	"login/index",
	"error/403",
	"error/500",
	"layout/redirect",
	"profile/ChangePassword",
	"profile/SetPassword",
	"player/depositAndWithdrawalDetails",
	"player/bettingDetails",
	"player/single",
	"player/singleBettingDetails",
	"merchant/adjustmentRecord",
	"finance/merchantBillDetail",
	"permission/gameTestLog",
	"statistics/merchantDailyReport",
}

// lists 组件与列表接口的绑定
func lists(a *api.API) map[string]*ListView {
	views := map[string]*ListView{}
	add := func(component string, columns []string, bind binding) {
		views[component] = &ListView{component: component, columns: columns, fetch: bind(columns)}
	}

	add("agent/agentList", []string{"id", "username", "nickname", "parent_name", "groups_text", "merchant_pro_num", "merchant_test_num", "status", "createtime"},
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.AgentItem]], error) {
			return a.GetAgentList(ctx, api.AgentListParams{
				ID:             q.Get("id"),
				Username:       q.Get("username"),
				Status:         q.Get("status"),
				LoginStartTime: q.Get("login_start_time"),
				LoginEndTime:   q.Get("login_end_time"),
				PageNumber:     q.PageNumber,
				PageSize:       q.PageSize,
			})
		}))
	add("merchant/merchantList", []string{"id", "username", "nickname", "parent_name", "groups_text", "status", "createtime"},
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.MerchantItem]], error) {
			return a.GetMerchantList(ctx, api.MerchantListParams{
				ID:         q.Get("id"),
				Username:   q.Get("username"),
				Status:     q.Get("status"),
				WalletType: q.Get("wallet_type"),
				Currency:   q.Get("currency"),
				Type:       q.Get("type"),
				APIKey:     q.Get("api_key"),
				PID:        q.Get("pid"),
				PageNumber: q.PageNumber,
				PageSize:   q.PageSize,
			})
		}))

	accounts := func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.AccountItem]], error) {
		return a.GetAccountList(ctx, api.AccountListParams{
			ID:         q.Get("id"),
			Username:   q.Get("username"),
			Status:     q.Get("status"),
			WalletType: q.Get("wallet_type"),
			MerchantID: q.Get("merchant_id"),
			PageNumber: q.PageNumber,
			PageSize:   q.PageSize,
		})
	}
	add("merchant/merchantAccount", accountColumns, pageOf(accounts))
	add("permission/accountManagement", accountColumns, pageOf(accounts))

	brands := func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.GameBrandItem]], error) {
		return a.GetGameBrandList(ctx, api.GameBrandListParams{
			ID:          q.Get("id"),
			Name:        q.Get("name"),
			ShortName:   q.Get("shortname"),
			Status:      q.Get("status"),
			WalletType:  q.Get("wallet_type"),
			Provider:    q.Get("provider"),
			ProductCode: q.Get("product_code"),
			Currency:    q.Get("currency"),
			PageNumber:  q.PageNumber,
			PageSize:    q.PageSize,
		})
	}
	add("merchant/merchantProduct", brandColumns, pageOf(brands))
	add("game/gameBrand", brandColumns, pageOf(brands))

	add("merchant/currency", []string{"id", "name", "remark", "difftime", "status", "createtime"},
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.CurrencyItem]], error) {
			return a.GetCurrencyList(ctx, api.CurrencyListParams{
				ID:         q.Get("id"),
				Name:       q.Get("name"),
				Status:     q.Get("status"),
				PageNumber: q.PageNumber,
				PageSize:   q.PageSize,
			})
		}))
	add("merchant/wlgAccount", []string{"id", "dealer_name", "dealer_id", "agent_id", "api_host", "currency_id", "status", "remark"},
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.WlgAccountItem]], error) {
			return a.GetWlgAccountList(ctx, api.WlgAccountListParams{
				ID:         q.Get("id"),
				WalletType: q.Get("wallet_type"),
				Status:     q.Get("status"),
				DealerName: q.Get("dealer_name"),
				CurrencyID: q.Get("currency_id"),
				PageNumber: q.PageNumber,
				PageSize:   q.PageSize,
			})
		}))
	add("merchant/pgfAccount", []string{"id", "wallet_type", "type", "token", "api_host", "status", "updatetime"},
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.PgfAccountItem]], error) {
			return a.GetPgfAccountList(ctx, api.PgfAccountListParams{
				ID:         q.Get("id"),
				WalletType: q.Get("wallet_type"),
				Status:     q.Get("status"),
				Token:      q.Get("token"),
				CurrencyID: q.Get("currency_id"),
				PageNumber: q.PageNumber,
				PageSize:   q.PageSize,
			})
		}))

	opLogs := func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.OperationLogItem]], error) {
		return a.GetOperationLogList(ctx, api.OperationLogListParams{
			Username:        q.Get("username"),
			Title:           q.Get("title"),
			URL:             q.Get("url"),
			IP:              q.Get("ip"),
			CreateStartTime: q.Get("create_start_time"),
			CreateEndTime:   q.Get("create_end_time"),
			PageNumber:      q.PageNumber,
			PageSize:        q.PageSize,
		})
	}
	add("merchant/operationLog", opLogColumns, pageOf(opLogs))
	add("permission/operationLog", opLogColumns, pageOf(opLogs))

	add("game/supplier", []string{"id", "name", "remark", "sort_no", "status", "updatetime"},
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.SupplierItem]], error) {
			return a.GetSupplierList(ctx, api.SupplierListParams{
				ID:         q.Get("id"),
				Name:       q.Get("name"),
				Status:     q.Get("status"),
				PageNumber: q.PageNumber,
				PageSize:   q.PageSize,
			})
		}))
	add("game/gamePlayType", []string{"id", "name", "shortname", "name_cn", "sort_no", "status"},
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.GamePlayTypeItem]], error) {
			return a.GetGamePlayTypeList(ctx, api.GamePlayTypeListParams{
				ID:         q.Get("id"),
				Name:       q.Get("name"),
				ShortName:  q.Get("shortname"),
				Status:     q.Get("status"),
				PageNumber: q.PageNumber,
				PageSize:   q.PageSize,
			})
		}))
	add("game/games", []string{"id", "game_id", "name", "name_cn", "provider", "product_code", "currency", "status"},
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.GameItem]], error) {
			return a.GetGameList(ctx, api.GameListParams{
				ID:          q.Get("id"),
				GameID:      q.Get("game_id"),
				Name:        q.Get("name"),
				Status:      q.Get("status"),
				Provider:    q.Get("provider"),
				ProductCode: q.Get("product_code"),
				Currency:    q.Get("currency"),
				PageNumber:  q.PageNumber,
				PageSize:    q.PageSize,
			})
		}))

	add("permission/roleManagement", []string{"id", "pid", "name", "status", "createtime"},
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.RoleItem]], error) {
			return a.GetRoleList(ctx)
		}))
	add("permission/menuManagement", []string{"id", "pid", "title", "name", "menutype", "weigh", "status"},
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.MenuItem]], error) {
			return a.GetMenuList(ctx, api.MenuListParams{
				ID:         q.Get("id"),
				Title:      q.Get("title"),
				Name:       q.Get("name"),
				Status:     q.Get("status"),
				IsMenu:     q.Get("ismenu"),
				PageNumber: q.PageNumber,
				PageSize:   q.PageSize,
			})
		}))

	add("article/help", []string{"id", "title", "weigh", "createtime", "updatetime"},
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.HelpItem]], error) {
			return a.GetHelpList(ctx, api.HelpListParams{
				ID:         q.Get("id"),
				Title:      q.Get("title"),
				PageNumber: q.PageNumber,
				PageSize:   q.PageSize,
			})
		}))

	// 带 month 条件时查询月报
	add("statistics/playerStatistics", statsColumns,
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.PlayerStatsItem]], error) {
			p := api.PlayerStatsParams{
				AdminID:    q.Get("admin_id"),
				UserID:     q.Get("user_id"),
				Currency:   q.Get("currency"),
				StartTime:  q.Get("start_time"),
				EndTime:    q.Get("end_time"),
				Month:      q.Get("month"),
				PageNumber: q.PageNumber,
				PageSize:   q.PageSize,
			}
			if p.Month != "" {
				return a.GetPlayerStatsMonthly(ctx, p)
			}
			return a.GetPlayerStatsDaily(ctx, p)
		}))
	add("statistics/gameStatistics", append([]string{"game_name", "provider"}, statsColumns...),
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.GameStatsItem]], error) {
			p := api.GameStatsParams{
				AdminID:    q.Get("admin_id"),
				GameID:     q.Get("game_id"),
				Provider:   q.Get("provider"),
				GameName:   q.Get("game_name"),
				StartTime:  q.Get("start_time"),
				EndTime:    q.Get("end_time"),
				Month:      q.Get("month"),
				PageNumber: q.PageNumber,
				PageSize:   q.PageSize,
			}
			if p.Month != "" {
				return a.GetGameStatsMonthly(ctx, p)
			}
			return a.GetGameStatsDaily(ctx, p)
		}))
	add("statistics/productStatistics", append([]string{"type_name", "provider"}, statsColumns...),
		pageOf(func(ctx context.Context, q Query) (*model.Envelope[model.Page[api.ProductStatsItem]], error) {
			p := api.ProductStatsParams{
				AdminID:    q.Get("admin_id"),
				TypeName:   q.Get("type_name"),
				Provider:   q.Get("provider"),
				StartTime:  q.Get("start_time"),
				EndTime:    q.Get("end_time"),
				Month:      q.Get("month"),
				PageNumber: q.PageNumber,
				PageSize:   q.PageSize,
			}
			if p.Month != "" {
				return a.GetProductStatsMonthly(ctx, p)
			}
			return a.GetProductStatsDaily(ctx, p)
		}))

	add("player/transfer", []string{"id", "name", "merchant", "currency", "balance", "totalBet", "totalWinLoss", "status", "loginTime"},
		transferPlayers(a))
	add("system/attachment/index", []string{"group", "name", "title", "type", "value"}, systemConfig(a))

	return views
}

// Register 把全部组件的加载函数注册到路由表
func Register(table *route.Table, a *api.API) {
	for component, loader := range Loaders(a) {
		table.RegisterLoader(component, loader)
	}
}

// Loaders 组件键到加载函数的映射
func Loaders(a *api.API) map[string]route.Loader {
	loaders := make(map[string]route.Loader)
	for component, v := range lists(a) {
		loaders[component] = func(context.Context, *route.Node) (route.View, error) {
			return v, nil
		}
	}
	for _, component := range staticComponents {
		view := StaticView{component: component}
		loaders[component] = func(context.Context, *route.Node) (route.View, error) {
			return view, nil
		}
	}
	return loaders
}
