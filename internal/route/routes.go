package route

// remainingRank 隐藏路由排在所有业务分区之后
const remainingRank = 1000

// Options 路由声明选项
type Options struct {
	// HideHome 隐藏首页、单一钱包与附件菜单
	HideHome bool
}

// page 声明菜单内的页面节点
func page(path, name, component, title string) *Node {
	return &Node{
		Path:      path,
		Name:      name,
		Component: component,
		Meta:      Meta{Title: title, ShowLink: show(true), ShowParent: true},
	}
}

// section 声明布局分区
func section(path, name, redirect, icon, title string, rank int, children ...*Node) *Node {
	return &Node{
		Path:      path,
		Name:      name,
		Component: LayoutComponent,
		Redirect:  redirect,
		Meta:      Meta{Title: title, Icon: icon, Rank: rank},
		Children:  children,
	}
}

// Sections 返回全部业务分区
func Sections(opts Options) []*Node {
	dashboard := page("/home", "Dashboard", "home/index", "menus.dashboard")
	dashboard.Meta.ShowLink = show(!opts.HideHome)

	transfer := &Node{
		Path:      "/player/transfer",
		Name:      "Transfer",
		Component: "player/transfer",
		Meta:      Meta{Title: "menus.transfer"},
		Children: []*Node{
			{
				Path:      "/player/transfer/deposit-withdrawal-details",
				Name:      "DepositWithdrawalDetails",
				Component: "player/depositAndWithdrawalDetails",
				Meta:      Meta{Title: "存取款明细", KeepAlive: true},
			},
			{
				Path:      "/player/transfer/betting-details",
				Name:      "BettingDetails",
				Component: "player/bettingDetails",
				Meta:      Meta{Title: "投注明细", KeepAlive: true},
			},
		},
	}
	single := page("/player/single", "Single", "player/single", "menus.single")
	single.Meta.ShowLink = show(!opts.HideHome)
	single.Children = []*Node{
		page("/player/single/betting-details", "SingleBettingDetails", "player/singleBettingDetails", "投注明细"),
	}

	merchantList := page("/merchant/merchant-list", "MerchantList", "merchant/merchantList", "商户列表")
	adjustment := page("/merchant/adjustment-record", "AdjustmentRecord", "merchant/adjustmentRecord", "调额记录")
	adjustment.Meta.KeepAlive = true
	merchantList.Children = []*Node{adjustment}

	attachment := &Node{
		Path:      "/system/attachment",
		Name:      "Attachment",
		Component: "system/attachment/index",
		Meta:      Meta{Title: "menus.attachment", ShowLink: show(!opts.HideHome), KeepAlive: true},
	}

	return []*Node{
		section("/", "Home", "/home", "home", "menus.home", 0, dashboard),
		section("/player", "Player", "/player/transfer", "people", "menus.player", 1, transfer, single),
		section("/game", "Game", "/game/supplier", "gamepad", "menus.game", 2,
			page("/game/supplier", "Supplier", "game/supplier", "供应商"),
			page("/game/game-play-type", "GamePlayType", "game/gamePlayType", "玩法类型"),
			page("/game/games", "Games", "game/games", "游戏列表"),
			page("/game/game-brand", "GameBrand", "game/gameBrand", "游戏品牌"),
		),
		section("/merchant", "Merchant", "/merchant/merchant-list", "store", "商户管理", 3,
			merchantList,
			page("/merchant/merchant-account", "MerchantAccount", "merchant/merchantAccount", "商户账号"),
			page("/merchant/merchant-product", "MerchantProduct", "merchant/merchantProduct", "商户产品"),
			page("/merchant/currency", "Currency", "merchant/currency", "币种管理"),
			page("/merchant/wlg-account", "WlgAccount", "merchant/wlgAccount", "WLG账号管理"),
			page("/merchant/pgf-account", "PgfAccount", "merchant/pgfAccount", "PGF账号管理"),
			page("/merchant/operation-log", "OperationLog", "merchant/operationLog", "操作日志"),
		),
		section("/agent", "Agent", "/agent/agent-list", "user", "代理管理", 4,
			page("/agent/agent-list", "AgentList", "agent/agentList", "代理列表"),
		),
		section("/finance", "Finance", "/finance/merchant-bill-detail", "wallet", "财务管理", 4,
			page("/finance/merchant-bill-detail", "MerchantBillDetail", "finance/merchantBillDetail", "明细"),
		),
		section("/article", "Article", "/article/help", "document", "文章管理", 5,
			page("/article/help", "Help", "article/help", "帮助管理"),
		),
		section("/statistics", "Statistics", "/statistics/player", "data-line", "数据统计", 6,
			page("/statistics/player", "PlayerStatistics", "statistics/playerStatistics", "玩家统计"),
			page("/statistics/game", "GameStatistics", "statistics/gameStatistics", "游戏统计"),
			page("/statistics/product", "ProductStatistics", "statistics/productStatistics", "产品统计"),
			page("/statistics/merchant-daily", "MerchantDailyReport", "statistics/merchantDailyReport", "商户日报表"),
		),
		section("/permission", "Permission", "/permission/account", "lock", "权限管理", 7,
			page("/permission/account", "AccountManagement", "permission/accountManagement", "账号管理"),
			page("/permission/role", "RoleManagement", "permission/roleManagement", "角色管理"),
			page("/permission/menu", "MenuManagement", "permission/menuManagement", "菜单管理"),
			page("/permission/game-test-log", "GameTestLog", "permission/gameTestLog", "游戏测试日志"),
			page("/permission/operation-log", "OperationLog", "permission/operationLog", "操作日志"),
		),
		section("/system", "System", "/system/attachment", "setting", "menus.system", 10, attachment),
	}
}

// Remaining 不在菜单中显示的路由
func Remaining() []*Node {
	hidden := func(path, name, component, title string) *Node {
		return &Node{
			Path:      path,
			Name:      name,
			Component: component,
			Meta:      Meta{Title: title, ShowLink: show(false), Rank: remainingRank},
		}
	}

	redirect := hidden("/redirect", "", LayoutComponent, "status.pureLoad")
	redirect.Children = []*Node{{
		Path:      "/redirect/:path(.*)",
		Name:      "Redirect",
		Component: "layout/redirect",
	}}

	profile := hidden("/profile", "", LayoutComponent, "个人中心")
	profile.Children = []*Node{
		hidden("/profile/change-password", "ChangePassword", "profile/ChangePassword", "修改密码"),
		hidden("/profile/set-password", "SetPassword", "profile/SetPassword", "设置新密码"),
	}

	return []*Node{
		hidden("/login", "Login", "login/index", "menus.pureLogin"),
		hidden("/access-denied", "AccessDenied", "error/403", "menus.pureAccessDenied"),
		hidden("/server-error", "ServerError", "error/500", "menus.pureServerError"),
		redirect,
		profile,
	}
}

// Build 创建并注册完整的路由表
func Build(table *Table, opts Options) error {
	if err := table.RegisterAll(Sections(opts)); err != nil {
		return err
	}
	return table.RegisterAll(Remaining())
}
