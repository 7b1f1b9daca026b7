package api

import (
	"context"

	"github.com/vera-byte/vgo-admin/pkg/model"
)

// TransferPlayerItem 转账钱包玩家
type TransferPlayerItem struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Balance      float64 `json:"balance"`
	Currency     string  `json:"currency"`
	Merchant     string  `json:"merchant"`
	TotalBet     float64 `json:"totalBet"`
	TotalPet     float64 `json:"totalPet"`
	TotalWinLoss float64 `json:"totalWinLoss"`
	LoginTime    string  `json:"loginTime"`
	LoginIP      string  `json:"loginIp"`
	RegisterTime string  `json:"registerTime"`
	RegisterIP   string  `json:"registerIP"`
	Status       bool    `json:"status"`
}

// TransferPlayerListParams 转账钱包玩家查询参数，零值字段不提交
type TransferPlayerListParams struct {
	Page              int    `json:"page,omitempty"`
	PageSize          int    `json:"pageSize,omitempty"`
	ID                string `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	UserID            string `json:"userId,omitempty"`
	Status            string `json:"status,omitempty"`
	RegisterTimeStart string `json:"registerTimeStart,omitempty"`
	RegisterTimeEnd   string `json:"registerTimeEnd,omitempty"`
}

// TransferPlayerPage 玩家列表分页
type TransferPlayerPage struct {
	List     []TransferPlayerItem `json:"list"`
	Total    model.FlexInt        `json:"total"`
	Page     model.FlexInt        `json:"page"`
	PageSize model.FlexInt        `json:"pageSize"`
}

// GetTransferPlayerList 获取转账钱包玩家列表
// 该接口使用 JSON 请求体与 {success,message,data} 响应
func (a *API) GetTransferPlayerList(ctx context.Context, p TransferPlayerListParams) (*model.Result[TransferPlayerPage], error) {
	var out model.Result[TransferPlayerPage]
	if err := a.postJSON(ctx, "/player/transfer/list", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SwitchPlayerStatusParams 切换玩家状态参数
type SwitchPlayerStatusParams struct {
	ID     int64 `json:"id"`
	Status bool  `json:"status"`
}

// SwitchPlayerStatus 启用或禁用玩家
func (a *API) SwitchPlayerStatus(ctx context.Context, p SwitchPlayerStatusParams) (*model.Result[SwitchPlayerStatusParams], error) {
	var out model.Result[SwitchPlayerStatusParams]
	if err := a.postJSON(ctx, "/player/transfer/switch-status", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
