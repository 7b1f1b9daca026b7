package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vera-byte/vgo-admin/pkg/model"
)

// LoginParams 登录参数
type LoginParams struct {
	Username   string
	Password   string
	Captcha    string
	GoogleCode string
}

// LoginData 登录成功返回的数据
type LoginData struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	// GroupName 后台字段名即为 gruop_name
	GroupName    string `json:"gruop_name"`
	GoogleStatus *int   `json:"google_status,omitempty"`
}

// Login 账号密码登录
func (a *API) Login(ctx context.Context, p LoginParams) (*model.Envelope[LoginData], error) {
	form := NewFields().
		Set("username", p.Username).
		Set("password", p.Password).
		String("captcha", p.Captcha).
		String("google_code", p.GoogleCode)
	return submit[LoginData](ctx, a, "/login/login", form)
}

// Logout 通知后台注销当前令牌
func (a *API) Logout(ctx context.Context) (*Ack, error) {
	return ack(ctx, a, "/login/logout", nil)
}

// RefreshTokenParams 刷新令牌参数
type RefreshTokenParams struct {
	RefreshToken string
}

// RefreshData 刷新令牌返回的数据
type RefreshData struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	Expires      ExpiresAt `json:"expires"`
}

// RefreshToken 使用 refreshToken 换取新的 accessToken
func (a *API) RefreshToken(ctx context.Context, p RefreshTokenParams) (*model.Result[RefreshData], error) {
	var out model.Result[RefreshData]
	form := NewFields().Set("refreshToken", p.RefreshToken)
	if err := a.postForm(ctx, BaseURLAPI("/login/refresh"), form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecoverData 找回密码时返回的账号信息
type RecoverData struct {
	Email         string `json:"email,omitempty"`
	HasGoogleAuth bool   `json:"hasGoogleAuth,omitempty"`
}

// RecoverPassword 找回密码第一步：校验账号
func (a *API) RecoverPassword(ctx context.Context, account string) (*model.Result[RecoverData], error) {
	return a.password(ctx, "/password/recover", NewFields().Set("account", account))
}

// SendVerificationCode 发送邮箱验证码
func (a *API) SendVerificationCode(ctx context.Context, account string) (*model.Result[RecoverData], error) {
	return a.password(ctx, "/password/send-code", NewFields().Set("account", account))
}

// VerifyCodeParams 验证码校验参数
type VerifyCodeParams struct {
	Account    string
	EmailCode  string
	GoogleCode string
}

// VerifyCode 校验邮箱验证码与可选的谷歌验证码
func (a *API) VerifyCode(ctx context.Context, p VerifyCodeParams) (*model.Result[RecoverData], error) {
	form := NewFields().
		Set("account", p.Account).
		Set("emailCode", p.EmailCode).
		String("googleCode", p.GoogleCode)
	return a.password(ctx, "/password/verify-code", form)
}

// ResetPasswordParams 重置密码参数
type ResetPasswordParams struct {
	Account         string
	Password        string
	ConfirmPassword string
}

// ResetPassword 重置密码
func (a *API) ResetPassword(ctx context.Context, p ResetPasswordParams) (*model.Result[RecoverData], error) {
	form := NewFields().
		Set("account", p.Account).
		Set("password", p.Password).
		Set("confirmPassword", p.ConfirmPassword)
	return a.password(ctx, "/password/reset", form)
}

func (a *API) password(ctx context.Context, path string, form *Fields) (*model.Result[RecoverData], error) {
	var out model.Result[RecoverData]
	if err := a.postForm(ctx, BaseURLAPI(path), form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExpiresAt 令牌过期时间
// 后台可能返回毫秒/秒时间戳，或 "2006/01/02 15:04:05" 等格式的字符串
type ExpiresAt struct {
	time.Time
}

var expiresLayouts = []string{
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// UnmarshalJSON 解析时间戳或时间字符串
func (e *ExpiresAt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		e.Time = time.Time{}
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			e.Time = time.Time{}
			return nil
		}
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		e.Time = fromEpoch(n)
		return nil
	}
	for _, layout := range expiresLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			e.Time = t
			return nil
		}
	}
	return fmt.Errorf("expires: unsupported value %q", raw)
}

// MarshalJSON 输出毫秒时间戳
func (e ExpiresAt) MarshalJSON() ([]byte, error) {
	if e.IsZero() {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatInt(e.UnixMilli(), 10)), nil
}

// fromEpoch 13 位按毫秒，其余按秒
func fromEpoch(n int64) time.Time {
	if n <= 0 {
		return time.Time{}
	}
	if n >= 1e12 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}
