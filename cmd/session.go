package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vera-byte/vgo-admin/internal/session"
	"github.com/vera-byte/vgo-admin/pkg/api"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// PasswordEnv 未通过 --password 传入时读取的环境变量
const PasswordEnv = "VGO_PASSWORD"

var loginOpts struct {
	username   string
	password   string
	captcha    string
	googleCode string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with username and password",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		password := loginOpts.password
		if password == "" {
			password = os.Getenv(PasswordEnv)
		}
		if loginOpts.username == "" || password == "" {
			return fmt.Errorf("username and password are required (--password or %s)", PasswordEnv)
		}

		res, err := a.store.LoginByUsername(ctx, api.LoginParams{
			Username:   loginOpts.username,
			Password:   password,
			Captcha:    loginOpts.captcha,
			GoogleCode: loginOpts.googleCode,
		})
		if err != nil {
			return err
		}
		if !res.Success {
			return errors.New(res.Message)
		}
		if !jsonOutput {
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", loginOpts.username)
		}
		return printSession(cmd, a.store)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		// 通知后台失败不影响本地登出
		if a.store.IsAuthenticated() {
			if resp, err := a.api.Logout(ctx); err != nil {
				a.logger.Warn("Backend logout failed", zap.Error(err))
			} else if err := resp.Err(); err != nil {
				a.logger.Warn("Backend logout rejected", zap.Error(err))
			}
		}
		if err := a.store.LogOut(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	}),
}

var refreshLogout bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the access token",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if !a.store.IsAuthenticated() {
			return errors.New("not logged in")
		}
		_, err := a.store.HandRefreshToken(ctx, "")
		if errors.Is(err, session.ErrRefreshRejected) && refreshLogout {
			_ = a.store.LogOut(ctx)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Token refreshed, expires %s\n", a.store.Snapshot().ExpiresAt().Format(time.DateTime))
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		return printSession(cmd, a.store)
	}),
}

func init() {
	loginCmd.Flags().StringVarP(&loginOpts.username, "username", "u", "", "account name")
	loginCmd.Flags().StringVarP(&loginOpts.password, "password", "p", "", "password, defaults to $"+PasswordEnv)
	loginCmd.Flags().StringVar(&loginOpts.captcha, "captcha", "", "captcha answer")
	loginCmd.Flags().StringVar(&loginOpts.googleCode, "google-code", "", "Google Authenticator code")

	refreshCmd.Flags().BoolVar(&refreshLogout, "logout-on-reject", true, "clear the session when the backend rejects the refresh")
}

// printSession 输出会话信息，不输出令牌
func printSession(cmd *cobra.Command, s *session.Store) error {
	info := s.Snapshot()
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"state":       s.State().String(),
			"username":    info.Username,
			"nickname":    info.Nickname,
			"roles":       info.Roles,
			"permissions": info.Permissions,
			"email":       info.UserEmail,
			"expires":     info.Expires,
			"expired":     s.IsExpired(),
		})
	}

	expires := "-"
	if at := info.ExpiresAt(); !at.IsZero() {
		expires = at.Format(time.DateTime)
	}
	table := newTable(cmd.OutOrStdout(), []string{"Field", "Value"})
	table.AppendBulk([][]string{
		{"State", s.State().String()},
		{"Username", info.Username},
		{"Nickname", info.Nickname},
		{"Roles", strings.Join(info.Roles, ",")},
		{"Permissions", strings.Join(info.Permissions, ",")},
		{"Email", info.UserEmail},
		{"Expires", expires},
		{"Expired", fmt.Sprint(s.IsExpired())},
	})
	table.Render()
	return nil
}
