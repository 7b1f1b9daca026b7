package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vera-byte/vgo-admin/internal/config"
	"github.com/vera-byte/vgo-admin/internal/route"
	"github.com/vera-byte/vgo-admin/internal/session"
	"github.com/vera-byte/vgo-admin/internal/storage"
	"github.com/vera-byte/vgo-admin/internal/views"
	"github.com/vera-byte/vgo-admin/pkg/api"
	"github.com/vera-byte/vgo-admin/pkg/client"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	jsonOutput bool
)

// RootCmd 根命令
var RootCmd = &cobra.Command{
	Use:   "vgo-admin",
	Short: "VGO admin console",
	Long: `VGO admin console drives the multi-tenant gaming platform admin backend:
session management, route navigation and resource listing.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config/config.yaml)")
	RootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of tables")

	RootCmd.AddCommand(loginCmd, logoutCmd, refreshCmd, whoamiCmd)
	RootCmd.AddCommand(routesCmd, menusCmd, openCmd, listCmd)
	RootCmd.AddCommand(serveCmd)
}

// app 一次命令执行所需的全部组件
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	storage storage.Storage
	client  *client.Client
	api     *api.API
	store   *session.Store
	table   *route.Table
	router  *route.Router
	tr      *route.Translator
}

// newApp 加载配置并装配组件
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := storage.New(ctx, storage.Config{
		Driver:    cfg.Session.Driver,
		Dir:       cfg.Session.Dir,
		RedisAddr: cfg.Session.RedisAddr,
		RedisDB:   cfg.Session.RedisDB,
		RedisPass: cfg.Session.RedisPass,
		Prefix:    cfg.Session.Prefix,
	}, logger)
	if err != nil {
		return nil, err
	}

	c := client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.TimeoutDuration(),
	}, client.WithLogger(logger))
	a := api.New(c)

	table := route.NewTable(logger)
	if err := route.Build(table, route.Options{HideHome: cfg.HideHome}); err != nil {
		return nil, fmt.Errorf("build routes: %w", err)
	}
	views.Register(table, a)
	router := route.NewRouter(table, nil, logger)

	store, err := session.NewStore(ctx, st, a,
		session.WithNavigator(router),
		session.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	c.SetTokenSource(store)

	return &app{
		cfg:     cfg,
		logger:  logger,
		storage: st,
		client:  c,
		api:     a,
		store:   store,
		table:   table,
		router:  router,
		tr:      route.NewTranslator(cfg.Locale),
	}, nil
}

// Close 释放存储连接
func (a *app) Close() {
	if closer, ok := a.storage.(io.Closer); ok {
		_ = closer.Close()
	}
	_ = a.logger.Sync()
}

// newLogger CLI 输出走 stdout，日志写到 stderr
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// withApp 包装需要组件的命令
func withApp(run func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(ctx, a, cmd, args)
	}
}

// printJSON 以缩进 JSON 输出
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTable 统一的表格样式
func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// truncate 截断过长的单元格
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
