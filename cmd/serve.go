package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	adminapi "github.com/vera-byte/vgo-admin/internal/api"
	"github.com/vera-byte/vgo-admin/internal/middleware"
	"github.com/vera-byte/vgo-admin/internal/session"
	"github.com/vera-byte/vgo-admin/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// loginWindow 登录限流的统计窗口
const loginWindow = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the navigation host",
	Long:  `Serve the session, menu and navigation endpoints over HTTP, with gRPC health checks and Prometheus metrics.`,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		return runServer(ctx, a, cmd)
	}),
}

// newEngine 组装 HTTP 路由
func newEngine(a *app) *gin.Engine {
	gin.SetMode(a.cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"session": a.store.State().String(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var client *redis.Client
	if r, ok := a.storage.(*storage.Redis); ok {
		client = r.Client()
	}
	limiter := middleware.NewLoginLimiter(a.cfg.Server.LoginLimit, loginWindow, client, a.cfg.Session.Prefix+":login")

	adminapi.NewHandler(a.store, a.router, a.tr, limiter, a.logger).Register(router)
	return router
}

// runServer 启动 HTTP 与 gRPC 健康检查，收到中断信号后优雅关闭
func runServer(ctx context.Context, a *app, cmd *cobra.Command) error {
	logger := a.logger
	logger.Info("Starting VGO admin host...")

	router := newEngine(a)
	srv := &http.Server{
		Addr:    ":" + a.cfg.Server.Port,
		Handler: router,
	}

	var (
		grpcServer   *grpc.Server
		healthServer *health.Server
	)
	if a.cfg.Server.GRPCPort != "" {
		lis, err := net.Listen("tcp", ":"+a.cfg.Server.GRPCPort)
		if err != nil {
			return err
		}
		grpcServer = grpc.NewServer()
		healthServer = health.NewServer()
		grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		go func() {
			logger.Info("Starting gRPC health server", zap.String("port", a.cfg.Server.GRPCPort))
			if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				logger.Error("gRPC server stopped", zap.Error(err))
			}
		}()
	}

	var refresher *session.Refresher
	if a.cfg.Refresh.Enabled {
		var err error
		refresher, err = session.NewRefresher(a.store, a.cfg.Refresh.Schedule, logger)
		if err != nil {
			return err
		}
		refresher.Start()
		logger.Info("Token refresher started", zap.String("schedule", a.cfg.Refresh.Schedule))
	}

	printServerInfo(cmd, router, a)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var serveErr error
	select {
	case <-quit:
	case <-ctx.Done():
	case serveErr = <-errCh:
		logger.Error("Failed to start server", zap.Error(serveErr))
	}
	logger.Info("Shutting down server...")

	if refresher != nil {
		refresher.Stop()
	}
	if healthServer != nil {
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(serveErr, err)
	}

	logger.Info("Server exited")
	return serveErr
}

// printServerInfo 输出 HTTP 路由与导航路由表
func printServerInfo(cmd *cobra.Command, router *gin.Engine, a *app) {
	a.logger.Info("=== VGO Admin Host Information ===")

	routes := router.Routes()
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	w := cmd.ErrOrStderr()
	t := newTable(w, []string{"Method", "Path", "Handler"})
	for _, r := range routes {
		t.Append([]string{r.Method, r.Path, truncate(r.Handler, 60)})
	}
	t.Render()

	printRoutes(w, a.table, a.tr)
}
