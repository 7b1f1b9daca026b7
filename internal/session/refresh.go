package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// refreshTimeout 单次定时刷新的超时
const refreshTimeout = 30 * time.Second

// Refresher 按计划刷新令牌
// 后台拒绝刷新时强制登出；传输失败只记录日志，等待下一次调度
type Refresher struct {
	cron   *cron.Cron
	store  *Store
	logger *zap.Logger
}

// NewRefresher 创建定时刷新任务
// schedule 支持标准 cron 表达式与 @every 30m 之类的描述符
func NewRefresher(store *Store, schedule string, logger *zap.Logger) (*Refresher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Refresher{
		cron:   cron.New(cron.WithLogger(cronLogger{logger.Sugar()})),
		store:  store,
		logger: logger,
	}
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if err := r.RunOnce(ctx); err != nil {
		r.logger.Warn("Scheduled token refresh failed", zap.Error(err))
	}
}

// RunOnce 执行一次刷新，未登录时跳过
func (r *Refresher) RunOnce(ctx context.Context) error {
	if !r.store.IsAuthenticated() {
		return nil
	}
	_, err := r.store.HandRefreshToken(ctx, "")
	if errors.Is(err, ErrRefreshRejected) {
		r.logger.Info("Refresh rejected, logging out")
		if logoutErr := r.store.LogOut(ctx); logoutErr != nil {
			return errors.Join(err, logoutErr)
		}
	}
	return err
}

// Start 启动调度
func (r *Refresher) Start() {
	r.cron.Start()
	r.logger.Info("Token refresher started", zap.Int("entries", len(r.cron.Entries())))
}

// Stop 停止调度并等待正在执行的任务结束
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("Token refresher stopped")
}

// cronLogger 把 cron 日志转到 zap
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
