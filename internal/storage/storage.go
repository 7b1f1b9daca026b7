// Package storage 会话持久化存储
//
// 每个键保存一份 JSON 文档，写入为最后写入者胜出，没有事务保证。
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNotFound 键不存在
var ErrNotFound = errors.New("storage: key not found")

// Storage 持久化存储接口
type Storage interface {
	// Get 读取 key 并解码到 dst，不存在时返回 ErrNotFound
	Get(ctx context.Context, key string, dst any) error
	// Set 以 JSON 编码写入 key
	Set(ctx context.Context, key string, value any) error
	// Remove 删除 key，不存在时不报错
	Remove(ctx context.Context, key string) error
}

// Config 存储配置
type Config struct {
	Driver    string // file, redis, memory
	Dir       string
	RedisAddr string
	RedisDB   int
	RedisPass string
	Prefix    string
}

// New 按配置创建存储
// 参数: ctx 上下文, cfg 存储配置, logger 日志记录器
// 返回值: Storage, error
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve home dir: %w", err)
			}
			dir = filepath.Join(home, ".vgo-admin")
		}
		logger.Info("Using file session storage", zap.String("dir", dir))
		return NewFile(dir), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPass,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("Using redis session storage",
			zap.String("addr", cfg.RedisAddr),
			zap.Int("db", cfg.RedisDB))
		return NewRedis(client, cfg.Prefix), nil
	case "memory":
		logger.Info("Using in-memory session storage")
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
