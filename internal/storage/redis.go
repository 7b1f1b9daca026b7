package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix redis 键前缀
const DefaultPrefix = "vgo-admin"

// Redis 使用 redis 字符串保存 JSON 文档
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis 创建 redis 存储
// 参数:
//   - client: Redis客户端
//   - prefix: key前缀，为空时使用 DefaultPrefix
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) getKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

// Get 读取键
func (r *Redis) Get(ctx context.Context, key string, dst any) error {
	data, err := r.client.Get(ctx, r.getKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Set 写入键，不设置过期时间
func (r *Redis) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.getKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Remove 删除键
func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.getKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close 关闭连接
func (r *Redis) Close() error {
	return r.client.Close()
}

// Client 底层 Redis 客户端，供需要共享连接的组件使用
func (r *Redis) Client() *redis.Client {
	return r.client
}
