package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 VGO_API_BASE_URL
const EnvPrefix = "VGO"

// Config 应用配置结构
type Config struct {
	API      APIConfig     `mapstructure:"api" json:"api"`
	Session  SessionConfig `mapstructure:"session" json:"session"`
	Server   ServerConfig  `mapstructure:"server" json:"server"`
	Log      LogConfig     `mapstructure:"log" json:"log"`
	Refresh  RefreshConfig `mapstructure:"refresh" json:"refresh"`
	Locale   string        `mapstructure:"locale" json:"locale" validate:"oneof=zh-CN en"`
	HideHome bool          `mapstructure:"hide_home" json:"hide_home"`
}

// APIConfig 后台接口配置
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" json:"base_url" validate:"required,url"`
	Timeout int    `mapstructure:"timeout" json:"timeout" validate:"gt=0"` // 秒
}

// TimeoutDuration 超时时间
func (c APIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// SessionConfig 会话存储配置
type SessionConfig struct {
	Driver    string `mapstructure:"driver" json:"driver" validate:"oneof=file redis memory"`
	Dir       string `mapstructure:"dir" json:"dir"`
	RedisAddr string `mapstructure:"redis_addr" json:"redis_addr" validate:"required_if=Driver redis"`
	RedisDB   int    `mapstructure:"redis_db" json:"redis_db" validate:"gte=0"`
	RedisPass string `mapstructure:"redis_pass" json:"-"`
	Prefix    string `mapstructure:"prefix" json:"prefix"`
}

// ServerConfig 导航服务配置
type ServerConfig struct {
	Port       string `mapstructure:"port" json:"port" validate:"required,numeric"`
	GRPCPort   string `mapstructure:"grpc_port" json:"grpc_port" validate:"omitempty,numeric"`
	Mode       string `mapstructure:"mode" json:"mode" validate:"oneof=debug release test"`
	LoginLimit int    `mapstructure:"login_limit" json:"login_limit" validate:"gte=0"` // 每分钟每个 IP 的登录次数，0 表示不限
	// AllowedOrigins 允许跨域访问导航服务的来源
	AllowedOrigins []string `mapstructure:"allowed_origins" json:"allowed_origins" validate:"min=1,dive,url"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level" json:"level" validate:"oneof=debug info warn error"`
}

// RefreshConfig 定时刷新令牌配置
type RefreshConfig struct {
	Enabled  bool   `mapstructure:"enabled" json:"enabled"`
	Schedule string `mapstructure:"schedule" json:"schedule" validate:"required_if=Enabled true"`
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", 30)
	v.SetDefault("session.driver", "file")
	v.SetDefault("session.dir", "")
	v.SetDefault("session.redis_addr", "")
	v.SetDefault("session.redis_db", 0)
	v.SetDefault("session.redis_pass", "")
	v.SetDefault("session.prefix", "vgo-admin")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.grpc_port", "9090")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.login_limit", 10)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8848", "http://127.0.0.1:8848"})
	v.SetDefault("log.level", "info")
	v.SetDefault("refresh.enabled", false)
	v.SetDefault("refresh.schedule", "@every 30m")
	v.SetDefault("locale", "zh-CN")
	v.SetDefault("hide_home", false)
}

// Load 加载配置文件
// 参数: path 配置文件路径，为空时在 ./config 与当前目录查找 config.yaml
// 返回值: *Config 配置对象, error 错误信息
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	// 读取环境变量
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// 如果配置文件不存在，使用默认值
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("配置验证失败: %w", err)
	}
	return nil
}
