package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.Timeout)
	assert.Equal(t, "file", cfg.Session.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "zh-CN", cfg.Locale)
	assert.False(t, cfg.Refresh.Enabled)
	assert.Equal(t, []string{"http://localhost:8848", "http://127.0.0.1:8848"}, cfg.Server.AllowedOrigins)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://admin.example.com
  timeout: 5
session:
  driver: redis
  redis_addr: 127.0.0.1:6379
refresh:
  enabled: true
  schedule: "@every 10m"
locale: en
`)
	t.Setenv("VGO_SERVER_PORT", "9000")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://admin.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5, int(cfg.API.TimeoutDuration().Seconds()))
	assert.Equal(t, "redis", cfg.Session.Driver)
	assert.Equal(t, "127.0.0.1:6379", cfg.Session.RedisAddr)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "@every 10m", cfg.Refresh.Schedule)
	assert.Equal(t, "en", cfg.Locale)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"bad driver":         "session:\n  driver: etcd\n",
		"redis without addr": "session:\n  driver: redis\n",
		"bad url":            "api:\n  base_url: not a url\n",
		"bad locale":         "locale: fr\n",
		"bad origin":         "server:\n  allowed_origins: [\"*\"]\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.ErrorContains(t, err, "配置验证失败")
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "api: [\n"))
	assert.ErrorContains(t, err, "读取配置文件失败")
}
