package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/vera-byte/vgo-admin/internal/route"
	"github.com/vera-byte/vgo-admin/internal/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend 模拟后台接口
func backend(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/login/login":
			_ = r.ParseMultipartForm(1 << 20)
			if r.FormValue("password") != "pw" {
				_, _ = io.WriteString(w, `{"code":1,"msg":"密码错误","data":null}`)
				return
			}
			_, _ = io.WriteString(w, `{"code":0,"msg":"登录成功","data":{"token":"abc123","username":"ops","gruop_name":"admin"}}`)
		case "/api/login/logout":
			_, _ = io.WriteString(w, `{"code":0,"msg":"","data":null}`)
		case "/api/agent/agent/index":
			if r.Header.Get("Authorization") != "Bearer abc123" {
				_, _ = io.WriteString(w, `{"code":401,"msg":"请先登录","data":null}`)
				return
			}
			_, _ = io.WriteString(w, `{"code":0,"msg":"","data":{"total":1,"rows":[{"id":1,"username":"ag","status":"normal"}]}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// writeConfig 写入使用文件存储的配置，返回配置路径
func writeConfig(t *testing.T, baseURL, driver string) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`api:
  base_url: %s
  timeout: 5
session:
  driver: %s
  dir: %s
server:
  mode: test
  login_limit: 0
log:
  level: error
`, baseURL, driver, filepath.Join(dir, "session"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run 执行一次命令并返回 stdout
func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	jsonOutput = false
	loginOpts.username, loginOpts.password, loginOpts.captcha, loginOpts.googleCode = "", "", "", ""
	listOpts.page, listOpts.size, listOpts.filters = 1, views.DefaultPageSize, nil

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := RootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoutesJSON(t *testing.T) {
	cfg := writeConfig(t, backend(t).URL, "memory")

	out, err := run(t, cfg, "routes", "--json")
	require.NoError(t, err)

	var rows []struct {
		Path  string `json:"path"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	assert.Equal(t, "/", rows[0].Path)
	assert.Equal(t, "首页", rows[0].Title)
}

func TestLoginWhoamiList(t *testing.T) {
	cfg := writeConfig(t, backend(t).URL, "file")

	out, err := run(t, cfg, "login", "-u", "ops", "-p", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as ops")

	// 会话经文件存储跨命令保留
	out, err = run(t, cfg, "whoami", "--json")
	require.NoError(t, err)
	var who struct {
		State    string   `json:"state"`
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &who))
	assert.Equal(t, "authenticated", who.State)
	assert.Equal(t, "ops", who.Username)
	assert.Equal(t, []string{"admin"}, who.Roles)

	out, err = run(t, cfg, "list", "/agent/agent-list", "--json")
	require.NoError(t, err)
	var table views.Table
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	assert.Equal(t, 1, table.Total)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "ag", table.Rows[0][1])

	_, err = run(t, cfg, "logout")
	require.NoError(t, err)

	_, err = run(t, cfg, "list", "/agent/agent-list")
	assert.ErrorIs(t, err, route.ErrUnauthenticated)
}

func TestLoginRejected(t *testing.T) {
	cfg := writeConfig(t, backend(t).URL, "file")

	_, err := run(t, cfg, "login", "-u", "ops", "-p", "wrong")
	require.Error(t, err)
	assert.Equal(t, "密码错误", err.Error())

	out, err := run(t, cfg, "whoami", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"anonymous"`)
}

func TestLoginRequiresPassword(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	cfg := writeConfig(t, backend(t).URL, "memory")

	_, err := run(t, cfg, "login", "-u", "ops")
	assert.ErrorContains(t, err, PasswordEnv)
}

func TestListRejectsStaticView(t *testing.T) {
	cfg := writeConfig(t, backend(t).URL, "file")
	_, err := run(t, cfg, "login", "-u", "ops", "-p", "pw")
	require.NoError(t, err)

	_, err = run(t, cfg, "list", "/home")
	assert.ErrorContains(t, err, "is not a list view")

	_, err = run(t, cfg, "list", "/agent/agent-list", "--filter", "novalue")
	assert.ErrorContains(t, err, "invalid filter")
}

func TestServeEngine(t *testing.T) {
	cfg := writeConfig(t, backend(t).URL, "memory")
	configPath = cfg

	a, err := newApp(context.Background())
	require.NoError(t, err)
	defer a.Close()

	engine := newEngine(a)
	for _, path := range []string{"/health", "/metrics", "/api/v1/routes"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/menus", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServeEngine_CORSOnlyAllowsConfiguredOrigins(t *testing.T) {
	configPath = writeConfig(t, backend(t).URL, "memory")

	a, err := newApp(context.Background())
	require.NoError(t, err)
	defer a.Close()
	engine := newEngine(a)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.Header.Set("Origin", "http://localhost:8848")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:8848", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestTruncateAndFooter(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "代理管理...", truncate("代理管理列表页面内容", 7))
	assert.Equal(t, []string{"", "", "total 3"}, footer(3, "total 3"))
	assert.Nil(t, footer(0, "x"))
}
