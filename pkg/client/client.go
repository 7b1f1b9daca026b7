package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vera-byte/vgo-admin/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID 请求追踪头
const HeaderRequestID = "X-Request-ID"

// maxErrorBody 非 2xx 响应体最多保留的字节数
const maxErrorBody = 4 << 10

// TokenSource 访问令牌来源
// 传输层只读取令牌，从不修改会话
type TokenSource interface {
	AccessToken() string
}

// TokenFunc 函数形式的 TokenSource
type TokenFunc func() string

// AccessToken 实现 TokenSource
func (f TokenFunc) AccessToken() string {
	return f()
}

// Config 客户端配置
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// StatusError 非 2xx 响应
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// IsStatus 判断 err 是否为指定状态码的 StatusError
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// RequestOptions 单次请求的参数
// Query 追加到 URL；Body 不为空时按 ContentType 发送
type RequestOptions struct {
	Query       url.Values
	Body        io.Reader
	ContentType string
}

// Client 后台接口共享传输层
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
}

// Option 客户端选项
type Option func(*Client)

// WithTokenSource 设置访问令牌来源
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger 设置日志记录器
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New 创建客户端
// 参数: cfg 客户端配置, opts 可选项
// 返回值: *Client 客户端实例
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// SetTokenSource 延迟绑定令牌来源，会话对象创建晚于客户端时使用
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// BaseURL 后台根地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do 执行请求并将 JSON 响应体解码到 out
// 参数: ctx 上下文, method HTTP 方法, path 已解析的接口路径, opts 请求参数, out 解码目标（可为 nil）
// 返回值: error 传输失败（网络错误、非 2xx、响应体无法解码）
func (c *Client) Do(ctx context.Context, method, path string, opts *RequestOptions, out any) error {
	if opts == nil {
		opts = &RequestOptions{}
	}

	target := c.baseURL + path
	if len(opts.Query) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		target += sep + opts.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, opts.Body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if opts.Body != nil && opts.ContentType != "" {
		req.Header.Set("Content-Type", opts.ContentType)
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, path, "error").Inc()
		c.logger.Warn("Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", req.Header.Get(HeaderRequestID)),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	metrics.APIRequestsTotal.WithLabelValues(method, path, strconv.Itoa(resp.StatusCode)).Inc()

	c.logger.Debug("Backend request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Get 发送 GET 请求，params 作为查询串
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, &RequestOptions{Query: params}, out)
}

// PostJSON 以 JSON 请求体发送 POST
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) error {
	opts := &RequestOptions{}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		opts.Body = bytes.NewReader(data)
		opts.ContentType = "application/json"
	}
	return c.Do(ctx, http.MethodPost, path, opts, out)
}
