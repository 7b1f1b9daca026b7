// Package api 后台管理接口的类型化请求函数
//
// 列表类接口以查询串发送，变更类接口以 multipart 表单发送。
// 每个函数返回 (*model.Envelope[T], error)：error 只表示传输失败，
// 业务失败保留在 Envelope.Code 中，由调用方判断。
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vera-byte/vgo-admin/pkg/client"
	"github.com/vera-byte/vgo-admin/pkg/model"
)

// Ack 变更类接口的响应，data 原样保留
type Ack = model.Envelope[json.RawMessage]

// Doer 共享传输层
type Doer interface {
	Do(ctx context.Context, method, path string, opts *client.RequestOptions, out any) error
}

// API 后台接口集合
type API struct {
	c Doer
}

// New 创建接口集合
// 参数: c 共享传输层
// 返回值: *API
func New(c Doer) *API {
	return &API{c: c}
}

// list 发送 GET 列表请求
func list[T any](ctx context.Context, a *API, path string, q *Fields) (*model.Envelope[model.Page[T]], error) {
	return get[model.Page[T]](ctx, a, path, q)
}

func get[T any](ctx context.Context, a *API, path string, q *Fields) (*model.Envelope[T], error) {
	var out model.Envelope[T]
	if err := a.c.Do(ctx, http.MethodGet, BaseURLAPI(path), &client.RequestOptions{Query: q.Query()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// submit 以 multipart 表单发送 POST
func submit[T any](ctx context.Context, a *API, path string, form *Fields) (*model.Envelope[T], error) {
	var out model.Envelope[T]
	if err := a.postForm(ctx, BaseURLAPI(path), form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) postForm(ctx context.Context, path string, form *Fields, out any) error {
	if form == nil {
		form = NewFields()
	}
	body, contentType, err := form.Multipart()
	if err != nil {
		return fmt.Errorf("encode %s form: %w", path, err)
	}
	return a.c.Do(ctx, http.MethodPost, path, &client.RequestOptions{Body: body, ContentType: contentType}, out)
}

func (a *API) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", path, err)
	}
	opts := &client.RequestOptions{Body: bytes.NewReader(data), ContentType: "application/json"}
	return a.c.Do(ctx, http.MethodPost, BaseURLAPI(path), opts, out)
}

// ack 变更类接口的常用形态
func ack(ctx context.Context, a *API, path string, form *Fields) (*Ack, error) {
	return submit[json.RawMessage](ctx, a, path, form)
}
