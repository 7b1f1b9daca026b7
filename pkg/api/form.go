package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"
)

// Fields 稀疏字段集合
// 按追加顺序保存，查询串与 multipart 表单共用同一套规则：
// 值为空串的字段从不出现，可选字段在零值或 nil 时不出现
type Fields struct {
	entries []field
	files   []filePart
}

type field struct {
	key   string
	value string
}

type filePart struct {
	key      string
	filename string
	r        io.Reader
}

// NewFields 创建空字段集合
func NewFields() *Fields {
	return &Fields{}
}

// Set 写入字段，空串不写入
func (f *Fields) Set(key, value string) *Fields {
	if value == "" {
		return f
	}
	f.entries = append(f.entries, field{key: key, value: value})
	return f
}

// SetInt 必填整数字段
func (f *Fields) SetInt(key string, v int64) *Fields {
	return f.Set(key, strconv.FormatInt(v, 10))
}

// String 可选字符串，空串不写入
func (f *Fields) String(key, value string) *Fields {
	if value == "" {
		return f
	}
	return f.Set(key, value)
}

// StringPtr 可选字符串，nil 或指向空串时不写入
func (f *Fields) StringPtr(key string, v *string) *Fields {
	if v == nil {
		return f
	}
	return f.Set(key, *v)
}

// Int 可选整数，0 不写入
func (f *Fields) Int(key string, v int) *Fields {
	if v == 0 {
		return f
	}
	return f.Set(key, strconv.Itoa(v))
}

// IntPtr 可选整数，nil 不写入
func (f *Fields) IntPtr(key string, v *int) *Fields {
	if v == nil {
		return f
	}
	return f.Set(key, strconv.Itoa(*v))
}

// Bool 可选布尔，nil 不写入
func (f *Fields) Bool(key string, v *bool) *Fields {
	if v == nil {
		return f
	}
	return f.Set(key, strconv.FormatBool(*v))
}

// Default 可选字符串，空串时写入 fallback
func (f *Fields) Default(key, value, fallback string) *Fields {
	if value == "" {
		value = fallback
	}
	return f.Set(key, value)
}

// File 文件字段，只用于 multipart
func (f *Fields) File(key, filename string, r io.Reader) *Fields {
	f.files = append(f.files, filePart{key: key, filename: filename, r: r})
	return f
}

// Len 已写入的普通字段数量
func (f *Fields) Len() int {
	return len(f.entries)
}

// Has 是否写入过 key
func (f *Fields) Has(key string) bool {
	for _, e := range f.entries {
		if e.key == key {
			return true
		}
	}
	return false
}

// Get 返回 key 第一次写入的值
func (f *Fields) Get(key string) (string, bool) {
	for _, e := range f.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return "", false
}

// Keys 按写入顺序返回字段名
func (f *Fields) Keys() []string {
	keys := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// Query 转为查询参数
func (f *Fields) Query() url.Values {
	if f == nil || len(f.entries) == 0 {
		return nil
	}
	values := make(url.Values, len(f.entries))
	for _, e := range f.entries {
		values.Add(e.key, e.value)
	}
	return values
}

// Multipart 编码为 multipart/form-data
// 返回值: 请求体, Content-Type（含 boundary）, error
func (f *Fields) Multipart() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, e := range f.entries {
		if err := w.WriteField(e.key, e.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", e.key, err)
		}
	}
	for _, p := range f.files {
		part, err := w.CreateFormFile(p.key, p.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", p.key, err)
		}
		if _, err := io.Copy(part, p.r); err != nil {
			return nil, "", fmt.Errorf("copy file part %s: %w", p.key, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// JoinIDs 拼接批量操作使用的逗号分隔 ID
func JoinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
