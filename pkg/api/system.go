package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vera-byte/vgo-admin/pkg/model"
)

// ConfigKind 配置值的种类
type ConfigKind int

const (
	// KindEmpty 未设置
	KindEmpty ConfigKind = iota
	// KindScalar 文本
	KindScalar
	// KindNumeric 数字
	KindNumeric
	// KindList 多值
	KindList
)

func (k ConfigKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindNumeric:
		return "numeric"
	case KindList:
		return "list"
	default:
		return "empty"
	}
}

// listTypes 以多值形式保存的配置类型
var listTypes = map[string]bool{
	"selects":  true,
	"checkbox": true,
	"images":   true,
	"files":    true,
}

// ConfigValue 配置值，按配置项 type 元数据显式解码
type ConfigValue struct {
	Kind   ConfigKind
	Scalar string
	Number float64
	List   []string
}

// ScalarValue 构造文本值
func ScalarValue(s string) ConfigValue {
	return ConfigValue{Kind: KindScalar, Scalar: s}
}

// NumericValue 构造数字值
func NumericValue(n float64) ConfigValue {
	return ConfigValue{Kind: KindNumeric, Number: n}
}

// ListValue 构造多值
func ListValue(items ...string) ConfigValue {
	return ConfigValue{Kind: KindList, List: items}
}

// DecodeConfigValue 按配置类型解码原始 JSON 值
// 参数: typ 配置项 type 元数据, raw 原始值
// 返回值: ConfigValue, error
func DecodeConfigValue(typ string, raw json.RawMessage) (ConfigValue, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ConfigValue{Kind: KindEmpty}, nil
	}

	switch {
	case listTypes[typ]:
		return decodeList(raw)
	case typ == "number":
		return decodeNumber(raw)
	default:
		return decodeScalar(raw)
	}
}

func decodeList(raw json.RawMessage) (ConfigValue, error) {
	var items []any
	if err := json.Unmarshal(raw, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, fmt.Sprint(it))
		}
		return ListValue(out...), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ConfigValue{}, fmt.Errorf("decode list config value: %w", err)
	}
	if s == "" {
		return ListValue(), nil
	}
	return ListValue(strings.Split(s, ",")...), nil
}

func decodeNumber(raw json.RawMessage) (ConfigValue, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if f, err := n.Float64(); err == nil {
			return NumericValue(f), nil
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return ConfigValue{Kind: KindEmpty}, nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return NumericValue(f), nil
		}
		return ScalarValue(s), nil
	}
	return ConfigValue{}, fmt.Errorf("decode numeric config value %s", string(raw))
}

func decodeScalar(raw json.RawMessage) (ConfigValue, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ScalarValue(s), nil
	}
	// 数字、数组、对象按原文保留
	return ScalarValue(string(raw)), nil
}

// FormValue 表单中提交的文本；Empty 返回 false
func (v ConfigValue) FormValue() (string, bool) {
	switch v.Kind {
	case KindScalar:
		return v.Scalar, true
	case KindNumeric:
		return strconv.FormatFloat(v.Number, 'f', -1, 64), true
	case KindList:
		items := v.List
		if items == nil {
			items = []string{}
		}
		b, _ := json.Marshal(items)
		return string(b), true
	default:
		return "", false
	}
}

// String 便于表格展示
func (v ConfigValue) String() string {
	if v.Kind == KindList {
		return strings.Join(v.List, ",")
	}
	s, _ := v.FormValue()
	return s
}

// ConfigItem 配置项
type ConfigItem struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Group      string          `json:"group"`
	Title      string          `json:"title"`
	Tip        string          `json:"tip"`
	Type       string          `json:"type"`
	Visible    string          `json:"visible"`
	Value      ConfigValue     `json:"-"`
	Content    json.RawMessage `json:"content"`
	Rule       string          `json:"rule"`
	Extend     string          `json:"extend"`
	Setting    json.RawMessage `json:"setting"`
	ExtendHTML string          `json:"extend_html"`
}

// UnmarshalJSON 先读出 type，再据此解码 value
func (c *ConfigItem) UnmarshalJSON(b []byte) error {
	type plain ConfigItem
	aux := struct {
		*plain
		Value json.RawMessage `json:"value"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	v, err := DecodeConfigValue(c.Type, aux.Value)
	if err != nil {
		return fmt.Errorf("config %s: %w", c.Name, err)
	}
	c.Value = v
	return nil
}

// ConfigGroup 配置分组
type ConfigGroup struct {
	Name   string       `json:"name"`
	Title  string       `json:"title"`
	List   []ConfigItem `json:"list"`
	Active bool         `json:"active"`
}

// SystemConfig 系统配置
type SystemConfig struct {
	SiteList  map[string]ConfigGroup `json:"siteList"`
	TypeList  map[string]string      `json:"typeList"`
	RuleList  map[string]string      `json:"ruleList"`
	GroupList map[string]string      `json:"groupList"`
}

// GroupNames 按名称排序的分组
func (s *SystemConfig) GroupNames() []string {
	names := make([]string, 0, len(s.SiteList))
	for name := range s.SiteList {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetSystemConfig 获取系统配置
func (a *API) GetSystemConfig(ctx context.Context) (*model.Envelope[SystemConfig], error) {
	return get[SystemConfig](ctx, a, "/general/config/index", nil)
}

// SaveSystemConfigParams 保存系统配置参数
// Data 的值可以是 ConfigValue、字符串、数字、切片或 map；nil、Empty 与空串不提交
type SaveSystemConfigParams struct {
	Group      string
	Data       map[string]any
	GoogleCode string
}

func (p SaveSystemConfigParams) fields() (*Fields, error) {
	f := NewFields().Set("group", p.Group)

	keys := make([]string, 0, len(p.Data))
	for k := range p.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		s, ok, err := formValue(p.Data[k])
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", k, err)
		}
		if ok {
			f.Set(k, s)
		}
	}
	return f.String("google_code", p.GoogleCode), nil
}

func formValue(v any) (string, bool, error) {
	switch val := v.(type) {
	case nil:
		return "", false, nil
	case ConfigValue:
		s, ok := val.FormValue()
		return s, ok, nil
	case string:
		return val, true, nil
	case fmt.Stringer:
		return val.String(), true, nil
	case bool, int, int64, float64, float32, int32, uint, uint64:
		return fmt.Sprint(val), true, nil
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "", false, err
		}
		return string(b), true, nil
	}
}

// SaveSystemConfig 保存一个分组的配置
func (a *API) SaveSystemConfig(ctx context.Context, p SaveSystemConfigParams) (*Ack, error) {
	form, err := p.fields()
	if err != nil {
		return nil, err
	}
	return ack(ctx, a, "/general/config/save", form)
}
