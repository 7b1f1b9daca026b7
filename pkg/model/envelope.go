package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CodeOK 业务成功码
const CodeOK = 0

// Envelope 后台统一响应信封 {code,msg,data}
// Code 为业务通道，非 0 表示业务失败；传输失败不会出现在这里
type Envelope[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

// OK 业务是否成功
func (e *Envelope[T]) OK() bool {
	return e != nil && e.Code == CodeOK
}

// Err 将业务失败转换为 *BusinessError，成功时返回 nil
// 请求层从不调用它，由视图或命令行自行决定如何呈现业务失败
func (e *Envelope[T]) Err() error {
	if e == nil {
		return &BusinessError{Code: -1, Msg: "empty response"}
	}
	if e.Code == CodeOK {
		return nil
	}
	return &BusinessError{Code: e.Code, Msg: e.Msg}
}

// BusinessError 业务失败
type BusinessError struct {
	Code int
	Msg  string
}

func (e *BusinessError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("business error: code=%d", e.Code)
	}
	return fmt.Sprintf("business error: code=%d msg=%s", e.Code, e.Msg)
}

// Page 列表分页结果
type Page[T any] struct {
	Total      FlexInt `json:"total"`
	Pages      FlexInt `json:"pages"`
	PageNumber FlexInt `json:"pageNumber"`
	PageSize   FlexInt `json:"pageSize"`
	Rows       []T     `json:"rows"`
}

// Result {success,message,data} 形态的响应，玩家与找回密码接口使用
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// FlexInt 兼容 JSON 字符串或数字的整数
type FlexInt int64

// UnmarshalJSON 接受 1、"1"、""、null
func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
		if len(b) == 0 {
			*n = 0
			return nil
		}
	}
	if v, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		*n = FlexInt(v)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("flexint: cannot parse %q", string(b))
	}
	*n = FlexInt(f)
	return nil
}

// Int 转为 int
func (n FlexInt) Int() int {
	return int(n)
}

// String 十进制表示
func (n FlexInt) String() string {
	return strconv.FormatInt(int64(n), 10)
}

// FlexString 兼容 JSON 字符串或数字的文本字段
type FlexString string

// UnmarshalJSON 数字按原样保留文本形式，null 视为空串
func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(b)
	return nil
}

func (s FlexString) String() string {
	return string(s)
}
