package api

import "strings"

// BaseURLAPI 将接口路径解析到 /api/ 前缀下
// 只去掉一个前导斜杠，避免出现双斜杠
func BaseURLAPI(p string) string {
	return "/api/" + strings.TrimPrefix(p, "/")
}
