package middleware

import (
	"net/http"

	"github.com/vera-byte/vgo-admin/pkg/model"

	"github.com/gin-gonic/gin"
)

// ContextRolesKey 当前会话角色在 gin.Context 中的键
const ContextRolesKey = "roles"

// Session 中间件读取的会话信息
type Session interface {
	IsAuthenticated() bool
	IsExpired() bool
	Roles() []string
}

// RequireSession 要求存在未过期的登录会话
// 参数: s 会话存储
// 返回值: gin.HandlerFunc 中间件函数
func RequireSession(s Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "Not logged in",
			})
			return
		}
		if s.IsExpired() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "Session expired",
			})
			return
		}

		c.Set(ContextRolesKey, s.Roles())
		c.Next()
	}
}

// RequireRole 角色权限中间件，需在 RequireSession 之后使用
// 参数: roles 允许的角色，持有其一即可
// 返回值: gin.HandlerFunc 中间件函数
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRolesKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "Not logged in",
			})
			return
		}

		held, ok := value.([]string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: "Invalid session data",
			})
			return
		}

		for _, want := range roles {
			for _, have := range held {
				if want == have {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, model.ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Insufficient permissions",
		})
	}
}
