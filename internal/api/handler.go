// Package api 导航服务的 HTTP 处理器
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vera-byte/vgo-admin/internal/middleware"
	"github.com/vera-byte/vgo-admin/internal/route"
	"github.com/vera-byte/vgo-admin/internal/session"
	"github.com/vera-byte/vgo-admin/internal/views"
	admin "github.com/vera-byte/vgo-admin/pkg/api"
	"github.com/vera-byte/vgo-admin/pkg/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CodeRejected 后台拒绝时导航服务返回的业务码
const CodeRejected = 1

// Handler 会话与导航处理器
type Handler struct {
	store   *session.Store
	router  *route.Router
	tr      *route.Translator
	limiter middleware.LoginLimiter
	logger  *zap.Logger
}

// NewHandler 创建处理器
// limiter 为空时不限制登录次数
func NewHandler(store *session.Store, router *route.Router, tr *route.Translator, limiter middleware.LoginLimiter, logger *zap.Logger) *Handler {
	if limiter == nil {
		limiter = middleware.NewLoginLimiter(0, 0, nil, "")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, router: router, tr: tr, limiter: limiter, logger: logger}
}

// Register 注册路由
func (h *Handler) Register(r gin.IRouter) {
	v1 := r.Group("/api/v1")
	v1.POST("/session/login", middleware.LimitLogin(h.limiter, nil), h.Login)
	v1.GET("/session", h.Session)
	v1.DELETE("/session", h.Logout)
	v1.POST("/session/refresh", h.Refresh)
	v1.GET("/menus", middleware.RequireSession(h.store), h.Menus)
	v1.GET("/routes", h.Routes)
	v1.GET("/navigate", h.Navigate)
}

// SessionView 对外展示的会话信息，不包含令牌
type SessionView struct {
	State       string   `json:"state"`
	Username    string   `json:"username,omitempty"`
	Nickname    string   `json:"nickname,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Expires     int64    `json:"expires,omitempty"`
	Expired     bool     `json:"expired"`
}

func (h *Handler) sessionView() SessionView {
	info := h.store.Snapshot()
	return SessionView{
		State:       h.store.State().String(),
		Username:    info.Username,
		Nickname:    info.Nickname,
		Avatar:      info.Avatar,
		Email:       info.UserEmail,
		Roles:       info.Roles,
		Permissions: info.Permissions,
		Expires:     info.Expires,
		Expired:     h.store.IsExpired(),
	}
}

// Login 登录
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error:   err.Error(),
		})
		return
	}

	res, err := h.store.LoginByUsername(c.Request.Context(), admin.LoginParams{
		Username:   req.Username,
		Password:   req.Password,
		Captcha:    req.Captcha,
		GoogleCode: req.GoogleCode,
	})
	if err != nil {
		h.logger.Error("Login failed", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusBadGateway, model.ErrorResponse{
			Code:    http.StatusBadGateway,
			Message: "Admin backend unavailable",
			Error:   err.Error(),
		})
		return
	}
	if !res.Success {
		c.JSON(http.StatusOK, model.APIResponse{Code: CodeRejected, Message: res.Message})
		return
	}

	middleware.ResetLoginLimit(c, h.limiter)
	c.JSON(http.StatusOK, model.APIResponse{Code: model.CodeOK, Message: res.Message, Data: h.sessionView()})
}

// Session 当前会话
func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, model.APIResponse{Code: model.CodeOK, Message: "ok", Data: h.sessionView()})
}

// Logout 登出，只清理本地会话
func (h *Handler) Logout(c *gin.Context) {
	if err := h.store.LogOut(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Logout failed",
			Error:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, model.APIResponse{Code: model.CodeOK, Message: "ok", Data: gin.H{"redirect": h.router.Current()}})
}

// Refresh 刷新令牌，失败时不自动登出
func (h *Handler) Refresh(c *gin.Context) {
	if !h.store.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Code: http.StatusUnauthorized, Message: "Not logged in"})
		return
	}
	_, err := h.store.HandRefreshToken(c.Request.Context(), "")
	switch {
	case errors.Is(err, session.ErrRefreshRejected):
		c.JSON(http.StatusOK, model.APIResponse{Code: CodeRejected, Message: err.Error()})
	case err != nil:
		c.JSON(http.StatusBadGateway, model.ErrorResponse{
			Code:    http.StatusBadGateway,
			Message: "Refresh failed",
			Error:   err.Error(),
		})
	default:
		c.JSON(http.StatusOK, model.APIResponse{Code: model.CodeOK, Message: "ok", Data: h.sessionView()})
	}
}

// translator 请求可用 ?locale= 覆盖默认语言
func (h *Handler) translator(c *gin.Context) *route.Translator {
	if locale := c.Query("locale"); locale != "" {
		return route.NewTranslator(locale)
	}
	return h.tr
}

// Menus 当前角色可见的菜单
func (h *Handler) Menus(c *gin.Context) {
	menus := h.router.Table().Menus(h.store.Roles(), h.translator(c))
	c.JSON(http.StatusOK, model.APIResponse{Code: model.CodeOK, Message: "ok", Data: menus})
}

// RouteEntry 路由列表中的一项
type RouteEntry struct {
	Path      string `json:"path"`
	Name      string `json:"name,omitempty"`
	Component string `json:"component"`
	Title     string `json:"title"`
	Depth     int    `json:"depth"`
	Redirect  string `json:"redirect,omitempty"`
	ShowLink  bool   `json:"showLink"`
	Resolved  bool   `json:"resolved"`
}

// Routes 展开的完整路由表
func (h *Handler) Routes(c *gin.Context) {
	tr := h.translator(c)
	table := h.router.Table()
	entries := table.Flatten()
	out := make([]RouteEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, RouteEntry{
			Path:      e.Node.Path,
			Name:      e.Node.Name,
			Component: e.Node.Component,
			Title:     tr.Title(e.Node.Meta.Title),
			Depth:     e.Depth,
			Redirect:  e.Node.Redirect,
			ShowLink:  e.Node.Meta.Visible(),
			Resolved:  table.Resolved(e.Node.Path),
		})
	}
	c.JSON(http.StatusOK, model.APIResponse{Code: model.CodeOK, Message: "ok", Data: out})
}

// NavigateResult 导航结果
type NavigateResult struct {
	Path      string       `json:"path"`
	From      string       `json:"from,omitempty"`
	Component string       `json:"component"`
	Title     string       `json:"title"`
	Tabs      []route.Tag  `json:"tabs"`
	Table     *views.Table `json:"table,omitempty"`
}

// Navigate 导航到 ?path=，列表视图附带第一页数据
func (h *Handler) Navigate(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		path = "/"
	}

	nav, err := h.router.Navigate(c.Request.Context(), path, h.store)
	if err != nil {
		h.navigateError(c, err)
		return
	}

	tr := h.translator(c)
	res := NavigateResult{
		Path:      nav.Path,
		From:      nav.From,
		Component: nav.View.Component(),
		Title:     tr.Title(nav.Node.Meta.Title),
	}
	for _, tag := range h.router.Tabs().List() {
		tag.Title = tr.Title(tag.Title)
		res.Tabs = append(res.Tabs, tag)
	}

	if lister, ok := nav.View.(views.Lister); ok {
		table, err := lister.List(c.Request.Context(), listQuery(c))
		var (
			be *model.BusinessError
			re *views.ResultError
		)
		switch {
		case errors.As(err, &be):
			c.JSON(http.StatusOK, model.APIResponse{Code: be.Code, Message: be.Msg, Data: res})
			return
		case errors.As(err, &re):
			c.JSON(http.StatusOK, model.APIResponse{Code: CodeRejected, Message: re.Error(), Data: res})
			return
		case err != nil:
			c.JSON(http.StatusBadGateway, model.ErrorResponse{
				Code:    http.StatusBadGateway,
				Message: "Load list failed",
				Error:   err.Error(),
			})
			return
		}
		res.Table = table
	}

	c.JSON(http.StatusOK, model.APIResponse{Code: model.CodeOK, Message: "ok", Data: res})
}

func (h *Handler) navigateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, route.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Code: http.StatusNotFound, Message: "Route not found", Error: err.Error()})
	case errors.Is(err, route.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, model.APIResponse{
			Code:    http.StatusUnauthorized,
			Message: "Not logged in",
			Data:    gin.H{"redirect": route.LoginPath},
		})
	case errors.Is(err, route.ErrForbidden):
		c.JSON(http.StatusForbidden, model.APIResponse{
			Code:    http.StatusForbidden,
			Message: "Access denied",
			Data:    gin.H{"redirect": route.AccessDeniedPath},
		})
	default:
		h.logger.Error("Navigation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Message: "Navigation failed",
			Data:    gin.H{"redirect": route.ServerErrorPath},
		})
	}
}

// listQuery 除 path/page/size/locale 外的查询参数都作为过滤条件
func listQuery(c *gin.Context) views.Query {
	q := views.Query{Filters: map[string]string{}}
	q.PageNumber, _ = strconv.Atoi(c.Query("page"))
	q.PageSize, _ = strconv.Atoi(c.Query("size"))
	for key, values := range c.Request.URL.Query() {
		switch key {
		case "path", "page", "size", "locale":
			continue
		}
		if len(values) > 0 {
			q.Filters[key] = values[0]
		}
	}
	return q
}
