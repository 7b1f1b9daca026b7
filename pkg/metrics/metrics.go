package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIRequestsTotal 发往后台接口的请求计数
// Labels: method, path, status（status 为 HTTP 状态码，网络失败时为 "error"）
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "vgo_admin_api_requests_total",
		Help: "Total number of requests sent to the admin backend",
	},
	[]string{"method", "path", "status"},
)

// APIRequestDuration 后台接口耗时
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "vgo_admin_api_request_duration_seconds",
		Help:    "Duration of requests sent to the admin backend in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"method", "path"},
)

// SessionEventsTotal 会话事件计数
// Labels: event (login, logout, refresh), result (success, failure, error)
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "vgo_admin_session_events_total",
		Help: "Total number of session state transitions",
	},
	[]string{"event", "result"},
)

// NavigationsTotal 路由导航计数
// Labels: result (ok, redirect, forbidden, not_found, error)
var NavigationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "vgo_admin_navigations_total",
		Help: "Total number of route navigations",
	},
	[]string{"result"},
)

// ViewLoadsTotal 视图懒加载次数，只在首次解析时累加
var ViewLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "vgo_admin_view_loads_total",
		Help: "Total number of lazily resolved views",
	},
	[]string{"component", "result"},
)
