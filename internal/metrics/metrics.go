// Package metrics 暴露 HTTP 与业务 Prometheus 指标。
//
// 所有记录方法对 nil 接收者安全，未启用指标时调用方无需判断。
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	ordersCreated       *prometheus.CounterVec
	orderStatusChanges  *prometheus.CounterVec
	commissionAccrued   prometheus.Counter
	payoutsRecorded     *prometheus.CounterVec
	sharedCarts         *prometheus.CounterVec
	aiGenerations       *prometheus.CounterVec
	storefrontCache     *prometheus.CounterVec
}

// New 创建指标集合，prefix 为空时使用 vitrina
func New(prefix string) *Metrics {
	prefix = strings.Trim(strings.TrimSpace(prefix), "_")
	if prefix == "" {
		prefix = "vitrina"
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		ordersCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_orders_created_total",
			Help: "Total number of storefront orders",
		}, []string{"currency"}),
		orderStatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_order_status_changes_total",
			Help: "Total number of order status changes by target status",
		}, []string{"status"}),
		commissionAccrued: factory.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_affiliate_commission_accrued",
			Help: "Sum of affiliate commission accrued",
		}),
		payoutsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_affiliate_payouts_total",
			Help: "Total number of affiliate payouts recorded",
		}, []string{"method", "exceeds_balance"}),
		sharedCarts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_shared_carts_total",
			Help: "Shared cart tokens created and imported",
		}, []string{"action", "result"}),
		aiGenerations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_ai_generations_total",
			Help: "AI content generation requests",
		}, []string{"kind", "result"}),
		storefrontCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_storefront_cache_total",
			Help: "Storefront cache lookups",
		}, []string{"result"}),
	}
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry 底层注册表
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTP 记录一次 HTTP 请求
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if path == "" {
		path = "unmatched"
	}
	code := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

// RecordOrderCreated 记录新订单
func (m *Metrics) RecordOrderCreated(currency string) {
	if m == nil {
		return
	}
	m.ordersCreated.WithLabelValues(strings.ToUpper(currency)).Inc()
}

// RecordOrderStatus 记录订单状态变更
func (m *Metrics) RecordOrderStatus(status string) {
	if m == nil {
		return
	}
	m.orderStatusChanges.WithLabelValues(status).Inc()
}

// RecordCommissionAccrued 累加已计提佣金
func (m *Metrics) RecordCommissionAccrued(amount float64) {
	if m == nil || amount <= 0 {
		return
	}
	m.commissionAccrued.Add(amount)
}

// RecordPayout 记录手动结算
func (m *Metrics) RecordPayout(method string, exceedsBalance bool) {
	if m == nil {
		return
	}
	m.payoutsRecorded.WithLabelValues(method, strconv.FormatBool(exceedsBalance)).Inc()
}

// RecordSharedCart 记录购物车分享/导入，action 为 share 或 import
func (m *Metrics) RecordSharedCart(action string, ok bool) {
	if m == nil {
		return
	}
	m.sharedCarts.WithLabelValues(action, resultLabel(ok)).Inc()
}

// RecordAIGeneration 记录 AI 文案生成
func (m *Metrics) RecordAIGeneration(kind string, ok bool) {
	if m == nil {
		return
	}
	m.aiGenerations.WithLabelValues(kind, resultLabel(ok)).Inc()
}

// RecordStorefrontCache 记录前台缓存命中情况
func (m *Metrics) RecordStorefrontCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.storefrontCache.WithLabelValues(result).Inc()
}

func resultLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
