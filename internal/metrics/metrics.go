// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// オーケストレーターやサービス層から利用する。
type MetricsCollector interface {
	RecordPublishSuccess(platform string)
	RecordPublishFailure(platform string, reason string)
	RecordPublishLatency(duration time.Duration)
	RecordGenerationSuccess()
	RecordGenerationFailure()
	RecordGenerationLatency(duration time.Duration)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	publishSuccess    *prometheus.CounterVec
	publishFail       *prometheus.CounterVec
	publishLatency    prometheus.Histogram
	generationSuccess prometheus.Counter
	generationFail    prometheus.Counter
	generationLatency prometheus.Histogram
	httpStatus        *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		publishSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialhub_publish_success_total",
			Help: "プラットフォーム別の投稿成功の合計数",
		}, []string{"platform"}),
		publishFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialhub_publish_fail_total",
			Help: "プラットフォームと失敗理由別の投稿失敗の合計数",
		}, []string{"platform", "reason"}),
		publishLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "socialhub_publish_latency_seconds",
			Help:    "投稿タスク1件のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		generationSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "socialhub_generation_success_total",
			Help: "コンテンツ生成成功の合計数",
		}),
		generationFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "socialhub_generation_fail_total",
			Help: "コンテンツ生成失敗の合計数",
		}),
		generationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "socialhub_generation_latency_seconds",
			Help:    "コンテンツ生成のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialhub_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.publishSuccess,
		c.publishFail,
		c.publishLatency,
		c.generationSuccess,
		c.generationFail,
		c.generationLatency,
		c.httpStatus,
	)

	return c
}

// RecordPublishSuccess は投稿成功を記録する。
func (c *Collector) RecordPublishSuccess(platform string) {
	c.publishSuccess.WithLabelValues(platform).Inc()
}

// RecordPublishFailure は投稿失敗を失敗理由付きで記録する。
func (c *Collector) RecordPublishFailure(platform string, reason string) {
	c.publishFail.WithLabelValues(platform, reason).Inc()
}

// RecordPublishLatency は投稿タスクのレイテンシを記録する。
func (c *Collector) RecordPublishLatency(duration time.Duration) {
	c.publishLatency.Observe(duration.Seconds())
}

// RecordGenerationSuccess はコンテンツ生成成功を記録する。
func (c *Collector) RecordGenerationSuccess() {
	c.generationSuccess.Inc()
}

// RecordGenerationFailure はコンテンツ生成失敗を記録する。
func (c *Collector) RecordGenerationFailure() {
	c.generationFail.Inc()
}

// RecordGenerationLatency はコンテンツ生成のレイテンシを記録する。
func (c *Collector) RecordGenerationLatency(duration time.Duration) {
	c.generationLatency.Observe(duration.Seconds())
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
