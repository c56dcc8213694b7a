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
// ハンドラーやワーカーから利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
	RecordAuthFailure()
	RecordContactAccepted()
	RecordContactDropped()
	RecordUpload(bytes int64)
	RecordBlogRefresh(success bool)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestDuration prometheus.Histogram
	authFailures    prometheus.Counter
	contactAccepted prometheus.Counter
	contactDropped  prometheus.Counter
	uploads         prometheus.Counter
	uploadBytes     prometheus.Counter
	blogRefresh     *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "folio_request_duration_seconds",
			Help:    "リクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "folio_auth_failures_total",
			Help: "Basic認証失敗の合計数",
		}),
		contactAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "folio_contact_accepted_total",
			Help: "受理された問い合わせの合計数",
		}),
		contactDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "folio_contact_dropped_total",
			Help: "ハニーポットで破棄された問い合わせの合計数",
		}),
		uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "folio_uploads_total",
			Help: "保存されたアップロードファイルの合計数",
		}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "folio_upload_bytes_total",
			Help: "保存されたアップロードの合計バイト数",
		}),
		blogRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_blog_refresh_total",
			Help: "ブログフィード更新の結果別合計数",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.authFailures,
		c.contactAccepted,
		c.contactDropped,
		c.uploads,
		c.uploadBytes,
		c.blogRefresh,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// RecordAuthFailure はBasic認証失敗を記録する。
func (c *Collector) RecordAuthFailure() {
	c.authFailures.Inc()
}

// RecordContactAccepted は問い合わせの受理を記録する。
func (c *Collector) RecordContactAccepted() {
	c.contactAccepted.Inc()
}

// RecordContactDropped はハニーポットによる破棄を記録する。
func (c *Collector) RecordContactDropped() {
	c.contactDropped.Inc()
}

// RecordUpload はアップロードファイルの保存を記録する。
func (c *Collector) RecordUpload(bytes int64) {
	c.uploads.Inc()
	c.uploadBytes.Add(float64(bytes))
}

// RecordBlogRefresh はブログフィード更新の結果を記録する。
func (c *Collector) RecordBlogRefresh(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	c.blogRefresh.WithLabelValues(result).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
