package middleware

import (
	"net/http"
	"time"
)

// StatusRecorder はHTTPメトリクス収集のインターフェース。
// metrics.Collectorを抽象化してテスタビリティを向上させる。
type StatusRecorder interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
	RecordAuthFailure()
}

// NewMetricsMiddleware はレスポンスのステータスコードと処理時間を記録するミドルウェアを返す。
func NewMetricsMiddleware(collector StatusRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			collector.RecordHTTPStatus(rec.statusCode)
			collector.RecordRequestDuration(time.Since(start))
			if rec.statusCode == http.StatusUnauthorized {
				collector.RecordAuthFailure()
			}
		})
	}
}
