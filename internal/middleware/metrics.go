package middleware

import (
	"net/http"
	"time"
)

// HTTPMetrics はリクエスト単位のメトリクス記録インターフェース。
type HTTPMetrics interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// NewMetricsMiddleware はレスポンスステータスと処理レイテンシを記録するミドルウェアを返す。
func NewMetricsMiddleware(collector HTTPMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := newStatusRecorder(w)

			next.ServeHTTP(recorder, r)

			collector.RecordHTTPStatus(recorder.statusCode)
			collector.RecordRequestLatency(time.Since(start))
		})
	}
}
