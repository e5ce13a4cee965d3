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
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordUploadAccepted()
	RecordUploadRejected(reason string)
	RecordIntakeSubmission(kind string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus        *prometheus.CounterVec
	requestLatency    prometheus.Histogram
	loginSuccess      prometheus.Counter
	loginFail         prometheus.Counter
	uploadAccepted    prometheus.Counter
	uploadRejected    *prometheus.CounterVec
	intakeSubmissions *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitedesk_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sitedesk_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sitedesk_login_success_total",
			Help: "管理者ログイン成功の合計数",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sitedesk_login_fail_total",
			Help: "管理者ログイン失敗の合計数",
		}),
		uploadAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sitedesk_upload_accepted_total",
			Help: "受理されたファイルアップロードの合計数",
		}),
		uploadRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitedesk_upload_rejected_total",
			Help: "拒否理由別のファイルアップロード拒否数",
		}, []string{"reason"}),
		intakeSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitedesk_intake_submissions_total",
			Help: "公開フォーム種別ごとの受付数",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.loginSuccess,
		c.loginFail,
		c.uploadAccepted,
		c.uploadRejected,
		c.intakeSubmissions,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordLoginSuccess は管理者ログイン成功を記録する。
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure は管理者ログイン失敗を記録する。
func (c *Collector) RecordLoginFailure() {
	c.loginFail.Inc()
}

// RecordUploadAccepted は受理されたアップロードを記録する。
func (c *Collector) RecordUploadAccepted() {
	c.uploadAccepted.Inc()
}

// RecordUploadRejected は拒否されたアップロードを理由付きで記録する。
func (c *Collector) RecordUploadRejected(reason string) {
	c.uploadRejected.WithLabelValues(reason).Inc()
}

// RecordIntakeSubmission は公開フォームの受付を種別付きで記録する。
func (c *Collector) RecordIntakeSubmission(kind string) {
	c.intakeSubmissions.WithLabelValues(kind).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
