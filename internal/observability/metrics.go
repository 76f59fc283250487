package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	// ReviewsSubmitted は受け付けたレビュー投稿数。
	ReviewsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviews_submitted_total",
		Help: "Total number of reviews accepted as pending",
	})

	// ReviewStatusChanges はモデレーションと再編集による状態遷移数。
	ReviewStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_status_changes_total",
			Help: "Total number of review status changes by resulting status and actor",
		},
		[]string{"status", "actor"},
	)

	// ContactRelays は問い合わせ中継の結果別件数。
	ContactRelays = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_relays_total",
			Help: "Total number of contact messages relayed by result",
		},
		[]string{"result"},
	)

	// NotificationFailures は再送待ちに回した管理者通知数。
	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_notification_failures_total",
		Help: "Total number of admin notifications persisted for retry",
	})
)

type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// PrometheusMetrics returns middleware that collects HTTP metrics per chi route pattern.
func PrometheusMetrics(serviceName string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			routePattern := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				routePattern = rctx.RoutePattern()
			}
			if routePattern == "" {
				routePattern = "unknown"
			}
			status := strconv.Itoa(rw.statusCode)
			httpRequestsTotal.WithLabelValues(serviceName, r.Method, routePattern, status).Inc()
			httpRequestDuration.WithLabelValues(serviceName, r.Method, routePattern, status).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
