package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "law_office"

var (
	// Registry 应用自有的 Prometheus 注册表
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	membershipRepairs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tasks",
			Name:      "membership_repaired_users_total",
			Help:      "Users added to the default group by the nightly membership repair.",
		},
	)

	taskRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tasks",
			Name:      "runs_total",
			Help:      "Total number of scheduled task runs.",
		},
		[]string{"task", "success"},
	)

	notificationsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tasks",
			Name:      "notifications_purged_total",
			Help:      "Sub-agent notifications removed by the retention cleanup.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		membershipRepairs,
		taskRuns,
		notificationsPurged,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted 请求开始
func RequestStarted() {
	httpInFlight.Inc()
}

// RequestFinished 请求结束
func RequestFinished(method, path, status string, seconds float64) {
	httpInFlight.Dec()
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordTaskRun 记录一次定时任务执行
func RecordTaskRun(task string, success bool) {
	label := "false"
	if success {
		label = "true"
	}
	taskRuns.WithLabelValues(task, label).Inc()
}

// AddMembershipRepairs 累加分组修复人数
func AddMembershipRepairs(n int) {
	if n > 0 {
		membershipRepairs.Add(float64(n))
	}
}

// AddNotificationsPurged 累加清理的通知数
func AddNotificationsPurged(n int64) {
	if n > 0 {
		notificationsPurged.Add(float64(n))
	}
}
