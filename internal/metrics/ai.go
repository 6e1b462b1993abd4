package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resume_architect",
			Subsystem: "ai",
			Name:      "call_duration_seconds",
			Help:      "AI 调用耗时分布（秒）。",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"operation"},
	)

	aiCallFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_architect",
			Subsystem: "ai",
			Name:      "calls_failed_total",
			Help:      "AI 调用失败总数。",
		},
		[]string{"operation"},
	)

	aiCallInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "resume_architect",
			Subsystem: "ai",
			Name:      "calls_in_progress",
			Help:      "当前正在进行的 AI 调用数量。",
		},
		[]string{"operation"},
	)
)

// ObserveAICall 记录一次 AI 调用的指标。用法：
//
//	done := metrics.ObserveAICall("rewrite")
//	...
//	done(err)
func ObserveAICall(operation string) func(error) {
	start := time.Now()
	aiCallInProgress.WithLabelValues(operation).Inc()

	return func(err error) {
		aiCallInProgress.WithLabelValues(operation).Dec()
		aiCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		if err != nil {
			aiCallFailedTotal.WithLabelValues(operation).Inc()
		}
	}
}
