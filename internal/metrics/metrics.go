package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countrystats_upstream_requests_total",
		Help: "Total REST Countries requests by endpoint",
	}, []string{"endpoint"})
	UpstreamFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countrystats_upstream_fail_total",
		Help: "Total REST Countries failures by endpoint and reason",
	}, []string{"endpoint", "reason"})
	UpstreamDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "countrystats_upstream_duration_ms",
		Help:    "REST Countries call duration in milliseconds",
		Buckets: []float64{10, 25, 50, 100, 200, 500, 1000, 2000, 5000},
	}, []string{"endpoint"})
	RecordsAggregated = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "countrystats_records_aggregated",
		Help:    "Number of country records per aggregation",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 250},
	})
	TriggersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countrystats_triggers_total",
		Help: "Widget triggers by kind and outcome",
	}, []string{"trigger", "outcome"})
)

func init() {
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamFailTotal)
	prometheus.MustRegister(UpstreamDurationMs)
	prometheus.MustRegister(RecordsAggregated)
	prometheus.MustRegister(TriggersTotal)
}

// Handler：暴露已注册指标，主入口挂载到 {API_BASE}/metrics
func Handler() http.Handler { return promhttp.Handler() }
