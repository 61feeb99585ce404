package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "boraali_http_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"route", "status"})
	HTTPDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "boraali_http_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"route"})
	AIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "boraali_ai_requests_total",
		Help: "Total generative model calls by kind and result",
	}, []string{"kind", "result"})
	AIDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "boraali_ai_duration_ms",
		Help:    "Generative model call duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	}, []string{"kind"})
	SummaryTasksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "boraali_summary_tasks_total",
		Help: "Summary tasks by outcome (done, failed, rejected)",
	}, []string{"result"})
	SummaryQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "boraali_summary_queue_depth",
		Help: "Summary tasks waiting for a worker",
	})
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "boraali_cache_hits_total",
		Help: "Cache hits by cache name",
	}, []string{"cache"})
	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "boraali_cache_misses_total",
		Help: "Cache misses by cache name",
	}, []string{"cache"})
	GeoLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "boraali_geo_lookups_total",
		Help: "Coarse location lookups by provider and result",
	}, []string{"provider", "result"})
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "boraali_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPDurationMs,
		AIRequestsTotal,
		AIDurationMs,
		SummaryTasksTotal,
		SummaryQueueDepth,
		CacheHitsTotal,
		CacheMissesTotal,
		GeoLookupsTotal,
		RateLimitedTotal,
	)
}

// Handler は /metrics 用のハンドラ
func Handler() http.Handler {
	return promhttp.Handler()
}

// Result はエラー有無をラベル値に変換する
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
