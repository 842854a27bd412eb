package recommendation

import (
	"time"

	"myMarket/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Count of recommendation queries by kind.",
		},
		[]string{"kind"},
	)

	RecommendationLatencySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_latency_seconds",
			Help:    "Latency of recommendation queries by kind.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	VectorCacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vector_cache_lookups_total",
			Help: "Vector cache lookups by vector kind and result (hit, miss, error).",
		},
		[]string{"vector", "result"},
	)
)

func init() {
	prometheus.MustRegister(RecommendationRequestsTotal, RecommendationLatencySeconds, VectorCacheLookupsTotal)
}

func observe(kind domain.RecommendationKind, start time.Time) {
	RecommendationRequestsTotal.WithLabelValues(string(kind)).Inc()
	RecommendationLatencySeconds.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
}
