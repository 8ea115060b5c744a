package metrics

import "github.com/prometheus/client_golang/prometheus"

// Riot API and cache metrics
var (
	RiotRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "riot_requests_total",
		Help:      "Total number of Riot API requests by endpoint and status code",
	}, []string{"endpoint", "status"})
	RiotRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "riot_request_duration_seconds",
		Help:      "Riot API request latency including retries",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"endpoint"})
	MatchesIngestedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_ingested_total",
		Help:      "Total number of crawled matches by result",
	}, []string{"result"})
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_cache_lookups_total",
		Help:      "Snapshot cache lookups by result",
	}, []string{"result"})
)

// RecordRiotRequest records a Riot API call.
// endpoint should be one of: "match_ids", "match"
func RecordRiotRequest(endpoint, status string, durationSeconds float64) {
	RiotRequestsTotal.WithLabelValues(endpoint, status).Inc()
	RiotRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordMatchIngested records the fate of one crawled match.
// result should be one of: "stored", "duplicate", "ignored", "failed"
func RecordMatchIngested(result string) {
	MatchesIngestedTotal.WithLabelValues(result).Inc()
}

// RecordCacheLookup records a snapshot cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(result).Inc()
}
