package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by statement verb.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "microblog_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// TweetEvents counts tweet lifecycle events (created, deleted).
	TweetEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_tweet_events_total",
		Help: "Total number of tweet lifecycle events",
	}, []string{"event"})

	// LedgerEvents counts like/follow ledger outcomes by ledger, action and result.
	LedgerEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_ledger_events_total",
		Help: "Total number of like and follow ledger operations by outcome",
	}, []string{"ledger", "action", "result"})

	// MediaEvents counts media store operations by operation and result.
	MediaEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_media_events_total",
		Help: "Total number of media store operations by outcome",
	}, []string{"operation", "result"})

	// FeedSize records how many tweets a composed feed contained.
	FeedSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "microblog_feed_size_tweets",
		Help:    "Number of tweets returned per feed composition",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})
)

// RecordLedger increments the ledger counter. An empty code is recorded as "ok".
func RecordLedger(ledger, action string, code string) {
	if code == "" {
		code = "ok"
	}
	LedgerEvents.WithLabelValues(ledger, action, code).Inc()
}
