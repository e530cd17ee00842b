package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bodylog_store_writes_total",
			Help: "Total number of document writes to the persistent store",
		},
		[]string{"key", "result"},
	)

	storeWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bodylog_store_write_duration_seconds",
			Help:    "Document write latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"key"},
	)

	storeLoadFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bodylog_store_load_fallbacks_total",
			Help: "Number of loads that replaced an unreadable document with an empty one",
		},
		[]string{"key"},
	)
)

func observeWrite(key string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	storeWritesTotal.WithLabelValues(key, result).Inc()
	storeWriteDuration.WithLabelValues(key).Observe(time.Since(start).Seconds())
}
