package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "odyssey_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// UploadsTotal counts committed uploads by kind (moment, blog, gallery, destination).
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "odyssey_uploads_total",
		Help: "Total number of uploaded images committed to the public directory",
	}, []string{"kind"})

	// UploadBytes records the size of committed uploads.
	UploadBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "odyssey_upload_bytes",
		Help:    "Size of uploaded images in bytes",
		Buckets: prometheus.ExponentialBuckets(16*1024, 4, 7),
	}, []string{"kind"})

	// UploadsDiscarded counts staged uploads removed before commit, by reason.
	UploadsDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "odyssey_uploads_discarded_total",
		Help: "Total number of staged uploads removed without being committed",
	}, []string{"reason"})

	// StoreEntities is the number of entities held by each in-memory store.
	StoreEntities = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "odyssey_store_entities",
		Help: "Number of entities held in memory per store",
	}, []string{"store"})

	// DestinationsTotal is the number of destination albums seen at the last summary.
	DestinationsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "odyssey_destinations_total",
		Help: "Number of destination albums derived from posts",
	})
)

// RecordUpload increments upload counters for a committed file of size bytes.
func RecordUpload(kind string, size int64) {
	UploadsTotal.WithLabelValues(kind).Inc()
	UploadBytes.WithLabelValues(kind).Observe(float64(size))
}
