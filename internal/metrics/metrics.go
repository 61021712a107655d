// Package metrics exposes the Prometheus collectors served on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"key"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"key"},
	)

	// 이미지 업로드
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_image_uploads_total",
			Help: "Total number of cover image uploads by result",
		},
		[]string{"result"}, // "success", "rejected", "failed"
	)

	ImageUploadBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_image_upload_bytes",
			Help:    "Size of uploaded images before and after compression",
			Buckets: prometheus.ExponentialBuckets(16*1024, 2, 10), // 16KB ~ 8MB
		},
		[]string{"stage"}, // "original", "compressed"
	)

	// 사이트맵
	SitemapRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_sitemap_refresh_total",
			Help: "Total number of scheduled sitemap refreshes by result",
		},
		[]string{"result"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordCacheLookup(key string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(key).Inc()
	} else {
		CacheMisses.WithLabelValues(key).Inc()
	}
}

func RecordImageUpload(result string, originalBytes, compressedBytes int) {
	ImageUploadsTotal.WithLabelValues(result).Inc()
	if originalBytes > 0 {
		ImageUploadBytes.WithLabelValues("original").Observe(float64(originalBytes))
	}
	if compressedBytes > 0 {
		ImageUploadBytes.WithLabelValues("compressed").Observe(float64(compressedBytes))
	}
}

func RecordSitemapRefresh(err error) {
	if err != nil {
		SitemapRefreshTotal.WithLabelValues("error").Inc()
		return
	}
	SitemapRefreshTotal.WithLabelValues("success").Inc()
}
