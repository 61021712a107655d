package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recipes", "200"))

	RecordAPIRequest("GET", "/api/v1/recipes", 200, 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recipes", "200"))
	assert.Equal(t, before+1, after)
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	assert.Equal(t, before+1, testutil.ToFloat64(APIActiveRequests))
	TrackActiveRequest(false)
	assert.Equal(t, before, testutil.ToFloat64(APIActiveRequests))
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("recipes:list"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("recipes:list"))

	RecordCacheLookup("recipes:list", true)
	RecordCacheLookup("recipes:list", false)
	RecordCacheLookup("recipes:list", false)

	assert.Equal(t, hits+1, testutil.ToFloat64(CacheHits.WithLabelValues("recipes:list")))
	assert.Equal(t, misses+2, testutil.ToFloat64(CacheMisses.WithLabelValues("recipes:list")))
}

func TestRecordImageUpload(t *testing.T) {
	before := testutil.ToFloat64(ImageUploadsTotal.WithLabelValues("success"))
	RecordImageUpload("success", 2_000_000, 250_000)
	assert.Equal(t, before+1, testutil.ToFloat64(ImageUploadsTotal.WithLabelValues("success")))
}

func TestRecordSitemapRefresh(t *testing.T) {
	ok := testutil.ToFloat64(SitemapRefreshTotal.WithLabelValues("success"))
	failed := testutil.ToFloat64(SitemapRefreshTotal.WithLabelValues("error"))

	RecordSitemapRefresh(nil)
	RecordSitemapRefresh(errors.New("db down"))

	assert.Equal(t, ok+1, testutil.ToFloat64(SitemapRefreshTotal.WithLabelValues("success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(SitemapRefreshTotal.WithLabelValues("error")))
}
