package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/recipes/:id", "404"))
	RecordHTTPRequest("GET", "/recipes/:id", 404, 3*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/recipes/:id", "404"))
	assert.Equal(t, before+1, after)

	RecordHTTPRequest("GET", "", 404, time.Millisecond)
	assert.GreaterOrEqual(t, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")), 1.0)
}

func TestRecordRating(t *testing.T) {
	created := testutil.ToFloat64(RatingsSubmitted.WithLabelValues("created"))
	updated := testutil.ToFloat64(RatingsSubmitted.WithLabelValues("updated"))

	RecordRating(true)
	RecordRating(false)
	RecordRating(false)

	assert.Equal(t, created+1, testutil.ToFloat64(RatingsSubmitted.WithLabelValues("created")))
	assert.Equal(t, updated+2, testutil.ToFloat64(RatingsSubmitted.WithLabelValues("updated")))
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(RecipeCacheHits)
	misses := testutil.ToFloat64(RecipeCacheMisses)

	RecordCacheLookup(true)
	RecordCacheLookup(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(RecipeCacheHits))
	assert.Equal(t, misses+1, testutil.ToFloat64(RecipeCacheMisses))
}
