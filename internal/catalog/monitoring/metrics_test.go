package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("/drops", http.MethodGet, "200"))

	TrackRequest("/drops", http.MethodGet, http.StatusOK, 10*time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("/drops", http.MethodGet, "200"))
	assert.Equal(t, before+1, after)
}

func TestTrackSnapshotLoad(t *testing.T) {
	TrackSnapshotLoad("moments", ResultOK, 12)
	assert.Equal(t, float64(12), testutil.ToFloat64(snapshotRecords.WithLabelValues("moments")))

	TrackSnapshotLoad("moments", ResultInvalid, 0)
	assert.Equal(t, float64(12), testutil.ToFloat64(snapshotRecords.WithLabelValues("moments")), "failed loads keep the last count")
	assert.GreaterOrEqual(t, testutil.ToFloat64(snapshotLoads.WithLabelValues("moments", ResultInvalid)), float64(1))
}

func TestHandler(t *testing.T) {
	TrackCacheLookup("drops", CacheHit)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "catalog_cache_lookups_total")
}
