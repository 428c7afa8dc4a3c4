package observability

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheCounters(t *testing.T) {
	hits := testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("hit"))
	misses := testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("miss"))

	RecordCacheHit()
	RecordCacheHit()
	RecordCacheMiss()

	assert.Equal(t, hits+2, testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("hit")))
	assert.Equal(t, misses+1, testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("miss")))
}

func TestRecordReport(t *testing.T) {
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	RecordReport(at, 20*time.Millisecond)
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(LastReportTimestamp))
}

func TestWriteTextfile(t *testing.T) {
	CeilingViolationsTotal.Inc()

	path := filepath.Join(t.TempDir(), "shiftclock.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "shiftclock_ceiling_violations_total")
	assert.Contains(t, string(data), "# HELP shiftclock_last_report_timestamp_seconds")
}
