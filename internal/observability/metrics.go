// Package observability holds the Prometheus metrics recorded while
// attendance is reconciled and reported.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// ReconciliationsTotal counts reconciled user-days by outcome status.
var ReconciliationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "shiftclock",
	Name:      "reconciliations_total",
	Help:      "User-days reconciled, by attendance status",
}, []string{"status"})

// CeilingViolationsTotal counts user-days whose raw total exceeded the window.
// A non-zero value points at bad span data upstream.
var CeilingViolationsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "shiftclock",
	Name:      "ceiling_violations_total",
	Help:      "User-days whose worked minutes had to be clamped to the shift length",
})

var OpenSpansExtrapolatedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "shiftclock",
	Name:      "open_spans_extrapolated_total",
	Help:      "Open activity spans counted toward worked minutes",
})

var DroppedSpansTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "shiftclock",
	Name:      "dropped_spans_total",
	Help:      "Closed spans that fell outside the shift window or were inverted",
})

var CacheRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "shiftclock",
	Name:      "cache_requests_total",
	Help:      "Span query cache lookups by result",
}, []string{"result"})

var ReportDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "shiftclock",
	Name:      "report_duration_seconds",
	Help:      "Time taken to build an attendance report",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
})

var LastReportTimestamp = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "shiftclock",
	Name:      "last_report_timestamp_seconds",
	Help:      "Unix time the last attendance report was generated",
})

func RecordCacheHit() {
	CacheRequestsTotal.WithLabelValues("hit").Inc()
}

func RecordCacheMiss() {
	CacheRequestsTotal.WithLabelValues("miss").Inc()
}

// RecordReport notes a finished report.
func RecordReport(generatedAt time.Time, took time.Duration) {
	LastReportTimestamp.Set(float64(generatedAt.Unix()))
	ReportDurationSeconds.Observe(took.Seconds())
}

// WriteTextfile writes every metric in the textfile collector format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
