package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for a map build.
// A build is a one-shot batch run, so the counters double as the run
// summary logged on completion.
type Metrics struct {
	RowsParsed      prometheus.Counter
	RowsSkipped     *prometheus.CounterVec // label: reason={missing_coordinates,duplicate_code,bad_row}
	PhotosMatched   prometheus.Counter
	PhotosUnmatched prometheus.Counter
	MarkersRendered prometheus.Counter

	StageDuration *prometheus.HistogramVec // label: stage={load,inventory,boundary,photos,render,export}
}

// NewMetrics creates and registers all build metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsParsed,
		m.RowsSkipped,
		m.PhotosMatched,
		m.PhotosUnmatched,
		m.MarkersRendered,
		m.StageDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry,
// avoiding "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "treemap",
			Name:      "rows_parsed_total",
			Help:      "Inventory rows parsed into tree records.",
		}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "treemap",
			Name:      "rows_skipped_total",
			Help:      "Inventory rows skipped, by reason.",
		}, []string{"reason"}),
		PhotosMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "treemap",
			Name:      "photos_matched_total",
			Help:      "Photo files linked to a tree record.",
		}),
		PhotosUnmatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "treemap",
			Name:      "photos_unmatched_total",
			Help:      "Photo files whose name matched no Tree Code.",
		}),
		MarkersRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "treemap",
			Name:      "markers_rendered_total",
			Help:      "Tree markers placed on the composed map.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "treemap",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
	}
}
