package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	regrid = "regrid"

	// Driver metrics
	itemsProcessedTotal = "items_processed_total"
	runsTotal           = "runs_total"
	itemDurationSeconds = "item_duration_seconds"

	// Generator metrics
	scriptsGeneratedTotal = "scripts_generated_total"

	// Labels
	itemResultLabel = "result"
	runKindLabel    = "kind"
	scriptModeLabel = "mode"
)

const (
	ItemResultSuccess = "success"
	ItemResultFailure = "failure"
)

/**
* Metrics definition
**/
var itemsProcessedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: regrid,
		Name:      itemsProcessedTotal,
		Help:      "number of input files processed, partitioned by result",
	},
	[]string{itemResultLabel},
)

var runsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: regrid,
		Name:      runsTotal,
		Help:      "number of driver batches started, partitioned by kind",
	},
	[]string{runKindLabel},
)

var itemDurationSecondsMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: regrid,
		Name:      itemDurationSeconds,
		Help:      "wall-clock duration of a single gridding call",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300},
	},
)

var scriptsGeneratedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: regrid,
		Name:      scriptsGeneratedTotal,
		Help:      "number of job scripts written, partitioned by generation mode",
	},
	[]string{scriptModeLabel},
)

func IncreaseItemsProcessedMetric(result string) {
	itemsProcessedTotalMetric.With(prometheus.Labels{itemResultLabel: result}).Inc()
}

func IncreaseRunsTotalMetric(kind string) {
	runsTotalMetric.With(prometheus.Labels{runKindLabel: kind}).Inc()
}

func ObserveItemDurationMetric(seconds float64) {
	itemDurationSecondsMetric.Observe(seconds)
}

func IncreaseScriptsGeneratedMetric(mode string) {
	scriptsGeneratedTotalMetric.With(prometheus.Labels{scriptModeLabel: mode}).Inc()
}

// Handler exposes the default registry over HTTP.
func Handler() http.Handler {
	return promhttp.Handler()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(itemsProcessedTotalMetric)
	prometheus.MustRegister(runsTotalMetric)
	prometheus.MustRegister(itemDurationSecondsMetric)
	prometheus.MustRegister(scriptsGeneratedTotalMetric)
}
