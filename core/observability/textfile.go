package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RunMetrics collects per-run gauges for the node_exporter textfile
// collector. Each run owns its registry.
type RunMetrics struct {
	registry          *prometheus.Registry
	documentsInserted *prometheus.GaugeVec
	collectionCount   *prometheus.GaugeVec
	stageDuration     *prometheus.GaugeVec
	stageSkipped      *prometheus.GaugeVec
	indexesCreated    *prometheus.GaugeVec
	lastRun           prometheus.Gauge
}

// NewRunMetrics builds the run gauges on a private registry labeled with runID.
func NewRunMetrics(runID string) *RunMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"run_id": runID}

	return &RunMetrics{
		registry: reg,
		documentsInserted: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "seeder_documents_inserted",
				Help:        "Documents inserted by the last run",
				ConstLabels: labels,
			},
			[]string{"collection"},
		),
		collectionCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "seeder_collection_documents",
				Help:        "Documents present after the last run",
				ConstLabels: labels,
			},
			[]string{"collection"},
		),
		stageDuration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "seeder_stage_duration_seconds",
				Help:        "Wall time of each stage in the last run",
				ConstLabels: labels,
			},
			[]string{"stage"},
		),
		stageSkipped: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "seeder_stage_skipped",
				Help:        "1 when a stage was skipped for unmet preconditions",
				ConstLabels: labels,
			},
			[]string{"stage"},
		),
		indexesCreated: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "seeder_indexes",
				Help:        "Indexes ensured by the last run",
				ConstLabels: labels,
			},
			[]string{"state"},
		),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "seeder_last_run_timestamp_seconds",
			Help:        "Unix time the last run finished",
			ConstLabels: labels,
		}),
	}
}

// SetInserted records how many documents a collection received this run.
func (r *RunMetrics) SetInserted(collection string, n int) {
	r.documentsInserted.WithLabelValues(collection).Set(float64(n))
}

// SetCount records a collection's document count after the run.
func (r *RunMetrics) SetCount(collection string, n int64) {
	r.collectionCount.WithLabelValues(collection).Set(float64(n))
}

// ObserveStage records a stage's wall time and whether it was skipped.
func (r *RunMetrics) ObserveStage(stage string, d time.Duration, skipped bool) {
	r.stageDuration.WithLabelValues(stage).Set(d.Seconds())
	value := 0.0
	if skipped {
		value = 1
	}
	r.stageSkipped.WithLabelValues(stage).Set(value)
}

// SetIndexes records the created and verified index totals.
func (r *RunMetrics) SetIndexes(created, verified int) {
	r.indexesCreated.WithLabelValues("created").Set(float64(created))
	r.indexesCreated.WithLabelValues("verified").Set(float64(verified))
}

// WriteTextfile stamps the finish time and writes the registry atomically.
func (r *RunMetrics) WriteTextfile(path string, finished time.Time) error {
	r.lastRun.Set(float64(finished.Unix()))
	return prometheus.WriteToTextfile(path, r.registry)
}

// Gatherer exposes the registry to tests and callers that push elsewhere.
func (r *RunMetrics) Gatherer() prometheus.Gatherer {
	return r.registry
}
