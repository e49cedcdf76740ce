package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ramalama-labs/modelgen/pkg/errors"
)

var (
	generateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "modelgen_generate_duration_seconds",
			Help:    "Duration of a generation run in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	generateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modelgen_generate_total",
			Help: "Total number of generation runs",
		},
		[]string{"status"}, // success, error or dry_run
	)

	modelsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "modelgen_models_processed_total",
			Help: "Total number of models rendered",
		},
	)

	artifactsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modelgen_artifacts_written_total",
			Help: "Total number of artifact files written",
		},
		[]string{"kind"},
	)
)

// WriteMetrics exports the default registry to path in the Prometheus text
// format, for node_exporter's textfile collector.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write metrics", err,
			map[string]interface{}{"path": path})
	}
	return nil
}
