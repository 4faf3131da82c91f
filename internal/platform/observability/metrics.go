package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatasetRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dashboard_dataset_records",
		Help: "Number of launch records loaded into memory",
	}, []string{"source"})

	DatasetLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_dataset_load_duration_seconds",
		Help:    "Duration of dataset loading at startup",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	LaunchesImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_launches_imported_total",
		Help: "The total number of launch records written to PostgreSQL",
	})
)
