package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric label values.
const (
	ChartPie     = "pie"
	ChartScatter = "scatter"

	ReasonRateLimited  = "rate_limited"
	ReasonUnknownSite  = "unknown_site"
	ReasonInvalidRange = "invalid_range"
	ReasonBadFormat    = "bad_format"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_requests_total",
		Help: "Total number of dashboard requests",
	}, []string{"route", "status"})

	latencyHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_request_latency_seconds",
		Help:    "Latency of dashboard requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	resultSizeGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dashboard_result_size",
		Help: "Number of slices or points in the last chart response",
	}, []string{"chart"})

	deniedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_denied_total",
		Help: "Total number of rejected dashboard requests by reason",
	}, []string{"reason"})

	renderErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_render_errors_total",
		Help: "Total number of chart and page render failures",
	}, []string{"chart"})
)
