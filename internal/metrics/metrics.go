package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Extraction Metrics
var (
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExtractionsTotal,
			Help: HelpTextExtractionsTotal,
		},
		[]string{LabelPlatform, LabelResult},
	)

	ExtractionStages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExtractionStages,
			Help: HelpTextExtractionStages,
		},
		[]string{LabelStage, LabelOutcome},
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameExtractionDuration,
			Help:    HelpTextExtractionDuration,
			Buckets: ExtractionBuckets,
		},
		[]string{LabelPlatform},
	)
)

// Search Metrics
var (
	SearchCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSearchCacheLookups,
			Help: HelpTextSearchCacheLookups,
		},
		[]string{LabelResult},
	)
)
