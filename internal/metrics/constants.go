package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "pantryfy_http_requests_total"
	MetricNameHTTPRequestDuration  = "pantryfy_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "pantryfy_http_requests_in_flight"

	MetricNameExtractionsTotal   = "pantryfy_extractions_total"
	MetricNameExtractionStages   = "pantryfy_extraction_stage_total"
	MetricNameExtractionDuration = "pantryfy_extraction_duration_seconds"
	MetricNameSearchCacheLookups = "pantryfy_search_cache_lookups_total"
)

// Help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextExtractionsTotal   = "Total number of recipe extractions by platform and result"
	HelpTextExtractionStages   = "Total number of extraction stage attempts by stage and outcome"
	HelpTextExtractionDuration = "Recipe extraction latency in seconds"
	HelpTextSearchCacheLookups = "Recipe search cache lookups by result"
)

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelPlatform = "platform"
	LabelResult   = "result"
	LabelStage    = "stage"
	LabelOutcome  = "outcome"
)

// Label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
	OutcomeSkipped = "skipped"
	OutcomePanic   = "panic"
)

// HTTPLatencyBuckets covers 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ExtractionBuckets covers the slower model-backed pipeline, up to 90s.
var ExtractionBuckets = []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60, 90}
