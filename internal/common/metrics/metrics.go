package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DashboardRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_requests_total",
			Help: "Total number of dashboard HTTP requests",
		},
		[]string{"route", "status"},
	)

	DashboardRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_request_duration_seconds",
			Help:    "Duration of dashboard HTTP requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"route"},
	)

	ArticleFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_fallbacks_total",
			Help: "Number of times the placeholder article was served",
		},
		[]string{"reason"},
	)

	AnalysisCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_calls_total",
			Help: "Calls made to the language analysis service",
		},
		[]string{"operation", "outcome"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "analysis_call_duration_seconds",
			Help: "Duration of language analysis calls in seconds",
		},
		[]string{"operation"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Response cache lookups by namespace and result",
		},
		[]string{"namespace", "result"},
	)

	ArticlesLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_loaded_total",
			Help: "Articles written by the loader",
		},
		[]string{"source", "outcome"},
	)
)
