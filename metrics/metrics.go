package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timesheet_submissions_total",
			Help: "Total number of timesheet submissions",
		},
		[]string{"entry_type", "outcome"},
	)

	SubmissionDaysHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "timesheet_submission_days",
			Help:    "Distribution of total days per submitted week",
			Buckets: prometheus.LinearBuckets(0, 0.5, 15),
		},
		[]string{"entry_type"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
