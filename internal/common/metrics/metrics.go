// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClaimAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enre_claim_attempts_total",
			Help: "Total number of claim submissions by outcome",
		},
		[]string{"outcome"},
	)

	ClaimAttemptDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enre_claim_attempt_duration_seconds",
			Help:    "Duration of a claim submission in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"dry_run"},
	)

	ArchiveFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enre_archive_failures_total",
			Help: "Total number of raw response archive failures",
		},
		[]string{"target"},
	)

	RecordFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enre_record_failures_total",
			Help: "Total number of claim record write failures",
		},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enre_notification_failures_total",
			Help: "Total number of operator notification failures",
		},
		[]string{"channel"},
	)

	ScheduleToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enre_schedule_toggles_total",
			Help: "Total number of schedule toggle requests",
		},
		[]string{"action", "result"},
	)

	ControlRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enre_control_requests_total",
			Help: "Total number of control surface requests",
		},
		[]string{"route", "status"},
	)

	SubmissionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "enre_submissions_active",
			Help: "Number of claim submissions in flight",
		},
	)
)
