package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Database metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Domain metrics
	JournalOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_operations_total",
			Help: "Total number of journal entry operations",
		},
		[]string{"operation"}, // create, update, delete
	)

	TimerSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timer_sessions_total",
			Help: "Total number of recorded timer sessions",
		},
		[]string{"kind", "completed"},
	)

	ReminderScheduleRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_schedule_runs_total",
			Help: "Reminder scheduler invocations by outcome",
		},
		[]string{"outcome"}, // scheduled, disabled, permission_denied, failed
	)

	ReminderDescriptorsScheduled = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reminder_descriptors_scheduled",
			Help:    "Notification descriptors emitted per scheduler run",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 200},
		},
	)

	// Authentication metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"}, // success/failure, login/refresh/2fa
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions_total",
			Help: "Total number of active sessions",
		},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"category", "reason"},
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackError increments the error counter for a category/reason pair
func TrackError(category, reason string) {
	ErrorsTotal.WithLabelValues(category, reason).Inc()
}

// TrackAuthAttempt records an authentication attempt outcome
func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

// TrackJournalOperation increments the journal operation counter
func TrackJournalOperation(operation string) {
	JournalOperationsTotal.WithLabelValues(operation).Inc()
}

// TrackReminderRun records a scheduler invocation outcome
func TrackReminderRun(outcome string) {
	ReminderScheduleRuns.WithLabelValues(outcome).Inc()
}
