// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OptInAttempts counts opt-in form posts by the resulting widget state
	// ("editing", "confirmed") or "rate_limited".
	OptInAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civiq_optin_attempts_total",
		Help: "Total SMS opt-in form submissions by outcome",
	}, []string{"outcome"})

	// OptInRecorded counts recorder results for confirmed forms.
	OptInRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civiq_optin_recorded_total",
		Help: "Total confirmed opt-ins by recorder status",
	}, []string{"status"})

	SMSKeywords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civiq_sms_keywords_total",
		Help: "Total inbound SMS keyword messages by keyword class",
	}, []string{"keyword"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civiq_http_requests_total",
		Help: "Total HTTP requests by method, route pattern and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "civiq_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// EmailJobs counts notification send attempts by result ("sent", "failed")
	EmailJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civiq_email_jobs_total",
		Help: "Total notification email send attempts by result",
	}, []string{"result"})

	RetentionDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "civiq_retention_deleted_total",
		Help: "Total opted-out subscriptions removed by the retention sweep",
	})
)
