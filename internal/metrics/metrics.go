package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Categorizations tracks completed categorizations per category and source
	Categorizations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_triage_categorizations_total",
			Help: "Total number of completed categorizations",
		},
		[]string{"category", "source"},
	)

	// ProviderErrors tracks failed AI provider exchanges per provider
	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_triage_provider_errors_total",
			Help: "Total number of failed AI provider requests",
		},
		[]string{"provider"},
	)

	// CategorizationLatency tracks end-to-end categorization latency
	CategorizationLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mail_triage_categorization_seconds",
			Help:    "Categorization latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
