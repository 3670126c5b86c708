package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rideshare_build_info",
		Help: "Build information of the rideshare backend",
	},
		[]string{"version", "commit", "date"},
	)

	IngestRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rideshare_ingest_rows_total",
		Help: "Total number of ingested trip rows by result",
	},
		[]string{"result"},
	)

	ChatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rideshare_chat_requests_total",
		Help: "Total number of chat requests",
	},
		[]string{"endpoint"},
	)

	CollaboratorFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rideshare_collaborator_failures_total",
		Help: "Total number of failed agent or explainer calls",
	},
		[]string{"collaborator"},
	)

	CollaboratorDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rideshare_collaborator_duration_seconds",
		Help:    "Latency of agent and explainer calls",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	},
		[]string{"collaborator"},
	)
)
