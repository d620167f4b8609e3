package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	narrativeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adventure_narrative_requests_total",
			Help: "Total number of requests to the narrative model.",
		},
		[]string{"model", "status"}, // status: success | error | refused
	)
	narrativeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adventure_narrative_request_duration_seconds",
			Help:    "Histogram of narrative model request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	narrativePromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adventure_narrative_prompt_tokens",
			Help:    "Histogram of prompt token counts (reported or estimated).",
			Buckets: prometheus.ExponentialBuckets(256, 2, 10), // 256 ... 131072
		},
		[]string{"model", "source"}, // source: reported | estimated
	)
	mediaFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adventure_media_fetch_total",
			Help: "Total number of media fetches, partitioned by kind and outcome.",
		},
		[]string{"kind", "outcome"}, // outcome: success | error | skipped
	)
	mediaFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adventure_media_fetch_duration_seconds",
			Help:    "Histogram of media fetch durations.",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"kind"},
	)
	turnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adventure_turns_total",
			Help: "Total number of completed turns by resulting status and sentiment.",
		},
		[]string{"status", "sentiment"},
	)
)
