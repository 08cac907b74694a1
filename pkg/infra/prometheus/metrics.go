package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guardrail_checks_total",
		Help: "Guardrail decisions by direction and outcome.",
	}, []string{"direction", "outcome"})

	BlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guardrail_blocks_total",
		Help: "Blocked messages by reason.",
	}, []string{"reason"})

	AlertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guardrail_alerts_total",
		Help: "Crisis alerts raised by reason.",
	}, []string{"reason"})

	ModerationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guardrail_moderation_failures_total",
		Help: "Moderation calls that errored or timed out (fail-closed).",
	})

	ModerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "guardrail_moderation_duration_seconds",
		Help:    "Latency of the AI moderation call.",
		Buckets: prometheus.DefBuckets,
	})
)
