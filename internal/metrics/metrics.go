// Package metrics exposes Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the chatbot backend.
type Metrics struct {
	// HTTP surface
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Conversation flow
	ChatTurns          prometheus.Counter
	CompletionFailures prometheus.Counter

	// Speech adapters
	TranscriptionRequests prometheus.Counter
	TranscriptionFailures prometheus.Counter
	SynthesisFailures     prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sana_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		}, []string{"route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sana_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		}, []string{"route"}),
		ChatTurns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sana_chat_turns_total",
			Help: "Total number of completed chat turns",
		}),
		CompletionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sana_completion_failures_total",
			Help: "Total number of failed completion calls",
		}),
		TranscriptionRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sana_transcription_requests_total",
			Help: "Total number of audio transcription requests",
		}),
		TranscriptionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sana_transcription_failures_total",
			Help: "Total number of failed transcription requests",
		}),
		SynthesisFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sana_synthesis_failures_total",
			Help: "Total number of speech synthesis attempts that degraded to empty audio",
		}),
	}
}
