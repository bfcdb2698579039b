package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Voice pipeline
	VoiceCommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studai_voice_commands_total",
		Help: "Voice commands processed, by intent action and outcome",
	}, []string{"action", "status"})

	VoiceSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "studai_voice_sessions_active",
		Help: "Voice sessions currently in a non-idle phase",
	})

	VoiceSessionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studai_voice_sessions_rejected_total",
		Help: "Activations dropped because a session was already running",
	})

	VoiceSessionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "studai_voice_session_duration_seconds",
		Help:    "Wall time of a full listen-classify-dispatch-speak cycle",
		Buckets: prometheus.DefBuckets,
	})

	ClassifierFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studai_classifier_fallbacks_total",
		Help: "Remote classifications silently recovered by the local rules",
	})

	UtterancesSpokenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studai_utterances_spoken_total",
		Help: "Speech output requests that started playback",
	})

	UtterancesPreemptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studai_utterances_preempted_total",
		Help: "In-flight utterances cancelled by newer speech (barge-in)",
	})

	// Infrastructure
	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "studai_database_latency_seconds",
		Help:    "Latency of repository operations",
		Buckets: prometheus.DefBuckets,
	})
)
