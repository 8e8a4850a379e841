package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ChatTurns          *prometheus.CounterVec
	ChatTurnLatency    prometheus.Histogram
	RetrievalFallbacks *prometheus.CounterVec
	Recommendations    prometheus.Counter
	UnmatchedSKUs      prometheus.Counter
	ModelErrors        prometheus.Counter
	CheckoutResults    *prometheus.CounterVec
	ActiveSessions     prometheus.Gauge
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ChatTurns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_turns_total",
			Help:      "Chat turns by outcome (ok, fallback_reply, rejected).",
		}, []string{"outcome"}),
		ChatTurnLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chat_turn_latency_ms",
			Help:      "End-to-end chat turn latency in milliseconds.",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 4000, 8000, 15000},
		}),
		RetrievalFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieval_fallbacks_total",
			Help:      "Retrieval fallbacks taken by tier (cheapest, lexical).",
		}, []string{"tier"}),
		Recommendations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Product recommendations extracted from assistant replies.",
		}),
		UnmatchedSKUs: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_unmatched_skus_total",
			Help:      "SKU markers in assistant replies that matched no retrieved product.",
		}),
		ModelErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_invocation_errors_total",
			Help:      "Failed chat-completion invocations.",
		}),
		CheckoutResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_results_total",
			Help:      "Checkout proxy outcomes by code.",
		}, []string{"code"}),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_chat_sessions",
			Help:      "Number of sessions with non-empty conversation history.",
		}),
	}
}

func (m *Metrics) ObserveChatTurnLatency(d time.Duration) {
	m.ChatTurnLatency.Observe(float64(d.Milliseconds()))
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
