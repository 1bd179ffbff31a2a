// Package metrics collects prometheus metrics about dispatch decisions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	promNamespace         = "webfence"
	promDispatchSubsystem = "dispatch"
	promFirewallSubsystem = "firewall"
)

// Metrics is the prometheus backend for the dispatch handler. A nil
// *Metrics is valid and discards all updates.
type Metrics struct {
	decisionsM *prometheus.CounterVec
	rejectedM  prometheus.Counter

	registry *prometheus.Registry
	handler  http.Handler
}

// New returns a metrics backend with its own prometheus registry.
func New() *Metrics {
	decisionsM := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Subsystem: promDispatchSubsystem,
		Name:      "decisions_total",
		Help:      "Total number of dispatch decisions partitioned by outcome and selected chain.",
	}, []string{"outcome", "chain"})

	rejectedM := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Subsystem: promFirewallSubsystem,
		Name:      "rejected_total",
		Help:      "Total number of requests rejected by the firewall before matching.",
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(decisionsM, rejectedM)

	return &Metrics{
		decisionsM: decisionsM,
		rejectedM:  rejectedM,
		registry:   registry,
		handler:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
}

// IncDecision counts one dispatch decision. The chain label is empty for
// ignored and unmatched requests.
func (m *Metrics) IncDecision(outcome, chain string) {
	if m == nil {
		return
	}

	m.decisionsM.WithLabelValues(outcome, chain).Inc()
}

// IncRejected counts one request rejected by the firewall.
func (m *Metrics) IncRejected() {
	if m == nil {
		return
	}

	m.rejectedM.Inc()
}

// Handler returns the handler serving the collected metrics in the
// prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}
