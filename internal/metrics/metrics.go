package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for upstream fetches.
const (
	OutcomeOK          = "ok"
	OutcomeUnreachable = "unreachable"
	OutcomeMalformed   = "malformed"
)

// Metrics holds the counters StockView exports. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	upstreamFetches *prometheus.CounterVec
	views           *prometheus.CounterVec
	charts          *prometheus.CounterVec
}

// New creates the counters on a private registry so tests can build many.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstreamFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockview",
			Name:      "upstream_fetches_total",
			Help:      "getTotalTrade calls by outcome",
		}, []string{"outcome"}),
		views: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockview",
			Name:      "views_total",
			Help:      "rendered table views by indicator",
		}, []string{"indicator"}),
		charts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockview",
			Name:      "charts_total",
			Help:      "rendered charts by indicator",
		}, []string{"indicator"}),
	}
	m.registry.MustRegister(m.upstreamFetches, m.views, m.charts)
	return m
}

func (m *Metrics) UpstreamFetch(outcome string) {
	if m == nil {
		return
	}
	m.upstreamFetches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) View(indicator string) {
	if m == nil {
		return
	}
	m.views.WithLabelValues(indicator).Inc()
}

func (m *Metrics) Chart(indicator string) {
	if m == nil {
		return
	}
	m.charts.WithLabelValues(indicator).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
