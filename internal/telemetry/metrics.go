package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes the viewer's operational counters.
type Metrics struct {
	DocumentsLoaded prometheus.Counter
	LoadFailures    prometheus.Counter
	Exports         *prometheus.CounterVec
	ActiveSessions  prometheus.GaugeFunc
}

// NewMetrics registers the viewer metrics with reg. activeSessions is
// sampled on every scrape.
func NewMetrics(reg prometheus.Registerer, activeSessions func() float64) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DocumentsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "qbank_documents_loaded_total",
			Help: "Documents successfully loaded and attached to a session.",
		}),
		LoadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "qbank_document_load_failures_total",
			Help: "Documents that failed to read or parse.",
		}),
		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qbank_exports_total",
			Help: "Export downloads served, by format.",
		}, []string{"format"}),
		ActiveSessions: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "qbank_active_sessions",
			Help: "Live interactive sessions.",
		}, activeSessions),
	}
}
