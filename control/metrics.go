// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collectors for affinity requests, dropped dump lines and trace sections.
// A nil *Metrics is valid and records nothing.

package control

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "peuck"

// Result labels for affinity requests.
const (
	ResultApplied  = "applied"
	ResultSkipped  = "skipped"
	ResultDegraded = "degraded"
)

// Metrics holds the peuck collectors.
type Metrics struct {
	affinityRequests *prometheus.CounterVec
	droppedLines     *prometheus.CounterVec
	traceSections    prometheus.Counter
	cores            prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		affinityRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "affinity_requests_total",
			Help:      "Affinity requests by operation and outcome.",
		}, []string{"op", "result"}),
		droppedLines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "parse_dropped_lines_total",
			Help:      "Malformed native dump lines skipped during parsing.",
		}, []string{"source"}),
		traceSections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "trace_sections_total",
			Help:      "Trace sections begun.",
		}),
		cores: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cpu_cores",
			Help:      "Logical CPU count last reported by the platform.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.affinityRequests, m.droppedLines, m.traceSections, m.cores)
	}
	return m
}

// AffinityRequest counts one affinity operation.
func (m *Metrics) AffinityRequest(op, result string) {
	if m == nil {
		return
	}
	m.affinityRequests.WithLabelValues(op, result).Inc()
}

// DroppedLines counts n skipped lines from source.
func (m *Metrics) DroppedLines(source string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.droppedLines.WithLabelValues(source).Add(float64(n))
}

// TraceSection counts a begun section.
func (m *Metrics) TraceSection() {
	if m == nil {
		return
	}
	m.traceSections.Inc()
}

// SetCores records the last reported core count.
func (m *Metrics) SetCores(n int) {
	if m == nil {
		return
	}
	m.cores.Set(float64(n))
}

// AffinityRequestsCollector exposes the request counter for tests and custom registries.
func (m *Metrics) AffinityRequestsCollector() *prometheus.CounterVec { return m.affinityRequests }

// DroppedLinesCollector exposes the dropped-lines counter.
func (m *Metrics) DroppedLinesCollector() *prometheus.CounterVec { return m.droppedLines }

// TraceSectionsCollector exposes the trace section counter.
func (m *Metrics) TraceSectionsCollector() prometheus.Counter { return m.traceSections }

// CoresCollector exposes the core count gauge.
func (m *Metrics) CoresCollector() prometheus.Gauge { return m.cores }
