package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the data layer module. Labels never
// carry identity values.
type Metrics struct {
	// Snapshots assembled
	SnapshotsAssembled prometheus.Counter

	// Overall assembly latency, collaborators included
	AssembleLatency prometheus.Histogram

	// Collaborator failures by source and category
	CollaboratorFailures *prometheus.CounterVec

	// Script emissions by result: "emitted" or "suppressed"
	Emissions *prometheus.CounterVec

	// Contact hashes by field kind and result: "hashed" or "null"
	IdentityHashes *prometheus.CounterVec
}

// New creates a new Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics with reg. Tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SnapshotsAssembled: factory.NewCounter(prometheus.CounterOpts{
			Name: "datalayer_snapshots_assembled_total",
			Help: "Total number of data layer snapshots assembled",
		}),

		AssembleLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "datalayer_assemble_duration_seconds",
			Help:    "Duration of snapshot assembly including collaborator calls",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		CollaboratorFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datalayer_collaborator_failures_total",
			Help: "Total collaborator failures by source and category",
		}, []string{"source", "category"}),

		Emissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datalayer_emissions_total",
			Help: "Script emissions by result",
		}, []string{"result"}),

		IdentityHashes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datalayer_identity_hashes_total",
			Help: "Contact field hashes computed by field kind and result",
		}, []string{"kind", "result"}),
	}
}

// IncrementAssembled records one assembled snapshot.
func (m *Metrics) IncrementAssembled() {
	if m != nil {
		m.SnapshotsAssembled.Inc()
	}
}

// ObserveAssembleLatency records the total assembly duration.
func (m *Metrics) ObserveAssembleLatency(d time.Duration) {
	if m != nil {
		m.AssembleLatency.Observe(d.Seconds())
	}
}

// IncrementCollaboratorFailure records a failed collaborator call.
func (m *Metrics) IncrementCollaboratorFailure(source, category string) {
	if m != nil {
		m.CollaboratorFailures.WithLabelValues(source, category).Inc()
	}
}

// IncrementEmission records an emission attempt.
func (m *Metrics) IncrementEmission(emitted bool) {
	if m == nil {
		return
	}
	result := "suppressed"
	if emitted {
		result = "emitted"
	}
	m.Emissions.WithLabelValues(result).Inc()
}

// IncrementIdentityHash records one hashed attribute.
func (m *Metrics) IncrementIdentityHash(kind string, hashed bool) {
	if m == nil {
		return
	}
	result := "null"
	if hashed {
		result = "hashed"
	}
	m.IdentityHashes.WithLabelValues(kind, result).Inc()
}
