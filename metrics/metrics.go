// Package metrics records counters for a castgraph run in Prometheus format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/teranos/castgraph/errors"
)

// Stream labels
const (
	StreamEntities  = "entities"
	StreamRelations = "relations"
)

// Phase labels
const (
	PhaseRegistry  = "registry"
	PhaseGroups    = "groups"
	PhaseAggregate = "aggregate"
	PhaseWrite     = "write"
)

// Metrics provides observability for one build run.
// Every instance owns a private registry, so runs never share counters.
type Metrics struct {
	registry *prometheus.Registry

	RecordsRead    *prometheus.CounterVec
	RecordsSkipped *prometheus.CounterVec
	Persons        prometheus.Gauge
	Groups         prometheus.Gauge
	Edges          prometheus.Gauge
	PhaseDuration  *prometheus.HistogramVec
}

// New creates a new Metrics instance with all run metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RecordsRead: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "castgraph_records_read_total",
			Help: "Non-header lines read per input stream",
		}, []string{"stream"}),
		RecordsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "castgraph_records_skipped_total",
			Help: "Records that produced no person or membership, by stream and reason",
		}, []string{"stream", "reason"}),
		Persons: factory.NewGauge(prometheus.GaugeOpts{
			Name: "castgraph_persons",
			Help: "Qualifying persons in the registry",
		}),
		Groups: factory.NewGauge(prometheus.GaugeOpts{
			Name: "castgraph_groups",
			Help: "Titles with at least one qualifying member",
		}),
		Edges: factory.NewGauge(prometheus.GaugeOpts{
			Name: "castgraph_edges",
			Help: "Undirected co-appearance edges",
		}),
		PhaseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "castgraph_phase_duration_seconds",
			Help:    "Duration of each pipeline phase",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"phase"}),
	}
}

// AddRead records n lines read from stream
func (m *Metrics) AddRead(stream string, n int) {
	m.RecordsRead.WithLabelValues(stream).Add(float64(n))
}

// AddSkipped records n skipped records; zero counts still create the series
func (m *Metrics) AddSkipped(stream, reason string, n int) {
	m.RecordsSkipped.WithLabelValues(stream, reason).Add(float64(n))
}

// ObservePhase records the duration of a phase.
// Call with time.Now() at the start of the phase.
func (m *Metrics) ObservePhase(phase string, start time.Time) {
	m.PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

// SetGraph records the final graph size
func (m *Metrics) SetGraph(persons, groups, edges int) {
	m.Persons.Set(float64(persons))
	m.Groups.Set(float64(groups))
	m.Edges.Set(float64(edges))
}

// Gatherer exposes the private registry
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format,
// for pickup by a node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.WrapStreamIO(err, path)
	}
	return nil
}
