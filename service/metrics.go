package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	registry *prometheus.Registry

	Tables       prometheus.Gauge
	Updates      *prometheus.CounterVec
	FullReloads  *prometheus.CounterVec
	RowsMeasured *prometheus.CounterVec
	Evictions    *prometheus.CounterVec
}

// NewMetrics registers the table counters on a private registry so several
// services can live in one process.
func NewMetrics() *Metrics {
	r := prometheus.NewRegistry()
	factory := promauto.With(r)

	return &Metrics{
		registry: r,
		Tables: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "virtualtable",
			Name:      "tables",
			Help:      "Number of hosted tables",
		}),
		Updates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "virtualtable",
			Subsystem: "table",
			Name:      "updates_total",
			Help:      "Total number of applied updates",
		}, []string{"table"}),
		FullReloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "virtualtable",
			Subsystem: "table",
			Name:      "full_reloads_total",
			Help:      "Updates applied as a full reload",
		}, []string{"table"}),
		RowsMeasured: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "virtualtable",
			Subsystem: "table",
			Name:      "rows_measured_total",
			Help:      "Calls to the row measurer",
		}, []string{"table"}),
		Evictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "virtualtable",
			Subsystem: "table",
			Name:      "rows_evicted_total",
			Help:      "Measured rows sent back to the estimated height",
		}, []string{"table"}),
	}
}

func (m *Metrics) forget(table string) {
	m.Updates.DeleteLabelValues(table)
	m.FullReloads.DeleteLabelValues(table)
	m.RowsMeasured.DeleteLabelValues(table)
	m.Evictions.DeleteLabelValues(table)
}
