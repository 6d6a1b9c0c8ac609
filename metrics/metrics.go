// Package metrics exports the CDCL engine's search statistics as
// Prometheus collectors (spec.md §9 supplement, C9): a thin read-through
// wrapper, since cdcl.Stats is a plain counters struct the engine updates
// in its own hot loop and metrics must never be on that path itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/coresat/cdclt/cdcl"
)

// StatsSource is anything that can report a live snapshot of search
// counters; *solver.Solver satisfies it through its SolverStats method.
type StatsSource interface {
	SolverStats() cdcl.Stats
}

// Collector adapts a StatsSource to prometheus.Collector, polling the
// source's counters on every scrape rather than pushing on every update
// (the engine's hot loop never touches Prometheus).
type Collector struct {
	source StatsSource

	conflicts    *prometheus.Desc
	decisions    *prometheus.Desc
	propagations *prometheus.Desc
	restarts     *prometheus.Desc
}

// NewCollector returns a Collector over source, with metric names
// namespaced under cdclt_solver.
func NewCollector(source StatsSource) *Collector {
	ns := "cdclt_solver"
	return &Collector{
		source:       source,
		conflicts:    prometheus.NewDesc(ns+"_conflicts_total", "Total CDCL conflicts encountered.", nil, nil),
		decisions:    prometheus.NewDesc(ns+"_decisions_total", "Total branching decisions made.", nil, nil),
		propagations: prometheus.NewDesc(ns+"_propagations_total", "Total unit propagations performed.", nil, nil),
		restarts:     prometheus.NewDesc(ns+"_restarts_total", "Total restarts triggered.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.conflicts
	ch <- c.decisions
	ch <- c.propagations
	ch <- c.restarts
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.SolverStats()
	ch <- prometheus.MustNewConstMetric(c.conflicts, prometheus.CounterValue, float64(stats.Conflicts))
	ch <- prometheus.MustNewConstMetric(c.decisions, prometheus.CounterValue, float64(stats.Decisions))
	ch <- prometheus.MustNewConstMetric(c.propagations, prometheus.CounterValue, float64(stats.Propagations))
	ch <- prometheus.MustNewConstMetric(c.restarts, prometheus.CounterValue, float64(stats.Restarts))
}
