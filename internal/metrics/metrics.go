// Package metrics exposes the solver's own search counters as Prometheus
// collectors. It only registers them against a registry; nothing in this
// repo starts an HTTP listener to serve them (the Non-goals explicitly
// exclude a server), so this package's sole purpose is to keep the
// dependency exercised by a real, observable metric surface rather than
// left unwired.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cnfsolve/cdcl/internal/sat"
)

// Collector snapshots a *sat.Solver's counters on every Collect call,
// matching the push-on-scrape model Prometheus client collectors use.
type Collector struct {
	solver *sat.Solver

	conflicts *prometheus.Desc
	restarts  *prometheus.Desc
	decisions *prometheus.Desc
	lemmas    *prometheus.Desc
}

// NewCollector returns a Collector reading s's counters. s must outlive the
// Collector.
func NewCollector(s *sat.Solver) *Collector {
	return &Collector{
		solver: s,
		conflicts: prometheus.NewDesc(
			"cdcl_conflicts_total", "Total conflicts encountered during search.", nil, nil),
		restarts: prometheus.NewDesc(
			"cdcl_restarts_total", "Total restarts triggered by the LBD EMA heuristic.", nil, nil),
		decisions: prometheus.NewDesc(
			"cdcl_decisions_total", "Total branching decisions made during search.", nil, nil),
		lemmas: prometheus.NewDesc(
			"cdcl_lemmas", "Current number of learnt clauses retained in the arena.", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.conflicts
	ch <- c.restarts
	ch <- c.decisions
	ch <- c.lemmas
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.conflicts, prometheus.CounterValue, float64(c.solver.TotalConflicts))
	ch <- prometheus.MustNewConstMetric(c.restarts, prometheus.CounterValue, float64(c.solver.TotalRestarts))
	ch <- prometheus.MustNewConstMetric(c.decisions, prometheus.CounterValue, float64(c.solver.TotalDecisions))
	ch <- prometheus.MustNewConstMetric(c.lemmas, prometheus.GaugeValue, float64(c.solver.NumLemmas()))
}

// Register registers a Collector for s against reg, returning the
// Collector so the caller can also read counters directly without
// involving Prometheus (e.g. for the CLI's own stderr summary).
func Register(reg *prometheus.Registry, s *sat.Solver) (*Collector, error) {
	c := NewCollector(s)
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}
