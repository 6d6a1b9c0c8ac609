package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/coresat/cdclt/cdcl"
)

type stubSource struct{ stats cdcl.Stats }

func (s stubSource) SolverStats() cdcl.Stats { return s.stats }

func TestCollectorReportsLiveCounters(t *testing.T) {
	src := stubSource{stats: cdcl.Stats{Conflicts: 3, Decisions: 7, Propagations: 21, Restarts: 1}}
	c := NewCollector(src)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)

	found := make(map[string]float64)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			found[f.GetName()] = m.GetCounter().GetValue()
		}
	}
	require.Equal(t, float64(3), found["cdclt_solver_conflicts_total"])
	require.Equal(t, float64(7), found["cdclt_solver_decisions_total"])
	require.Equal(t, float64(21), found["cdclt_solver_propagations_total"])
	require.Equal(t, float64(1), found["cdclt_solver_restarts_total"])
}
