package experiment

import (
	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/integrators"
	"github.com/san-kum/dblpend/internal/metrics"
	"github.com/san-kum/dblpend/internal/sim"
)

// Integrator resolves a configured integrator name. "rk4" maps to nil,
// which keeps the pendulum on its built-in allocation-free step; other
// names come from the integrators registry.
func Integrator(name string) (dynamo.Integrator, error) {
	if name == "rk4" {
		return nil, nil
	}
	return integrators.New(name)
}

func DefaultMetrics(p *sim.Pendulum) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewMeanEnergy(p.Model()),
		metrics.NewEnergyDrift(p.Model()),
	}
}
