package metrics

import (
	"math"

	"github.com/san-kum/dblpend/internal/dynamo"
)

// MeanEnergy averages the Hamiltonian over every observed state.
type MeanEnergy struct {
	name        string
	samples     int
	totalEnergy float64
	dyn         dynamo.Hamiltonian
}

func NewMeanEnergy(dyn dynamo.Hamiltonian) *MeanEnergy {
	return &MeanEnergy{
		name: "energy",
		dyn:  dyn,
	}
}

func (e *MeanEnergy) Name() string { return e.name }

func (e *MeanEnergy) Observe(x dynamo.Vector, u dynamo.Control, t float64) {
	e.totalEnergy += e.dyn.Energy(x)
	e.samples++
}

func (e *MeanEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *MeanEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative departure from the energy of the
// first observed state.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	dyn           dynamo.Hamiltonian
}

func NewEnergyDrift(dyn dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.Vector, u dynamo.Control, t float64) {
	energy := e.dyn.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
