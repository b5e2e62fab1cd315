package metrics

import (
	"math"

	"github.com/san-kum/dblpend/internal/dynamo"
)

// Flips counts how often the lower rod swings over the top, i.e. how often
// angle1 crosses an odd multiple of π.
type Flips struct {
	name    string
	index   int
	sector  float64
	flips   int
	first   float64
	samples int
}

// NewFlips watches the angle stored at index in the observed vectors.
func NewFlips(index int) *Flips {
	return &Flips{
		name:  "flips",
		index: index,
		first: -1,
	}
}

func (f *Flips) Name() string { return f.name }

func (f *Flips) Observe(x dynamo.Vector, u dynamo.Control, t float64) {
	if f.index >= len(x) {
		return
	}
	if a := x[f.index]; math.IsNaN(a) || math.IsInf(a, 0) {
		return
	}
	sector := math.Floor((x[f.index] - math.Pi) / (2 * math.Pi))
	if f.samples > 0 && sector != f.sector {
		f.flips += int(math.Abs(sector - f.sector))
		if f.first < 0 {
			f.first = t
		}
	}
	f.sector = sector
	f.samples++
}

func (f *Flips) Value() float64 {
	return float64(f.flips)
}

// FirstFlip returns the time of the first flip, or -1 if none happened.
func (f *Flips) FirstFlip() float64 {
	return f.first
}

func (f *Flips) Reset() {
	f.sector = 0
	f.flips = 0
	f.first = -1
	f.samples = 0
}
