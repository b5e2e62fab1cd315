package experiment

import (
	"math"

	"github.com/san-kum/dblpend/internal/dynamo"
)

// progressInterval is the simulated time between progress records.
const progressInterval = 1.0

// progress logs the state at debug level once per progressInterval of
// simulated time.
type progress struct {
	next    float64
	reports int
}

var _ dynamo.Observer = (*progress)(nil)

func (p *progress) OnStep(x dynamo.Vector, u dynamo.Control, t float64) {
	if t < p.next {
		return
	}
	p.reports++
	p.next = (math.Floor(t/progressInterval) + 1) * progressInterval
	dynamo.Logger().Debug("progress", "t", t, "state", x)
}
