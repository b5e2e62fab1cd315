package analysis

import (
	"math"

	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/physics"
)

// Lyapunov estimates the largest Lyapunov exponent from s0. A companion
// trajectory starts d0 away in angle0 and is pulled back to distance d0
// after every step; the exponent is the mean log growth per unit time.
func Lyapunov(c physics.Constants, s0 physics.State, dt, duration, d0 float64) float64 {
	if !(dt > 0) || !(duration > 0) || !(d0 > 0) {
		return 0
	}

	x := s0
	xp := s0
	xp.Angle0 += d0

	steps := int(duration / dt)
	sumLog := 0.0
	for i := 0; i < steps; i++ {
		x = physics.Step(c, x, dt)
		xp = physics.Step(c, xp, dt)

		base := physics.ToVector(x)
		diff := physics.ToVector(xp).Sub(base)
		sep := diff.Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)
		xp = physics.FromVector(base.Add(diff.Scale(d0 / sep)))
	}

	if steps == 0 {
		return 0
	}
	return sumLog / (float64(steps) * dt)
}

type SweepPoint struct {
	Param    float64
	Exponent float64
}

// Sweep computes the exponent for n values of param ("g", "m" or "l")
// spread evenly over [lo, hi], in parallel.
func Sweep(base physics.Constants, s0 physics.State, param string, lo, hi float64, n int, dt, duration float64) ([]SweepPoint, error) {
	if n < 2 {
		n = 2
	}
	points := make([]SweepPoint, n)
	errs := make([]error, n)
	step := (hi - lo) / float64(n-1)
	dynamo.ParallelFor(n, 1, func(start, end int) {
		for i := start; i < end; i++ {
			model := physics.NewDoublePendulum(base)
			v := lo + float64(i)*step
			if err := model.SetParam(param, v); err != nil {
				errs[i] = err
				continue
			}
			points[i] = SweepPoint{
				Param:    v,
				Exponent: Lyapunov(model.Constants, s0, dt, duration, 1e-8),
			}
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}
