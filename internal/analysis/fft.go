package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the transform
// of data after removing its mean and zero padding it to a power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	n := 1
	for n < len(data) {
		n <<= 1
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	buf := make([]complex128, n)
	for i, v := range data {
		buf[i] = complex(v-mean, 0)
	}

	spectrum := fft.FFT(buf)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest
// non-constant component of samples taken every dt seconds.
func DominantFrequency(samples []float64, dt float64) float64 {
	ps := PowerSpectrum(samples)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(best) / (float64(2*len(ps)) * dt)
}
