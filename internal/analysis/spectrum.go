package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// PowerSpectrum returns |X_k|²/n for k in [0, n/2] of the mean-removed,
// Hann-windowed series. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range data {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	spectrum := fft.FFTReal(x)
	ps := make([]float64, n/2+1)
	for i := range ps {
		a := cmplx.Abs(spectrum[i])
		ps[i] = a * a / float64(n)
	}
	return ps
}

// Frequencies returns the frequency of each PowerSpectrum bin for a series
// of n samples taken at sampleRate.
func Frequencies(n int, sampleRate float64) []float64 {
	if n < 2 {
		return nil
	}
	fs := make([]float64, n/2+1)
	for i := range fs {
		fs[i] = float64(i) * sampleRate / float64(n)
	}
	return fs
}

// DominantFrequency returns the frequency and power of the strongest bin,
// ignoring the DC bin. A flat series returns zeros.
func DominantFrequency(data []float64, sampleRate float64) (freq, power float64) {
	ps := PowerSpectrum(data)
	best := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > power {
			best, power = i, ps[i]
		}
	}
	if best == 0 {
		return 0, 0
	}
	return float64(best) * sampleRate / float64(len(data)), power
}
