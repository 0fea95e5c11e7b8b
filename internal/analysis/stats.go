package analysis

import "math"

type Stats struct {
	N    int
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	Last float64
}

func Describe(data []float64) Stats {
	s := Stats{N: len(data)}
	if s.N == 0 {
		return s
	}
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	for _, v := range data {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		s.Mean += v
	}
	s.Mean /= float64(s.N)
	for _, v := range data {
		d := v - s.Mean
		s.Std += d * d
	}
	s.Std = math.Sqrt(s.Std / float64(s.N))
	s.Last = data[s.N-1]
	return s
}

// MovingAverage smooths data with a trailing window of the given width.
func MovingAverage(data []float64, width int) []float64 {
	if width <= 1 {
		return append([]float64(nil), data...)
	}
	out := make([]float64, len(data))
	sum := 0.0
	for i, v := range data {
		sum += v
		if i >= width {
			sum -= data[i-width]
		}
		out[i] = sum / float64(min(i+1, width))
	}
	return out
}
