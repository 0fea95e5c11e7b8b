package metrics

import (
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// TotalKinetic returns Σ½mv² over the frame's bodies.
func TotalKinetic(f *dynamo.Frame) float64 {
	e := 0.0
	for _, b := range f.Bodies {
		e += 0.5 * b.Mass * b.Vel.LenSq()
	}
	return e
}

// Momentum returns the magnitude of Σmv.
func Momentum(f *dynamo.Frame) float64 {
	var p dynamo.Vec2
	for _, b := range f.Bodies {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p.Len()
}

// KineticEnergy is the mean total kinetic energy per frame.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f *dynamo.Frame) {
	e.total += TotalKinetic(f)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// PeakEnergy tracks the largest total kinetic energy seen in any frame.
type PeakEnergy struct {
	name string
	peak float64
}

func NewPeakEnergy() *PeakEnergy {
	return &PeakEnergy{name: "peak_energy"}
}

func (e *PeakEnergy) Name() string { return e.name }

func (e *PeakEnergy) Observe(f *dynamo.Frame) {
	e.peak = math.Max(e.peak, TotalKinetic(f))
}

func (e *PeakEnergy) Value() float64 { return e.peak }
func (e *PeakEnergy) Reset()         { e.peak = 0 }
