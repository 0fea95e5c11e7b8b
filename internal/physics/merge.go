package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func (b *Body) atRest(t Tuning) bool {
	return math.Abs(b.Vel.X) < t.MergeRestSpeed && math.Abs(b.Vel.Y) < t.MergeRestSpeed
}

// CanMerge reports whether two distinct bodies are both nearly at rest and
// overlap by more than half their combined radius.
func CanMerge(a, b *Body, t Tuning) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	if !a.atRest(t) || !b.atRest(t) {
		return false
	}
	limit := (a.Radius + b.Radius) * t.MergeOverlap
	return a.Pos.DistSq(b.Pos) < limit*limit
}

// MergedRadius is the radius that conserves r³ across a merge.
func MergedRadius(ra, rb float64) float64 {
	return math.Cbrt(ra*ra*ra + rb*rb*rb)
}

// Absorb grows survivor by absorbed's volume and lightens its colour.
// The caller removes absorbed from the population.
func Absorb(survivor, absorbed *Body, t Tuning) error {
	if survivor == nil || absorbed == nil || survivor == absorbed {
		return dynamo.ErrInvalidBody
	}
	if err := survivor.SetRadius(MergedRadius(survivor.Radius, absorbed.Radius)); err != nil {
		return fmt.Errorf("merge %d<-%d: %w", survivor.ID, absorbed.ID, err)
	}
	survivor.MergeCount += absorbed.MergeCount + 1
	survivor.Color = survivor.Color.Lighten(t.MergeLighten)
	return nil
}
