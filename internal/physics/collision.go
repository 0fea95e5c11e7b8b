package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// minInvMassSum floors the impulse denominator.
const minInvMassSum = 1e-9

// Contact describes what Collide did to a pair.
type Contact struct {
	Overlap    bool
	Coincident bool
	Separating bool
	Normal     dynamo.Vec2
	Impulse    float64
	Correction float64
}

// Collide resolves one pair: impulse along the contact normal with
// restitution, then a soft positional push for penetration beyond the slop.
// The normal points from b to a. Neither body is modified when an error is
// returned.
func Collide(a, b *Body, t Tuning, rng *rand.Rand) (Contact, error) {
	var c Contact
	if a == nil || b == nil {
		return c, dynamo.ErrInvalidBody
	}
	if a == b {
		return c, fmt.Errorf("body %d collides with itself: %w", a.ID, dynamo.ErrInvalidBody)
	}

	d := a.Pos.Sub(b.Pos)
	distSq := d.LenSq()
	minDist := a.Radius + b.Radius
	if distSq >= minDist*minDist {
		return c, nil
	}
	c.Overlap = true

	dist := math.Sqrt(distSq)
	if dist < t.CoincidentDist {
		// coincident centres have no normal; nudge and let the next pass resolve
		c.Coincident = true
		a.Pos.X += (rng.Float64()*2 - 1) * t.Jitter
		a.Pos.Y += (rng.Float64()*2 - 1) * t.Jitter
		return c, nil
	}

	n := d.Scale(1 / dist)
	c.Normal = n

	relVn := a.Vel.Sub(b.Vel).Dot(n)
	if relVn > 0 {
		c.Separating = true
		return c, nil
	}

	invSum := math.Max(1/a.Mass+1/b.Mass, minInvMassSum)
	j := -(1 + t.Restitution) * relVn / invSum
	if math.Abs(j) < t.MinImpulse {
		return c, nil
	}

	va := a.Vel.Add(n.Scale(j / a.Mass)).Clamp(t.MaxSpeed)
	vb := b.Vel.Sub(n.Scale(j / b.Mass)).Clamp(t.MaxSpeed)

	pa, pb := a.Pos, b.Pos
	penetration := minDist - dist
	if penetration > t.Slop {
		corr := (penetration - t.Slop) / dist * t.CorrectionPercent
		total := a.Mass + b.Mass
		pa = pa.Add(n.Scale(corr * b.Mass / total))
		pb = pb.Sub(n.Scale(corr * a.Mass / total))
		c.Correction = corr
	}

	if !va.IsFinite() || !vb.IsFinite() || !pa.IsFinite() || !pb.IsFinite() {
		return Contact{}, fmt.Errorf("bodies %d,%d collide: %w", a.ID, b.ID, dynamo.ErrNonFinite)
	}
	a.Vel, b.Vel = va, vb
	a.Pos, b.Pos = pa, pb
	c.Impulse = j
	return c, nil
}

// RelaxationPasses returns how many collision sweeps to run for a population.
func RelaxationPasses(population int) int {
	if population < 100 {
		return 3
	}
	return 1
}
