package physics

import (
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// FieldImpulse returns the velocity change the force field applies to b.
// The magnitude is strength/(0.1·d), floored at FieldMin and capped at
// FieldMax, with d floored at 1. Smaller bodies get a sqrt(ref/r) boost.
func FieldImpulse(b *Body, focus dynamo.Vec2, pushing bool, t Tuning) dynamo.Vec2 {
	d := b.Pos.Sub(focus)
	dist := math.Max(d.Len(), 1)

	force := t.FieldStrength / (dist * 0.1)
	force = math.Min(math.Max(force, t.FieldMin), t.FieldMax)
	if !pushing {
		force = -force
	}

	angle := math.Atan2(d.Y, d.X)
	sin, cos := math.Sincos(angle)
	massFactor := math.Sqrt(t.FieldRefRadius / b.Radius)
	return dynamo.Vec2{X: force * cos * massFactor, Y: force * sin * massFactor}
}

// ApplyField pushes (or pulls) every body away from (or toward) focus.
// Dragged bodies are skipped since their velocity is owned by the pointer.
func ApplyField(bodies []*Body, focus dynamo.Vec2, pushing bool, t Tuning) {
	for _, b := range bodies {
		if b == nil || b.Dragged {
			continue
		}
		b.Vel = b.Vel.Add(FieldImpulse(b, focus, pushing, t)).Clamp(t.MaxSpeed)
	}
}
