package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// ShouldExplode reports whether a special body touches the floor, either
// because integration clamped it there or because a collision pushed it past.
func ShouldExplode(b *Body, bounds dynamo.Bounds) bool {
	return b != nil && b.Special && (b.Floored || b.Pos.Y+b.Radius > bounds.Height)
}

// Explode returns the fragments of a special parent. Each fragment sits at
// the parent's centre with half its radius and flies off at a random angle.
// nextID supplies fragment IDs. The parent itself is not modified.
func Explode(parent *Body, t Tuning, rng *rand.Rand, nextID func() uint64) ([]*Body, error) {
	if err := parent.Validate(); err != nil {
		return nil, err
	}
	if !parent.Special {
		return nil, nil
	}

	fragments := make([]*Body, 0, t.Fragments)
	for i := 0; i < t.Fragments; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := t.FragmentMinSpeed + rng.Float64()*(t.FragmentMaxSpeed-t.FragmentMinSpeed)
		sin, cos := math.Sincos(angle)

		f := &Body{ID: nextID(), Pos: parent.Pos, Color: Red}
		if err := f.SetRadius(parent.Radius * 0.5); err != nil {
			return nil, fmt.Errorf("fragment of %d: %w", parent.ID, err)
		}
		f.Vel = dynamo.Vec2{X: speed * cos, Y: speed * sin}
		fragments = append(fragments, f)
	}
	return fragments, nil
}
