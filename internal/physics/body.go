package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// Body is a circular mass point. Mass is always Radius².
type Body struct {
	ID         uint64
	Pos        dynamo.Vec2
	Vel        dynamo.Vec2
	Radius     float64
	Mass       float64
	Color      dynamo.RGB
	Special    bool
	MergeCount uint32
	Dragged    bool
	// Floored is set when the last Integrate clamped the body to the floor.
	Floored bool

	lastPointer dynamo.Vec2
	hasPointer  bool
}

// NewBody creates a resting, non-special body. It panics on a non-positive
// radius; callers that take radii from input should use SetRadius instead.
func NewBody(id uint64, pos dynamo.Vec2, radius float64) *Body {
	b := &Body{ID: id, Pos: pos}
	if err := b.SetRadius(radius); err != nil {
		panic(err)
	}
	return b
}

// NewBall creates a body the way the sandbox spawns them: random radius,
// random colour, a small sideways velocity and a chance of being special.
func NewBall(id uint64, pos dynamo.Vec2, rng *rand.Rand, t Tuning) *Body {
	radius := t.MinRadius
	if t.MaxRadius > t.MinRadius {
		radius += rng.Intn(t.MaxRadius - t.MinRadius + 1)
	}
	if radius < 1 {
		radius = 1
	}
	b := NewBody(id, pos, float64(radius))
	b.Color = dynamo.RGB{
		R: uint8(50 + rng.Intn(206)),
		G: uint8(50 + rng.Intn(206)),
		B: uint8(50 + rng.Intn(206)),
	}
	b.Vel.X = (rng.Float64()*2 - 1) * t.MaxSpawnSpeed
	if rng.Float64() < t.SpecialChance {
		b.Special = true
		b.Color = Gold
	}
	return b
}

// SetRadius changes the radius and recomputes the mass.
func (b *Body) SetRadius(r float64) error {
	if !(r > 0) || math.IsInf(r, 0) {
		return fmt.Errorf("radius %v: %w", r, dynamo.ErrInvalidBody)
	}
	b.Radius = r
	b.Mass = r * r
	return nil
}

// Validate reports whether the body satisfies its invariants.
func (b *Body) Validate() error {
	if b == nil {
		return dynamo.ErrInvalidBody
	}
	if !(b.Radius > 0) || math.IsInf(b.Radius, 0) {
		return fmt.Errorf("body %d radius %v: %w", b.ID, b.Radius, dynamo.ErrInvalidBody)
	}
	if !b.Pos.IsFinite() || !b.Vel.IsFinite() {
		return fmt.Errorf("body %d: %w", b.ID, dynamo.ErrNonFinite)
	}
	return nil
}

// Contains reports whether p lies inside or on the body's circle.
func (b *Body) Contains(p dynamo.Vec2) bool {
	return b.Pos.DistSq(p) <= b.Radius*b.Radius
}

// Integrate advances one frame. Dragged bodies are left untouched. On a
// non-finite result the body keeps its previous state and ErrNonFinite is
// returned.
func (b *Body) Integrate(cfg dynamo.FrameConfig, t Tuning) error {
	if b.Dragged {
		b.Floored = false
		return nil
	}
	ts := cfg.TimeScale
	w, h := cfg.Bounds.Width, cfg.Bounds.Height
	r := b.Radius

	v := b.Vel
	v.Y += t.Gravity * cfg.GravityScale * ts
	v = v.Scale(t.Damping).Clamp(t.MaxSpeed)
	if math.Abs(v.X) < t.MinSpeed {
		v.X = 0
	}
	// only snap vertical speed when resting on the floor, or airborne
	// bodies would hang at the apex
	if math.Abs(v.Y) < t.MinSpeed && math.Abs(b.Pos.Y+r-h) < t.RestTolerance {
		v.Y = 0
	}

	p := b.Pos.Add(v.Scale(ts))

	floored := false
	if p.Y+r > h {
		floored = true
		p.Y = h - r
		v.Y = -v.Y * t.WallBounce
		v.X *= t.FloorFriction
	}
	if p.X-r < 0 {
		p.X = r
		v.X = -v.X * t.WallBounce
	} else if p.X+r > w {
		p.X = w - r
		v.X = -v.X * t.WallBounce
	}

	if !p.IsFinite() || !v.IsFinite() {
		return fmt.Errorf("body %d integrate: %w", b.ID, dynamo.ErrNonFinite)
	}
	b.Pos, b.Vel = p, v
	b.Floored = floored
	return nil
}

func (b *Body) StartDrag(pointer dynamo.Vec2) {
	b.Dragged = true
	b.Vel = dynamo.Vec2{}
	b.lastPointer = pointer
	b.hasPointer = true
}

// UpdateDrag moves the body to the pointer and derives a flick velocity
// from the pointer delta since the previous update.
func (b *Body) UpdateDrag(pointer dynamo.Vec2, t Tuning) {
	if !b.Dragged {
		return
	}
	b.Pos = pointer
	if b.hasPointer {
		b.Vel = pointer.Sub(b.lastPointer).Scale(t.DragGain).Clamp(t.MaxSpeed)
	}
	b.lastPointer = pointer
	b.hasPointer = true
}

func (b *Body) EndDrag() {
	b.Dragged = false
	b.hasPointer = false
	b.lastPointer = dynamo.Vec2{}
}

// LastPointer returns the pointer position recorded by the last drag update.
func (b *Body) LastPointer() (dynamo.Vec2, bool) {
	return b.lastPointer, b.hasPointer
}

func (b *Body) View() dynamo.BodyView {
	return dynamo.BodyView{
		ID:      b.ID,
		Pos:     b.Pos,
		Vel:     b.Vel,
		Radius:  b.Radius,
		Mass:    b.Mass,
		Color:   b.Color,
		Special: b.Special,
		Dragged: b.Dragged,
	}
}
