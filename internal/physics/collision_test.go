package physics

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func TestCollideHeadOn(t *testing.T) {
	a := NewBody(1, dynamo.Vec2{X: 100, Y: 100}, 20)
	b := NewBody(2, dynamo.Vec2{X: 130, Y: 100}, 20)
	a.Vel = dynamo.Vec2{X: 5}

	c, err := Collide(a, b, DefaultTuning(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("collide failed: %v", err)
	}
	if !c.Overlap || c.Separating {
		t.Fatalf("unexpected contact %+v", c)
	}

	// v1' = (1-e)/2·u, v2' = (1+e)/2·u for equal masses
	if !near(a.Vel.X, 0.5) || !near(b.Vel.X, 4.5) {
		t.Errorf("expected velocities 0.5 and 4.5, got %f and %f", a.Vel.X, b.Vel.X)
	}
	if a.Vel.Y != 0 || b.Vel.Y != 0 {
		t.Errorf("head-on collision produced vertical speed: %v %v", a.Vel, b.Vel)
	}

	corr := (10 - 0.01) / 30 * 0.8
	if !near(a.Pos.X, 100-corr/2) || !near(b.Pos.X, 130+corr/2) {
		t.Errorf("expected symmetric correction %f, got a=%f b=%f", corr/2, a.Pos.X, b.Pos.X)
	}
}

func TestCollideOpposingEqualSpeeds(t *testing.T) {
	a := NewBody(1, dynamo.Vec2{X: 100, Y: 100}, 20)
	b := NewBody(2, dynamo.Vec2{X: 130, Y: 100}, 20)
	a.Vel = dynamo.Vec2{X: 5}
	b.Vel = dynamo.Vec2{X: -5}

	if _, err := Collide(a, b, DefaultTuning(), rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("collide failed: %v", err)
	}
	if !near(a.Vel.X, -4) || !near(b.Vel.X, 4) {
		t.Errorf("expected rebound speeds of 4, got %f and %f", a.Vel.X, b.Vel.X)
	}
}

func TestCollideSkips(t *testing.T) {
	tu := DefaultTuning()
	rng := rand.New(rand.NewSource(1))

	apart := NewBody(1, dynamo.Vec2{X: 0, Y: 0}, 10)
	other := NewBody(2, dynamo.Vec2{X: 25, Y: 0}, 10)
	c, err := Collide(apart, other, tu, rng)
	if err != nil || c.Overlap {
		t.Errorf("non-overlapping pair: contact=%+v err=%v", c, err)
	}

	a := NewBody(3, dynamo.Vec2{X: 0, Y: 0}, 10)
	b := NewBody(4, dynamo.Vec2{X: 15, Y: 0}, 10)
	a.Vel = dynamo.Vec2{X: -2}
	c, err = Collide(a, b, tu, rng)
	if err != nil || !c.Separating {
		t.Errorf("separating pair: contact=%+v err=%v", c, err)
	}
	if a.Vel.X != -2 || a.Pos.X != 0 || b.Pos.X != 15 {
		t.Error("separating pair must not be modified")
	}

	resting := NewBody(5, dynamo.Vec2{X: 0, Y: 0}, 10)
	touching := NewBody(6, dynamo.Vec2{X: 15, Y: 0}, 10)
	c, err = Collide(resting, touching, tu, rng)
	if err != nil || c.Impulse != 0 || c.Correction != 0 {
		t.Errorf("negligible impulse should skip the pair: contact=%+v err=%v", c, err)
	}
}

func TestCollideCoincident(t *testing.T) {
	a := NewBody(1, dynamo.Vec2{X: 50, Y: 50}, 10)
	b := NewBody(2, dynamo.Vec2{X: 50, Y: 50}, 10)

	c, err := Collide(a, b, DefaultTuning(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("collide failed: %v", err)
	}
	if !c.Coincident {
		t.Fatal("expected coincident contact")
	}
	if math.Abs(a.Pos.X-50) > 0.1 || math.Abs(a.Pos.Y-50) > 0.1 {
		t.Errorf("jitter exceeded 0.1: %v", a.Pos)
	}
	if b.Pos != (dynamo.Vec2{X: 50, Y: 50}) {
		t.Errorf("only the first body is nudged, got %v", b.Pos)
	}
	if a.Vel != (dynamo.Vec2{}) || b.Vel != (dynamo.Vec2{}) {
		t.Error("coincident contact must not apply an impulse")
	}
}

func TestCollideHeavierMovesLess(t *testing.T) {
	heavy := NewBody(1, dynamo.Vec2{X: 100, Y: 100}, 30)
	light := NewBody(2, dynamo.Vec2{X: 130, Y: 100}, 10)
	heavy.Vel = dynamo.Vec2{X: 2}

	if _, err := Collide(heavy, light, DefaultTuning(), rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("collide failed: %v", err)
	}
	if math.Abs(heavy.Pos.X-100) >= math.Abs(light.Pos.X-130) {
		t.Errorf("heavy body moved %f, light body moved %f", heavy.Pos.X-100, light.Pos.X-130)
	}
}

func TestCollideInvalid(t *testing.T) {
	a := NewBody(1, dynamo.Vec2{}, 10)
	rng := rand.New(rand.NewSource(1))

	if _, err := Collide(a, nil, DefaultTuning(), rng); !errors.Is(err, dynamo.ErrInvalidBody) {
		t.Errorf("expected ErrInvalidBody for nil, got %v", err)
	}
	if _, err := Collide(a, a, DefaultTuning(), rng); !errors.Is(err, dynamo.ErrInvalidBody) {
		t.Errorf("expected ErrInvalidBody for self pair, got %v", err)
	}
}

func TestCollideNonFiniteLeavesPair(t *testing.T) {
	a := NewBody(1, dynamo.Vec2{X: 100, Y: 100}, 20)
	b := NewBody(2, dynamo.Vec2{X: 130, Y: 100}, 20)
	a.Vel = dynamo.Vec2{X: math.Inf(1)}
	b.Vel = dynamo.Vec2{Y: 1}

	_, err := Collide(a, b, DefaultTuning(), rand.New(rand.NewSource(1)))
	if !errors.Is(err, dynamo.ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}
	if b.Vel != (dynamo.Vec2{Y: 1}) || b.Pos != (dynamo.Vec2{X: 130, Y: 100}) {
		t.Errorf("failed collision must not modify the pair, got %v %v", b.Vel, b.Pos)
	}
}

func TestRelaxationPasses(t *testing.T) {
	tests := []struct {
		population int
		want       int
	}{
		{0, 3},
		{99, 3},
		{100, 1},
		{200, 1},
	}

	for _, tt := range tests {
		if got := RelaxationPasses(tt.population); got != tt.want {
			t.Errorf("RelaxationPasses(%d) = %d, want %d", tt.population, got, tt.want)
		}
	}
}
