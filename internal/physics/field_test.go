package physics

import (
	"math"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func TestFieldImpulse(t *testing.T) {
	focus := dynamo.Vec2{X: 100, Y: 100}

	tests := []struct {
		name    string
		pos     dynamo.Vec2
		radius  float64
		pushing bool
		want    dynamo.Vec2
	}{
		{"push at 10px", dynamo.Vec2{X: 110, Y: 100}, 40, true, dynamo.Vec2{X: 4}},
		{"pull at 10px", dynamo.Vec2{X: 110, Y: 100}, 40, false, dynamo.Vec2{X: -4}},
		{"capped close in", dynamo.Vec2{X: 100, Y: 102}, 40, true, dynamo.Vec2{Y: 8}},
		{"floored far away", dynamo.Vec2{X: 1100, Y: 100}, 40, true, dynamo.Vec2{X: 0.5}},
		{"pull floored far away", dynamo.Vec2{X: 100, Y: 1100}, 40, false, dynamo.Vec2{Y: -0.5}},
		{"small body boosted", dynamo.Vec2{X: 110, Y: 100}, 10, true, dynamo.Vec2{X: 8}},
		{"on the focus", dynamo.Vec2{X: 100, Y: 100}, 40, true, dynamo.Vec2{X: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(1, tt.pos, tt.radius)
			got := FieldImpulse(b, focus, tt.pushing, DefaultTuning())
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("FieldImpulse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyFieldSkipsDragged(t *testing.T) {
	free := NewBody(1, dynamo.Vec2{X: 110, Y: 100}, 40)
	held := NewBody(2, dynamo.Vec2{X: 90, Y: 100}, 40)
	held.StartDrag(held.Pos)

	ApplyField([]*Body{free, nil, held}, dynamo.Vec2{X: 100, Y: 100}, true, DefaultTuning())

	if math.Abs(free.Vel.X-4) > 1e-9 {
		t.Errorf("expected free body pushed to vx=4, got %f", free.Vel.X)
	}
	if held.Vel != (dynamo.Vec2{}) {
		t.Errorf("dragged body should be ignored, got %v", held.Vel)
	}
}
