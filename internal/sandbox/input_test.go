package sandbox

import (
	"math"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func TestFrameInputMapsSliders(t *testing.T) {
	tests := []struct {
		name        string
		time, grav  float64
		wantTS      float64
		wantGravity float64
	}{
		{"low", 0, 0, 0.1, 0},
		{"high", 1, 1, 2.0, 5.0},
		{"mid", 0.5, 0.5, 1.05, 2.5},
		{"clamped", -3, 7, 0.1, 5.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FrameInput{TimeSlider: tt.time, GravitySlider: tt.grav, Bounds: dynamo.Bounds{Width: 10, Height: 10}}.FrameConfig()
			if math.Abs(cfg.TimeScale-tt.wantTS) > 1e-12 {
				t.Errorf("expected time scale %f, got %f", tt.wantTS, cfg.TimeScale)
			}
			if math.Abs(cfg.GravityScale-tt.wantGravity) > 1e-12 {
				t.Errorf("expected gravity scale %f, got %f", tt.wantGravity, cfg.GravityScale)
			}
		})
	}
}

func TestInputForRoundTrips(t *testing.T) {
	want := dynamo.FrameConfig{TimeScale: 1, GravityScale: 1, Bounds: dynamo.Bounds{Width: 800, Height: 600}}
	got := InputFor(want).FrameConfig()
	if math.Abs(got.TimeScale-1) > 1e-12 || math.Abs(got.GravityScale-1) > 1e-12 {
		t.Errorf("expected scales 1/1, got %f/%f", got.TimeScale, got.GravityScale)
	}
	if got.Bounds != want.Bounds {
		t.Errorf("expected bounds %v, got %v", want.Bounds, got.Bounds)
	}
}

func TestDegenerateBoundsClamp(t *testing.T) {
	cfg := FrameInput{Bounds: dynamo.Bounds{Width: 0, Height: -5}}.FrameConfig()
	if cfg.Bounds.Width != 1 || cfg.Bounds.Height != 1 {
		t.Errorf("expected 1x1 bounds, got %v", cfg.Bounds)
	}
}

func TestEventStrings(t *testing.T) {
	if Press.String() != "press" || Release.String() != "release" || Move.String() != "move" {
		t.Error("unexpected event kind names")
	}
	if Left.String() != "left" || Right.String() != "right" || NoButton.String() != "none" {
		t.Error("unexpected button names")
	}
}
