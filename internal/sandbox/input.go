package sandbox

import (
	"time"

	"github.com/san-kum/ballpit/internal/dynamo"
)

type EventKind int

const (
	Press EventKind = iota
	Release
	Move
)

func (k EventKind) String() string {
	switch k {
	case Press:
		return "press"
	case Release:
		return "release"
	case Move:
		return "move"
	}
	return "unknown"
}

type Button int

const (
	NoButton Button = iota
	Left
	Right
)

func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// PointerEvent is one mouse event. At is a monotonic timestamp used for
// double-click detection.
type PointerEvent struct {
	Kind   EventKind
	Button Button
	Pos    dynamo.Vec2
	At     time.Duration
}

func PressAt(b Button, x, y float64, at time.Duration) PointerEvent {
	return PointerEvent{Kind: Press, Button: b, Pos: dynamo.Vec2{X: x, Y: y}, At: at}
}

func ReleaseAt(b Button, x, y float64, at time.Duration) PointerEvent {
	return PointerEvent{Kind: Release, Button: b, Pos: dynamo.Vec2{X: x, Y: y}, At: at}
}

func MoveTo(x, y float64, at time.Duration) PointerEvent {
	return PointerEvent{Kind: Move, Pos: dynamo.Vec2{X: x, Y: y}, At: at}
}

// FrameInput is everything the outside world hands the sandbox for one
// frame. Sliders are positions in [0,1]; out-of-range values are clamped.
type FrameInput struct {
	Events        []PointerEvent
	TimeSlider    float64
	GravitySlider float64
	Bounds        dynamo.Bounds
}

// InputFor returns an input with no pointer events whose sliders reproduce
// the scales in cfg.
func InputFor(cfg dynamo.FrameConfig) FrameInput {
	return FrameInput{
		TimeSlider:    dynamo.SliderFromTimeScale(cfg.TimeScale),
		GravitySlider: dynamo.SliderFromGravityScale(cfg.GravityScale),
		Bounds:        cfg.Bounds,
	}
}

// FrameConfig maps the slider positions and bounds to a normalized config.
func (in FrameInput) FrameConfig() dynamo.FrameConfig {
	return dynamo.FrameConfig{
		TimeScale:    dynamo.TimeScaleFromSlider(in.TimeSlider),
		GravityScale: dynamo.GravityScaleFromSlider(in.GravitySlider),
		Bounds:       in.Bounds,
	}.Normalized()
}
