// Package widget holds the window-independent parts of the raylib front
// end: edge detection on mouse buttons and horizontal sliders.
package widget

import (
	"time"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/sandbox"
)

// Buttons is the held state of the mouse buttons in one frame.
type Buttons struct {
	Left, Right bool
}

// Tracker turns polled mouse state into pointer events. A press that lands
// on the control panel is captured: neither it nor its release reach the
// world.
type Tracker struct {
	prev     Buttons
	last     dynamo.Vec2
	seen     bool
	captured [2]bool
}

func (t *Tracker) Poll(pos dynamo.Vec2, now Buttons, at time.Duration, overUI bool) []sandbox.PointerEvent {
	var events []sandbox.PointerEvent
	if !t.seen || pos != t.last {
		events = append(events, sandbox.MoveTo(pos.X, pos.Y, at))
	}
	t.last, t.seen = pos, true

	edge := func(i int, b sandbox.Button, was, is bool) {
		switch {
		case is && !was:
			if overUI {
				t.captured[i] = true
				return
			}
			events = append(events, sandbox.PressAt(b, pos.X, pos.Y, at))
		case was && !is:
			if t.captured[i] {
				t.captured[i] = false
				return
			}
			events = append(events, sandbox.ReleaseAt(b, pos.X, pos.Y, at))
		}
	}
	edge(0, sandbox.Left, t.prev.Left, now.Left)
	edge(1, sandbox.Right, t.prev.Right, now.Right)
	t.prev = now
	return events
}

// Slider maps a horizontal track to a value in [0,1].
type Slider struct {
	Label      string
	X, Y, W, H float64
	Value      float64
	active     bool
}

func (s *Slider) Contains(p dynamo.Vec2) bool {
	return p.X >= s.X && p.X <= s.X+s.W && p.Y >= s.Y && p.Y <= s.Y+s.H
}

func (s *Slider) Active() bool { return s.active }

// Update moves the knob while the left button is held after a press on the
// track. It reports whether the value changed.
func (s *Slider) Update(p dynamo.Vec2, pressed, down bool) bool {
	if pressed && s.Contains(p) {
		s.active = true
	}
	if !down {
		s.active = false
	}
	if !s.active || s.W <= 0 {
		return false
	}
	v := max(0, min(1, (p.X-s.X)/s.W))
	changed := v != s.Value
	s.Value = v
	return changed
}

// Knob is the knob centre in window coordinates.
func (s *Slider) Knob() dynamo.Vec2 {
	return dynamo.Vec2{X: s.X + s.Value*s.W, Y: s.Y + s.H/2}
}
