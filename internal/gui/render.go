package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/gui/widget"
	"github.com/san-kum/ballpit/internal/physics"
)

func vec(v dynamo.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func rgba(c dynamo.RGB) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}

func (a *App) drawBodies() {
	f := a.Frame
	if f == nil {
		return
	}
	for _, b := range f.Bodies {
		rl.DrawCircleV(vec(b.Pos), float32(b.Radius), rgba(b.Color))
		if b.Special {
			rl.DrawCircleLinesV(vec(b.Pos), float32(b.Radius)+2, rgba(physics.Gold))
		}
		if b.Dragged {
			rl.DrawLineV(vec(b.Pos), vec(f.Pointer), ColSelect)
		}
	}
	if f.Field {
		col := ColPull
		if f.Pushing {
			col = ColPush
		}
		rl.DrawRing(vec(f.Pointer), 4, 40, 0, 360, 48, col)
	}
}

func (a *App) drawSlider(s *widget.Slider, label string) {
	track := rl.Rectangle{X: float32(s.X), Y: float32(s.Y), Width: float32(s.W), Height: float32(s.H)}
	rl.DrawRectangleLinesEx(track, 1, ColTextDim)
	fill := track
	fill.Width = float32(s.Value * s.W)
	rl.DrawRectangleRec(fill, ColTextDim)

	knob := ColAccent
	if s.Active() {
		knob = ColSelect
	}
	rl.DrawCircleV(vec(s.Knob()), float32(s.H)*0.7, knob)
	rl.DrawText(label, int32(s.X), int32(s.Y)-16, 12, ColText)
}
