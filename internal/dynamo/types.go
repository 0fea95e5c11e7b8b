package dynamo

import "math"

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2  { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64    { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float64        { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64          { return math.Sqrt(v.LenSq()) }
func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).LenSq() }
func (v Vec2) Dist(o Vec2) float64   { return v.Sub(o).Len() }

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Clamp limits each axis independently to [-limit, limit].
func (v Vec2) Clamp(limit float64) Vec2 {
	return Vec2{clamp(v.X, -limit, limit), clamp(v.Y, -limit, limit)}
}

type RGB struct {
	R, G, B uint8
}

// Lighten adds d to every channel, saturating at 255.
func (c RGB) Lighten(d uint8) RGB {
	add := func(v uint8) uint8 {
		if int(v)+int(d) > 255 {
			return 255
		}
		return v + d
	}
	return RGB{add(c.R), add(c.G), add(c.B)}
}

// Hex renders the colour as #rrggbb.
func (c RGB) Hex() string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0f]
	}
	return string(b)
}

type Bounds struct {
	Width, Height float64
}

func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0 && !math.IsInf(b.Width, 0) && !math.IsInf(b.Height, 0)
}

// Sanitized returns bounds with each dimension raised to at least 1.
func (b Bounds) Sanitized() Bounds {
	fix := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 1 {
			return 1
		}
		return v
	}
	return Bounds{fix(b.Width), fix(b.Height)}
}

const (
	MinTimeScale    = 0.1
	MaxTimeScale    = 2.0
	MinGravityScale = 0.0
	MaxGravityScale = 5.0
)

// FrameConfig carries the scalars sampled once per frame from the UI.
type FrameConfig struct {
	TimeScale    float64
	GravityScale float64
	Bounds       Bounds
}

func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		TimeScale:    1.0,
		GravityScale: 1.0,
		Bounds:       Bounds{Width: 1200, Height: 800},
	}
}

// Normalized clamps every field into its legal range.
func (c FrameConfig) Normalized() FrameConfig {
	ts := c.TimeScale
	if math.IsNaN(ts) {
		ts = 1
	}
	gs := c.GravityScale
	if math.IsNaN(gs) {
		gs = 1
	}
	return FrameConfig{
		TimeScale:    clamp(ts, MinTimeScale, MaxTimeScale),
		GravityScale: clamp(gs, MinGravityScale, MaxGravityScale),
		Bounds:       c.Bounds.Sanitized(),
	}
}

// TimeScaleFromSlider maps a slider position in [0,1] to [0.1,2.0].
func TimeScaleFromSlider(v float64) float64 {
	return MinTimeScale + clamp01(v)*(MaxTimeScale-MinTimeScale)
}

// GravityScaleFromSlider maps a slider position in [0,1] to [0,5].
func GravityScaleFromSlider(v float64) float64 {
	return MinGravityScale + clamp01(v)*(MaxGravityScale-MinGravityScale)
}

// SliderFromTimeScale is the inverse of TimeScaleFromSlider.
func SliderFromTimeScale(ts float64) float64 {
	return clamp01((ts - MinTimeScale) / (MaxTimeScale - MinTimeScale))
}

// SliderFromGravityScale is the inverse of GravityScaleFromSlider.
func SliderFromGravityScale(gs float64) float64 {
	return clamp01((gs - MinGravityScale) / (MaxGravityScale - MinGravityScale))
}

// BodyView is the render-facing copy of a body.
type BodyView struct {
	ID      uint64
	Pos     Vec2
	Vel     Vec2
	Radius  float64
	Mass    float64
	Color   RGB
	Special bool
	Dragged bool
}

// FrameEvents counts what happened to the population during one frame.
type FrameEvents struct {
	Spawned   int
	Despawned int
	Cleared   int
	Merged    int
	Exploded  int
	Fragments int
	Faults    int
}

// Frame is the snapshot produced after each simulation step.
type Frame struct {
	Index   int
	Config  FrameConfig
	Bodies  []BodyView
	Pointer Vec2
	Pushing bool
	Field   bool
	Events  FrameEvents
}

// Metric accumulates a scalar summary over a sequence of frames.
type Metric interface {
	Name() string
	Observe(f *Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f *Frame)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, 0, 1)
}
