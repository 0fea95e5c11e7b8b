package metrics

import "github.com/san-kum/ballpit/internal/dynamo"

// Containment is the fraction of frames in which every body lies inside
// the side walls and above the floor, within tolerance.
type Containment struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewContainment(tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f *dynamo.Frame) {
	c.samples++
	w, h := f.Config.Bounds.Width, f.Config.Bounds.Height
	for _, b := range f.Bodies {
		if b.Dragged {
			continue
		}
		if b.Pos.X-b.Radius < -c.tolerance || b.Pos.X+b.Radius > w+c.tolerance || b.Pos.Y+b.Radius > h+c.tolerance {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
