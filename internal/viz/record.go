package viz

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
)

var ErrNoFrames = errors.New("no frames recorded")

// Recorder rasterizes snapshots into an animated GIF. Each pixel covers
// Scale world units.
type Recorder struct {
	Scale  float64
	Delay  int
	Limit  int
	frames []*image.Paletted
	size   image.Point
}

func NewRecorder(scale float64) *Recorder {
	if scale <= 0 {
		scale = 4
	}
	return &Recorder{Scale: scale, Delay: 2, Limit: 1800}
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Reset() {
	r.frames = r.frames[:0]
	r.size = image.Point{}
}

// Capture appends one frame. The first frame fixes the image size; later
// frames are clipped to it. Frames past Limit are dropped.
func (r *Recorder) Capture(f *dynamo.Frame) {
	if r.Limit > 0 && len(r.frames) >= r.Limit {
		return
	}
	if r.size == (image.Point{}) {
		r.size = image.Pt(
			max(1, int(math.Ceil(f.Config.Bounds.Width/r.Scale))),
			max(1, int(math.Ceil(f.Config.Bounds.Height/r.Scale))),
		)
	}
	w, h := r.size.X, r.size.Y
	img := image.NewPaletted(image.Rect(0, 0, w, h), palette.Plan9)
	bg := uint8(img.Palette.Index(color.Black))
	for i := range img.Pix {
		img.Pix[i] = bg
	}

	for _, b := range f.Bodies {
		idx := uint8(img.Palette.Index(color.RGBA{R: b.Color.R, G: b.Color.G, B: b.Color.B, A: 255}))
		cx, cy := b.Pos.X/r.Scale, b.Pos.Y/r.Scale
		rad := max(b.Radius/r.Scale, 0.5)
		x0, x1 := int(math.Floor(cx-rad)), int(math.Ceil(cx+rad))
		y0, y1 := int(math.Floor(cy-rad)), int(math.Ceil(cy+rad))
		for y := max(y0, 0); y <= min(y1, h-1); y++ {
			for x := max(x0, 0); x <= min(x1, w-1); x++ {
				dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
				if dx*dx+dy*dy <= rad*rad {
					img.SetColorIndex(x, y, idx)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Encode writes the recording as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}
