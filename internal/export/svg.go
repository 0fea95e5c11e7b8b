package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/viz"
)

const background = "#0a0a0a"

// FrameToSVG draws a frame's bodies at the given scale. Special bodies get
// a gold rim and a dragged body gets a line to the pointer.
func FrameToSVG(f *dynamo.Frame, scale float64) string {
	if f == nil {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}
	bounds := f.Config.Bounds.Sanitized()
	width := bounds.Width * scale
	height := bounds.Height * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	for _, b := range f.Bodies {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"`,
			b.Pos.X*scale, b.Pos.Y*scale, b.Radius*scale, b.Color.Hex())
		if b.Special {
			fmt.Fprintf(&sb, ` stroke="%s" stroke-width="%.1f"`, physics.Gold.Hex(), 2*scale)
		}
		sb.WriteString("/>\n")
	}

	for _, b := range f.Bodies {
		if b.Dragged {
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ffffff" stroke-width="%.1f"/>
`, b.Pos.X*scale, b.Pos.Y*scale, f.Pointer.X*scale, f.Pointer.Y*scale, 2*scale)
		}
	}
	if f.Field {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#888888" stroke-dasharray="4 4"/>
`, f.Pointer.X*scale, f.Pointer.Y*scale, 40*scale)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="#00ff00">
`, width, height, width, height, background)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			if color := canvas.Colors[y/4][x/2]; color != "" {
				fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, color)
			} else {
				fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius)
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots a telemetry series against its sample index.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
