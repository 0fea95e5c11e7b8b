package viz

import "testing"

func TestCanvasSetAndLit(t *testing.T) {
	c := NewCanvas(4, 2)
	if c.PixelWidth() != 8 || c.PixelHeight() != 8 {
		t.Fatalf("expected 8x8 sub-pixels, got %dx%d", c.PixelWidth(), c.PixelHeight())
	}
	c.SetColor(3, 5, "#ff0000")
	if !c.Lit(3, 5) {
		t.Error("expected pixel lit")
	}
	if c.Colors[1][1] != "#ff0000" {
		t.Errorf("expected cell colour #ff0000, got %q", c.Colors[1][1])
	}
	c.Unset(3, 5)
	if c.Lit(3, 5) {
		t.Error("expected pixel cleared")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(100, 100)
	c.DrawLine(-10, -10, 30, 30, "")
	c.FillCircle(0, 0, 50, "#00ff00")
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.FillCircle(3, 6, 2, "#00ff00")
	c.Clear()
	for y := 0; y < c.PixelHeight(); y++ {
		for x := 0; x < c.PixelWidth(); x++ {
			if c.Lit(x, y) {
				t.Fatalf("pixel (%d,%d) still lit", x, y)
			}
		}
	}
	if c.Colors[1][1] != "" {
		t.Errorf("expected colours cleared")
	}
}
