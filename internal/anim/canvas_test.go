package anim

import (
	"image"
	"image/color"
	"testing"
)

func TestCompositeAtBlends(t *testing.T) {
	canvas := newCanvas(2, 1, color.NRGBA{B: 0xff, A: 0xff})
	icon := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	icon.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0x80})

	compositeAt(canvas, icon, 1, 0)

	if got := canvas.NRGBAAt(0, 0); got != (color.NRGBA{B: 0xff, A: 0xff}) {
		t.Errorf("untouched pixel = %v", got)
	}
	got := canvas.NRGBAAt(1, 0)
	// out = src*srcA + dst*(1-srcA) with srcA ≈ 0.5.
	if got.A != 0xff {
		t.Errorf("blended alpha = %d, want 255", got.A)
	}
	if d := int(got.R) - 0x80; d < -1 || d > 1 {
		t.Errorf("blended red = %d, want ~128", got.R)
	}
	if d := int(got.B) - 0x7f; d < -1 || d > 1 {
		t.Errorf("blended blue = %d, want ~127", got.B)
	}
}

func TestCompositeAtClips(t *testing.T) {
	canvas := newCanvas(4, 4, color.NRGBA{})
	compositeAt(canvas, testIcon(4, 4), 2, -2)
	if got := canvas.NRGBAAt(3, 1); got != red {
		t.Errorf("pixel (3,1) = %v, want %v", got, red)
	}
	if got := canvas.NRGBAAt(1, 1); got.A != 0 {
		t.Errorf("pixel (1,1) outside icon = %v", got)
	}
}

func TestNRGBAResetsOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	src.SetNRGBA(5, 5, red)
	got := NRGBA(src)
	if got.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if got.NRGBAAt(0, 0) != red {
		t.Errorf("pixel (0,0) = %v, want %v", got.NRGBAAt(0, 0), red)
	}
	got.SetNRGBA(1, 1, green)
	if src.NRGBAAt(6, 6) == green {
		t.Error("NRGBA() result aliases its input")
	}
}

func TestShift(t *testing.T) {
	gray := color.NRGBA{R: 150, G: 150, B: 150, A: 0xff}
	src := testIcon(6, 4)

	tests := []struct {
		name   string
		dx, dy int
		filled image.Point
		moved  image.Point // where source pixel (1,0) ends up
	}{
		{"right", 2, 0, image.Pt(0, 2), image.Pt(3, 0)},
		{"left", -2, 0, image.Pt(5, 2), image.Pt(-1, 0)},
		{"down", 0, 1, image.Pt(3, 0), image.Pt(1, 1)},
		{"up", 0, -1, image.Pt(3, 3), image.Pt(1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shift(src, tt.dx, tt.dy, gray)
			if got.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
			}
			if c := got.NRGBAAt(tt.filled.X, tt.filled.Y); c != gray {
				t.Errorf("exposed pixel %v = %v, want %v", tt.filled, c, gray)
			}
			if tt.moved.In(got.Bounds()) {
				if c := got.NRGBAAt(tt.moved.X, tt.moved.Y); c != green {
					t.Errorf("moved pixel %v = %v, want %v", tt.moved, c, green)
				}
			}
		})
	}
}
