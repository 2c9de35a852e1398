package anim

import (
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// newCanvas returns a w×h canvas filled with bg.
func newCanvas(w, h int, bg color.NRGBA) *image.NRGBA {
	c := image.NewNRGBA(image.Rect(0, 0, w, h))
	if bg != (color.NRGBA{}) {
		draw.Draw(c, c.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	}
	return c
}

// compositeAt draws icon over canvas with its top-left corner at (x, y).
// Parts of the icon falling outside the canvas are clipped.
func compositeAt(canvas draw.Image, icon image.Image, x, y int) {
	b := icon.Bounds()
	r := image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+b.Dx(), y+b.Dy())}
	draw.Draw(canvas, r, icon, b.Min, draw.Over)
}

// NRGBA returns img as an *image.NRGBA with its origin at (0, 0).
// The result never aliases img.
func NRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Shift returns a copy of src moved by (dx, dy) with the exposed
// area filled with fill. Positive dx moves right, positive dy moves down.
func Shift(src image.Image, dx, dy int, fill color.Color) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)
	r := image.Rect(dx, dy, dx+b.Dx(), dy+b.Dy())
	draw.Draw(dst, r, src, b.Min, draw.Src)
	return dst
}

// scale returns icon resized to pct percent using Lanczos3 resampling.
// Each dimension is at least one pixel.
func scale(icon image.Image, pct int) image.Image {
	b := icon.Bounds()
	w, h := scaledSize(b, pct)
	if w == b.Dx() && h == b.Dy() {
		return icon
	}
	return resize.Resize(uint(w), uint(h), icon, resize.Lanczos3)
}

// scaledSize returns the size of b at pct percent, floored and at
// least one pixel in each dimension.
func scaledSize(b image.Rectangle, pct int) (w, h int) {
	return max(1, b.Dx()*pct/100), max(1, b.Dy()*pct/100)
}

// rotate returns icon rotated counter-clockwise by deg degrees about the
// pivot, clipped to the icon's own bounds.
func rotate(icon image.Image, deg int, pivot image.Point) image.Image {
	if deg%360 == 0 {
		return icon
	}
	b := icon.Bounds()
	rad := float64(deg) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	px := float64(pivot.X + b.Min.X)
	py := float64(pivot.Y + b.Min.Y)

	// Maps source to destination coordinates. With y pointing
	// down, this turns the image counter-clockwise on screen.
	s2d := f64.Aff3{
		cos, sin, px - cos*px - sin*py,
		-sin, cos, py + sin*px - cos*py,
	}
	dst := image.NewRGBA(b)
	draw.CatmullRom.Transform(dst, s2d, icon, b, draw.Src, nil)
	return dst
}
