package gif

import (
	"image"
	"image/color"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/nfnt/resize"
)

// Progress reports how much of a frame has been rendered.
type Progress struct {
	Partial      string
	RowsComplete int
	TotalRows    int
}

// Renderer draws images as terminal text using halfblock characters,
// giving two pixel rows per terminal line.
type Renderer struct {
	// Width and Height are the terminal size in cells.
	Width, Height int
}

// Render returns img as halfblock text scaled to fit the terminal. If
// progress is non-nil, partial output is sent to it as rows complete.
// Render does not close progress.
//
// Pixels are shown the way Encode writes them: below half alpha they
// are transparent, otherwise opaque.
func (r Renderer) Render(img image.Image, progress chan<- Progress) string {
	width, height := r.Fit(img.Bounds().Size())
	if width <= 0 || height <= 0 {
		return ""
	}
	resized := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	b := resized.Bounds()

	var sb strings.Builder
	rows := (b.Dy() + 1) / 2
	for row := 1; row <= rows; row++ {
		writeRow(&sb, resized, b.Min.Y+2*(row-1))
		sb.WriteByte('\n')

		// Throttled to every 2 rows, plus the last row.
		if progress != nil && (row%2 == 0 || row == rows) {
			progress <- Progress{
				Partial:      sb.String(),
				RowsComplete: row,
				TotalRows:    rows,
			}
		}
	}
	return sb.String()
}

// Fit returns the pixel size an image of the given size is scaled to so
// that it fits the terminal, keeping its aspect ratio.
func (r Renderer) Fit(size image.Point) (width, height int) {
	if size.X == 0 || size.Y == 0 {
		return 0, 0
	}
	// Each pixel column is drawn two characters wide.
	width = r.Width / 2
	ratio := float64(size.Y) / float64(size.X)
	height = int(float64(width) * ratio * 2)

	if height > r.Height*2 {
		height = r.Height * 2
		width = int(float64(height) / ratio / 2)
	}
	return width, height
}

// writeRow writes the cells for pixel rows y and y+1. Neighbouring cells
// with the same colours share one styled span.
func writeRow(sb *strings.Builder, img image.Image, y int) {
	b := img.Bounds()
	var (
		run cell
		n   int
	)
	for x := b.Min.X; x < b.Max.X; x++ {
		c := cell{top: visible(img.At(x, y))}
		if y+1 < b.Max.Y {
			c.bottom = visible(img.At(x, y+1))
		}
		if n > 0 && c != run {
			sb.WriteString(run.render(n))
			n = 0
		}
		run = c
		n++
	}
	if n > 0 {
		sb.WriteString(run.render(n))
	}
}

// cell is two vertically stacked pixels. A zero colour is transparent.
type cell struct {
	top, bottom color.NRGBA
}

// render returns n copies of the cell as halfblock characters.
func (c cell) render(n int) string {
	switch {
	case c.top.A == 0 && c.bottom.A == 0:
		return strings.Repeat("  ", n)
	case c.top.A == 0:
		return lipgloss.NewStyle().Foreground(c.bottom).Render(strings.Repeat("▄▄", n))
	case c.bottom.A == 0:
		return lipgloss.NewStyle().Foreground(c.top).Render(strings.Repeat("▀▀", n))
	}
	return lipgloss.NewStyle().
		Foreground(c.top).
		Background(c.bottom).
		Render(strings.Repeat("▀▀", n))
}

// visible returns c as an opaque colour, or the zero colour if Encode
// would write it as transparent.
func visible(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if !opaque(n) {
		return color.NRGBA{}
	}
	n.A = 0xff
	return n
}
