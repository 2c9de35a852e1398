package gif

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"

	"github.com/Gaurav-Gosain/iconanim/internal/anim"
)

// ErrEncode is wrapped by errors from encoding and writing GIFs.
var ErrEncode = errors.New("encode failed")

// TransparentIndex is the palette index reserved for transparent pixels
// in every encoded frame.
const TransparentIndex = 0

// Options configures GIF encoding.
type Options struct {
	// Quantizer builds each frame's palette from its opaque pixels.
	// It is asked for at most 255 colours. The default is a
	// median-cut quantizer.
	Quantizer draw.Quantizer
}

// Encode writes seq to w as an animated GIF. Each frame gets its own
// palette with index 0 reserved for transparency, and is disposed to the
// background before the next is drawn.
func Encode(w io.Writer, seq *anim.Sequence, opts *Options) error {
	if seq == nil || len(seq.Frames) == 0 {
		return fmt.Errorf("%w: no frames", ErrEncode)
	}
	q := draw.Quantizer(quantize.MedianCutQuantizer{})
	if opts != nil && opts.Quantizer != nil {
		q = opts.Quantizer
	}

	delay := centiseconds(seq.Delay)
	out := &gif.GIF{
		Image:     make([]*image.Paletted, len(seq.Frames)),
		Delay:     make([]int, len(seq.Frames)),
		Disposal:  make([]byte, len(seq.Frames)),
		LoopCount: -1,
	}
	if seq.Loop {
		out.LoopCount = 0
	}
	bounds := seq.Bounds()
	for i, f := range seq.Frames {
		if f.Bounds() != bounds {
			return fmt.Errorf("%w: frame %d bounds %v differ from %v", ErrEncode, i, f.Bounds(), bounds)
		}
		out.Image[i] = paletted(f, q)
		out.Delay[i] = delay
		out.Disposal[i] = gif.DisposalBackground
	}

	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// EncodeFile writes seq to path as an animated GIF, creating parent
// directories as needed.
func EncodeFile(path string, seq *anim.Sequence, opts *Options) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrEncode, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: %w", ErrEncode, cerr)
		}
	}()
	return Encode(f, seq, opts)
}

// centiseconds converts d to GIF delay units, rounding non-zero
// durations up to at least one unit.
func centiseconds(d time.Duration) int {
	cs := int(d / (10 * time.Millisecond))
	if cs == 0 && d > 0 {
		return 1
	}
	return cs
}

// opaque reports whether c is drawn rather than mapped to transparency.
func opaque(c color.NRGBA) bool {
	return c.A >= 0x80
}

// paletted converts img to a paletted frame. Pixels with less than half
// alpha become TransparentIndex, the rest are matched against a palette
// quantized from the opaque pixels.
func paletted(img *image.NRGBA, q draw.Quantizer) *image.Paletted {
	b := img.Bounds()

	// Quantize over opaque pixels only so transparent areas do
	// not pull palette entries towards the background colour.
	var solid []color.NRGBA
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := img.NRGBAAt(x, y); opaque(c) {
				c.A = 0xff
				solid = append(solid, c)
			}
		}
	}
	pal := color.Palette{color.Transparent}
	if len(solid) != 0 {
		sample := image.NewNRGBA(image.Rect(0, 0, len(solid), 1))
		for i, c := range solid {
			sample.SetNRGBA(i, 0, c)
		}
		colors := q.Quantize(make(color.Palette, 0, 255), sample)
		pal = append(pal, colors[:min(len(colors), 255)]...)
	}

	dst := image.NewPaletted(b, pal)
	if len(pal) == 1 {
		return dst
	}
	lookup := make(map[color.NRGBA]uint8)
	colors := pal[1:]
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if !opaque(c) {
				continue
			}
			c.A = 0xff
			idx, ok := lookup[c]
			if !ok {
				idx = uint8(colors.Index(c) + 1)
				lookup[c] = idx
			}
			dst.SetColorIndex(x, y, idx)
		}
	}
	return dst
}
