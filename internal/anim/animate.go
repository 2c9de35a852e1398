package anim

import (
	"fmt"
	"image"
	"slices"
	"time"
)

// Sequence is an ordered set of equally sized frames ready for encoding.
type Sequence struct {
	Frames []*image.NRGBA
	Delay  time.Duration
	Loop   bool
}

// Bounds returns the shared bounds of the frames.
func (s *Sequence) Bounds() image.Rectangle {
	if s == nil || len(s.Frames) == 0 {
		return image.Rectangle{}
	}
	return s.Frames[0].Bounds()
}

// Animate composes one frame of src for each step of spec.Effect.
// src is not modified. If spec is invalid, Animate returns an error
// wrapping ErrInvalidSpec and no frames.
func Animate(src image.Image, spec Spec) (*Sequence, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty source image %v", ErrInvalidSpec, b)
	}

	var frames []*image.NRGBA
	switch e := spec.Effect.(type) {
	case Bounce:
		frames = bounce(src, e.Offsets, spec)
	case Shake:
		frames = shake(src, e.Offsets, spec)
	case Pulse:
		frames = pulse(src, e.Scales, spec)
	case Tilt:
		frames = tilt(src, e.Angles, spec)
	case Slide:
		frames = slide(src, e.offsets(), spec)
	default:
		return nil, fmt.Errorf("%w: unsupported effect %T", ErrInvalidSpec, e)
	}
	return &Sequence{Frames: frames, Delay: spec.Delay, Loop: true}, nil
}

// ============================================================================
// Effects
// ============================================================================

// centered returns the canvas size for a translating effect and the
// top-left position that centers src on it.
func centered(src image.Image, pad image.Point) (w, h, x, y int) {
	b := src.Bounds()
	w = b.Dx() + 2*pad.X
	h = b.Dy() + 2*pad.Y
	return w, h, w/2 - b.Dx()/2, h/2 - b.Dy()/2
}

func bounce(src image.Image, offsets []int, spec Spec) []*image.NRGBA {
	w, h, x, y := centered(src, spec.Padding)
	frames := make([]*image.NRGBA, len(offsets))
	for i, off := range offsets {
		frames[i] = newCanvas(w, h, spec.Background)
		compositeAt(frames[i], src, x, y+off)
	}
	return frames
}

func shake(src image.Image, offsets []int, spec Spec) []*image.NRGBA {
	w, h, x, y := centered(src, spec.Padding)
	frames := make([]*image.NRGBA, len(offsets))
	for i, off := range offsets {
		frames[i] = newCanvas(w, h, spec.Background)
		compositeAt(frames[i], src, x+off, y)
	}
	return frames
}

func pulse(src image.Image, scales []int, spec Spec) []*image.NRGBA {
	b := src.Bounds()
	w, h := scaledSize(b, slices.Max(scales))
	w += spec.Padding.X
	h += spec.Padding.Y
	frames := make([]*image.NRGBA, len(scales))
	for i, s := range scales {
		icon := scale(src, s)
		ib := icon.Bounds()
		frames[i] = newCanvas(w, h, spec.Background)
		compositeAt(frames[i], icon, w/2-ib.Dx()/2, h/2-ib.Dy()/2)
	}
	return frames
}

func tilt(src image.Image, angles []int, spec Spec) []*image.NRGBA {
	b := src.Bounds()
	w := b.Dx() + spec.Padding.X
	h := b.Dy() + spec.Padding.Y
	// The icon's bottom-center stays at this canvas point.
	ax, ay := w/2, h-spec.Padding.Y/2
	pivot := image.Pt(b.Dx()/2, b.Dy())
	frames := make([]*image.NRGBA, len(angles))
	for i, a := range angles {
		frames[i] = newCanvas(w, h, spec.Background)
		compositeAt(frames[i], rotate(src, a, pivot), ax-b.Dx()/2, ay-b.Dy())
	}
	return frames
}

func slide(src image.Image, offsets []int, spec Spec) []*image.NRGBA {
	b := src.Bounds()
	w := b.Dx() + offsets[len(offsets)-1]
	frames := make([]*image.NRGBA, len(offsets))
	for i, off := range offsets {
		frames[i] = newCanvas(w, b.Dy(), spec.Background)
		compositeAt(frames[i], src, off, 0)
	}
	return frames
}
