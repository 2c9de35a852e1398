// Package anim composes the frames of simple icon animations.
package anim

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"
)

// ErrInvalidSpec is returned when an animation spec cannot produce frames.
var ErrInvalidSpec = errors.New("invalid animation spec")

// TransparentWhite is the default canvas background.
var TransparentWhite = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0}

// Kind names an animation effect.
type Kind string

const (
	KindBounce Kind = "bounce"
	KindPulse  Kind = "pulse"
	KindTilt   Kind = "tilt"
	KindShake  Kind = "shake"
	KindSlide  Kind = "slide"
)

// Kinds lists every supported effect in display order.
var Kinds = []Kind{KindBounce, KindPulse, KindTilt, KindShake, KindSlide}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown animation %q", ErrInvalidSpec, s)
}

// Effect is one of Bounce, Pulse, Tilt, Shake or Slide.
type Effect interface {
	Kind() Kind
	// frames is the number of frames the effect produces.
	frames() int
	validate() error
}

// Bounce moves the icon vertically by each offset in turn.
type Bounce struct {
	Offsets []int
}

// MaxScale is the largest pulse scale in percent.
const MaxScale = 10000

// Pulse resizes the icon to each percentage in turn. Scales must be in
// (0, MaxScale].
type Pulse struct {
	Scales []int
}

// Tilt rotates the icon about its bottom-center by each angle in degrees.
// Positive angles rotate counter-clockwise.
type Tilt struct {
	Angles []int
}

// Shake moves the icon horizontally by each offset in turn.
type Shake struct {
	Offsets []int
}

// Slide moves the icon from the left edge to MaxOffset pixels right,
// advancing Step pixels per frame. The last frame is always at MaxOffset.
// Step may not exceed a positive MaxOffset; a MaxOffset of zero yields a
// single frame at 0 for any positive Step.
type Slide struct {
	MaxOffset int
	Step      int
}

func (Bounce) Kind() Kind { return KindBounce }
func (Pulse) Kind() Kind  { return KindPulse }
func (Tilt) Kind() Kind   { return KindTilt }
func (Shake) Kind() Kind  { return KindShake }
func (Slide) Kind() Kind  { return KindSlide }

func (e Bounce) frames() int { return len(e.Offsets) }
func (e Pulse) frames() int  { return len(e.Scales) }
func (e Tilt) frames() int   { return len(e.Angles) }
func (e Shake) frames() int  { return len(e.Offsets) }
func (e Slide) frames() int  { return len(e.offsets()) }

func (e Bounce) validate() error { return nonEmpty("bounce offsets", len(e.Offsets)) }
func (e Tilt) validate() error   { return nonEmpty("tilt angles", len(e.Angles)) }
func (e Shake) validate() error  { return nonEmpty("shake offsets", len(e.Offsets)) }

func (e Pulse) validate() error {
	if err := nonEmpty("pulse scales", len(e.Scales)); err != nil {
		return err
	}
	for i, s := range e.Scales {
		if s <= 0 || s > MaxScale {
			return fmt.Errorf("%w: pulse scale %d at index %d is outside (0, %d]", ErrInvalidSpec, s, i, MaxScale)
		}
	}
	return nil
}

func (e Slide) validate() error {
	switch {
	case e.MaxOffset < 0:
		return fmt.Errorf("%w: slide max offset %d is negative", ErrInvalidSpec, e.MaxOffset)
	case e.Step <= 0:
		return fmt.Errorf("%w: slide step %d is not positive", ErrInvalidSpec, e.Step)
	case e.MaxOffset > 0 && e.Step > e.MaxOffset:
		return fmt.Errorf("%w: slide step %d exceeds max offset %d", ErrInvalidSpec, e.Step, e.MaxOffset)
	}
	return nil
}

// offsets returns the horizontal positions of each slide frame.
func (e Slide) offsets() []int {
	if e.Step <= 0 || e.MaxOffset < 0 {
		return nil
	}
	var offs []int
	for x := 0; x <= e.MaxOffset; x += e.Step {
		offs = append(offs, x)
	}
	if offs[len(offs)-1] != e.MaxOffset {
		offs = append(offs, e.MaxOffset)
	}
	return offs
}

func nonEmpty(what string, n int) error {
	if n == 0 {
		return fmt.Errorf("%w: %s are empty", ErrInvalidSpec, what)
	}
	return nil
}

// Spec describes one animation request.
type Spec struct {
	Effect Effect

	// Padding is the extra canvas margin. How it is applied
	// depends on the effect: bounce and shake add it on both
	// sides, pulse and tilt add it once, slide ignores it.
	Padding image.Point

	// Delay is the display time of each frame.
	Delay time.Duration

	// Background fills each canvas before the icon is drawn.
	Background color.NRGBA
}

// Option configures a Spec built by NewSpec.
type Option func(*Spec)

// WithPadding sets the horizontal and vertical canvas padding.
func WithPadding(x, y int) Option {
	return func(s *Spec) { s.Padding = image.Pt(x, y) }
}

// WithDelay sets the per-frame display time.
func WithDelay(d time.Duration) Option {
	return func(s *Spec) { s.Delay = d }
}

// WithBackground sets the canvas fill colour.
func WithBackground(c color.NRGBA) Option {
	return func(s *Spec) { s.Background = c }
}

// NewSpec returns a validated Spec for the effect. The background defaults
// to TransparentWhite.
func NewSpec(e Effect, opts ...Option) (Spec, error) {
	s := Spec{Effect: e, Background: TransparentWhite}
	for _, o := range opts {
		o(&s)
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Validate reports whether s can be animated.
func (s Spec) Validate() error {
	if s.Effect == nil {
		return fmt.Errorf("%w: no effect", ErrInvalidSpec)
	}
	if s.Padding.X < 0 || s.Padding.Y < 0 {
		return fmt.Errorf("%w: negative padding %v", ErrInvalidSpec, s.Padding)
	}
	if s.Delay < 0 {
		return fmt.Errorf("%w: negative delay %v", ErrInvalidSpec, s.Delay)
	}
	switch s.Effect.(type) {
	case Bounce, Pulse, Tilt, Shake, Slide:
	default:
		return fmt.Errorf("%w: unsupported effect %T", ErrInvalidSpec, s.Effect)
	}
	return s.Effect.validate()
}

// Frames returns the number of frames s produces, or zero if s is invalid.
func (s Spec) Frames() int {
	if s.Validate() != nil {
		return 0
	}
	return s.Effect.frames()
}
