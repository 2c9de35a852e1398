// Package config holds the default animation parameters and loads
// TOML preset files that override them.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Gaurav-Gosain/iconanim/internal/anim"
)

// Default animation parameters.
var (
	DefaultBounceOffsets = []int{0, -8, -15, -18, -15, -8, 0, 5, 0}
	DefaultPulseScales   = []int{80, 85, 90, 100, 105, 110, 105, 100, 95, 90, 85}
	DefaultTiltAngles    = []int{-6, -4, -2, 0, 2, 4, 6, 8}
	DefaultShakeOffsets  = []int{-5, 5, -4, 4, -2, 2, 0}
)

const (
	DefaultBouncePadding = 30
	DefaultBounceDelay   = 350

	DefaultPulsePadding = 60
	DefaultPulseDelay   = 250

	DefaultTiltPadX  = 40
	DefaultTiltPadY  = 60
	DefaultTiltDelay = 250

	DefaultShakePadding = 10
	DefaultShakeDelay   = 100

	DefaultSlideMaxOffset = 85
	DefaultSlideStep      = 5
	DefaultSlideDelay     = 50
)

// Effect holds the parameters of one animation kind. Unused fields are
// ignored by kinds that do not need them. Delay is in milliseconds.
type Effect struct {
	Offsets   []int `toml:"offsets"`
	Scales    []int `toml:"scales"`
	Angles    []int `toml:"angles"`
	MaxOffset int   `toml:"max_offset"`
	Step      int   `toml:"step"`
	PadX      int   `toml:"pad_x"`
	PadY      int   `toml:"pad_y"`
	Delay     int   `toml:"delay"`
}

// Config is the set of animation presets.
type Config struct {
	// Background is the canvas colour as #rrggbbaa or #rrggbb.
	Background string `toml:"background"`

	Bounce Effect `toml:"bounce"`
	Pulse  Effect `toml:"pulse"`
	Tilt   Effect `toml:"tilt"`
	Shake  Effect `toml:"shake"`
	Slide  Effect `toml:"slide"`
}

// Default returns the built-in presets.
func Default() *Config {
	return &Config{
		Background: "#ffffff00",
		Bounce: Effect{
			Offsets: clone(DefaultBounceOffsets),
			PadX:    DefaultBouncePadding,
			PadY:    DefaultBouncePadding,
			Delay:   DefaultBounceDelay,
		},
		Pulse: Effect{
			Scales: clone(DefaultPulseScales),
			PadX:   DefaultPulsePadding,
			PadY:   DefaultPulsePadding,
			Delay:  DefaultPulseDelay,
		},
		Tilt: Effect{
			Angles: clone(DefaultTiltAngles),
			PadX:   DefaultTiltPadX,
			PadY:   DefaultTiltPadY,
			Delay:  DefaultTiltDelay,
		},
		Shake: Effect{
			Offsets: clone(DefaultShakeOffsets),
			PadX:    DefaultShakePadding,
			PadY:    DefaultShakePadding,
			Delay:   DefaultShakeDelay,
		},
		Slide: Effect{
			MaxOffset: DefaultSlideMaxOffset,
			Step:      DefaultSlideStep,
			Delay:     DefaultSlideDelay,
		},
	}
}

func clone(s []int) []int { return append([]int(nil), s...) }

// Load returns the defaults overridden by the TOML file at path.
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	md, err := toml.Decode(string(b), c)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) != 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parsing config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if _, err := ParseColor(c.Background); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, nil
}

// Effect returns the preset for kind.
func (c *Config) Effect(kind anim.Kind) (*Effect, error) {
	switch kind {
	case anim.KindBounce:
		return &c.Bounce, nil
	case anim.KindPulse:
		return &c.Pulse, nil
	case anim.KindTilt:
		return &c.Tilt, nil
	case anim.KindShake:
		return &c.Shake, nil
	case anim.KindSlide:
		return &c.Slide, nil
	}
	return nil, fmt.Errorf("%w: unknown animation %q", anim.ErrInvalidSpec, kind)
}

// Spec builds a validated animation spec for kind from the presets.
func (c *Config) Spec(kind anim.Kind) (anim.Spec, error) {
	p, err := c.Effect(kind)
	if err != nil {
		return anim.Spec{}, err
	}
	bg, err := ParseColor(c.Background)
	if err != nil {
		return anim.Spec{}, err
	}

	var e anim.Effect
	switch kind {
	case anim.KindBounce:
		e = anim.Bounce{Offsets: clone(p.Offsets)}
	case anim.KindPulse:
		e = anim.Pulse{Scales: clone(p.Scales)}
	case anim.KindTilt:
		e = anim.Tilt{Angles: clone(p.Angles)}
	case anim.KindShake:
		e = anim.Shake{Offsets: clone(p.Offsets)}
	case anim.KindSlide:
		e = anim.Slide{MaxOffset: p.MaxOffset, Step: p.Step}
	}
	return anim.NewSpec(e,
		anim.WithPadding(p.PadX, p.PadY),
		anim.WithDelay(time.Duration(p.Delay)*time.Millisecond),
		anim.WithBackground(bg),
	)
}

// ParseColor parses a #rrggbb or #rrggbbaa colour. Colours without an
// alpha component are opaque.
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, errors.Unwrap(err))
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
