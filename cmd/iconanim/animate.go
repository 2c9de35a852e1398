package main

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	iconanim "github.com/Gaurav-Gosain/iconanim/core"
	"github.com/Gaurav-Gosain/iconanim/internal/anim"
	"github.com/Gaurav-Gosain/iconanim/internal/config"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// effectFlags are the animation parameters shared by animate and preview.
// Flags that are set override the preset file, which overrides the
// built-in defaults.
type effectFlags struct {
	configPath string
	offsets    []int
	scales     []int
	angles     []int
	maxOffset  int
	step       int
	padX       int
	padY       int
	delay      int
	background string
}

func (f *effectFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "TOML preset file")
	fs.IntSliceVar(&f.offsets, "offsets", nil, "bounce or shake offsets in pixels")
	fs.IntSliceVar(&f.scales, "scales", nil, "pulse scales in percent")
	fs.IntSliceVar(&f.angles, "angles", nil, "tilt angles in degrees")
	fs.IntVar(&f.maxOffset, "max-offset", 0, "slide distance in pixels")
	fs.IntVar(&f.step, "step", 0, "slide step in pixels")
	fs.IntVar(&f.padX, "pad-x", 0, "horizontal canvas padding")
	fs.IntVar(&f.padY, "pad-y", 0, "vertical canvas padding")
	fs.IntVar(&f.delay, "delay", 0, "frame duration in milliseconds")
	fs.StringVar(&f.background, "background", "", "canvas colour as #rrggbb or #rrggbbaa")
}

// spec builds the animation spec for kind from the preset file and the
// flags that were set on fs.
func (f *effectFlags) spec(kind anim.Kind, fs *pflag.FlagSet) (anim.Spec, error) {
	c := config.Default()
	if f.configPath != "" {
		var err error
		c, err = config.Load(f.configPath)
		if err != nil {
			return anim.Spec{}, err
		}
	}
	p, err := c.Effect(kind)
	if err != nil {
		return anim.Spec{}, err
	}

	set := func(name string, dst *int, v int) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	if fs.Changed("offsets") {
		p.Offsets = f.offsets
	}
	if fs.Changed("scales") {
		p.Scales = f.scales
	}
	if fs.Changed("angles") {
		p.Angles = f.angles
	}
	set("max-offset", &p.MaxOffset, f.maxOffset)
	set("step", &p.Step, f.step)
	set("pad-x", &p.PadX, f.padX)
	set("pad-y", &p.PadY, f.padY)
	set("delay", &p.Delay, f.delay)
	if fs.Changed("background") {
		c.Background = f.background
	}
	return c.Spec(kind)
}

func kindNames() string {
	names := make([]string, len(anim.Kinds))
	for i, k := range anim.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}

func newAnimateCmd() *cobra.Command {
	var (
		flags   effectFlags
		output  string
		outDir  string
		jobs    int
		preview bool
	)
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("animate <%s> <icon-file-or-url>...", kindNames()),
		Short: "Generate animated GIFs from icons",
		Example: `  iconanim animate bounce logo.png -o logo_bounce.gif
  iconanim animate slide logo.png --max-offset 85 --step 5 --delay 50
  iconanim animate pulse *.png --out-dir gifs -j 4`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := anim.ParseKind(args[0])
			if err != nil {
				return err
			}
			spec, err := flags.spec(kind, cmd.Flags())
			if err != nil {
				return err
			}
			sources := args[1:]
			if output != "" && len(sources) > 1 {
				return fmt.Errorf("--output takes a single icon, got %d; use --out-dir", len(sources))
			}
			if preview && len(sources) > 1 {
				return fmt.Errorf("--preview takes a single icon, got %d", len(sources))
			}

			work := make([]iconanim.Job, len(sources))
			for i, src := range sources {
				out := output
				if out == "" {
					out = iconanim.OutputPath(outDir, src, kind)
				}
				work[i] = iconanim.Job{Source: src, Output: out, Spec: spec}
			}

			w := cmd.OutOrStdout()
			var last *anim.Sequence
			err = iconanim.GenerateAll(cmd.Context(), work, jobs, func(j iconanim.Job, seq *anim.Sequence) {
				size := seq.Bounds().Size()
				fmt.Fprintln(w, okStyle.Render("Saved "+string(kind)+" GIF: "+j.Output)+
					infoStyle.Render(fmt.Sprintf(" (%d frames, %dx%d)", len(seq.Frames), size.X, size.Y)))
				last = seq
			})
			if err != nil {
				return err
			}
			if preview {
				return iconanim.Preview(last, string(kind)+" "+work[0].Source)
			}
			return nil
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output GIF path (single icon only)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for generated GIFs")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "icons to animate in parallel (0 = number of CPUs)")
	cmd.Flags().BoolVar(&preview, "preview", false, "play the result in the terminal (single icon only)")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	var (
		flags  effectFlags
		effect string
	)
	cmd := &cobra.Command{
		Use:   "preview <gif-or-icon-file-or-url>",
		Short: "Play an animation in the terminal",
		Long: `Play an animation in the terminal using halfblock rendering.

Without --effect the source must be a GIF. With --effect the source is
animated in memory and nothing is written.`,
		Example: `  iconanim preview logo_bounce.gif
  iconanim preview logo.png --effect tilt --angles -10,0,10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if effect == "" {
				return iconanim.PreviewSource(cmd.Context(), args[0])
			}
			kind, err := anim.ParseKind(effect)
			if err != nil {
				return err
			}
			spec, err := flags.spec(kind, cmd.Flags())
			if err != nil {
				return err
			}
			seq, err := iconanim.Animate(cmd.Context(), args[0], spec)
			if err != nil {
				return err
			}
			return iconanim.Preview(seq, string(kind)+" "+args[0])
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&effect, "effect", "e", "", "animate the source with this effect ("+kindNames()+")")
	return cmd
}
