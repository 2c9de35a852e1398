// Package iconanim generates, previews and post-processes icon animations.
package iconanim

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/sync/errgroup"

	"github.com/Gaurav-Gosain/iconanim/internal/anim"
	animgif "github.com/Gaurav-Gosain/iconanim/internal/gif"
)

// Job is one animation to generate.
type Job struct {
	// Source is an icon file path or http(s) URL.
	Source string
	// Output is the path of the GIF to write.
	Output string
	Spec   anim.Spec
}

// Animate loads the icon at source and animates it without writing
// anything.
func Animate(ctx context.Context, source string, spec anim.Spec) (*anim.Sequence, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	icon, err := animgif.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("loading icon: %w", err)
	}
	seq, err := anim.Animate(icon, spec)
	if err != nil {
		return nil, fmt.Errorf("animating %s: %w", source, err)
	}
	return seq, nil
}

// Generate loads the job's icon, animates it and writes the GIF.
// It returns the generated sequence.
func Generate(ctx context.Context, job Job) (*anim.Sequence, error) {
	seq, err := Animate(ctx, job.Source, job.Spec)
	if err != nil {
		return nil, err
	}
	if err := animgif.EncodeFile(job.Output, seq, nil); err != nil {
		return nil, fmt.Errorf("writing %s: %w", job.Output, err)
	}
	slog.Info("saved animation",
		"kind", job.Spec.Effect.Kind(),
		"path", job.Output,
		"frames", len(seq.Frames),
		"size", seq.Bounds().Size(),
	)
	return seq, nil
}

// GenerateAll runs jobs concurrently, at most limit at a time. A limit
// less than one uses the number of CPUs. If done is non-nil it is called
// after each successful job; calls are serialized. The first failure
// cancels jobs that have not started and is returned.
func GenerateAll(ctx context.Context, jobs []Job, limit int, done func(Job, *anim.Sequence)) error {
	if limit < 1 {
		limit = runtime.NumCPU()
	}
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seq, err := Generate(ctx, job)
			if err != nil {
				return err
			}
			if done != nil {
				mu.Lock()
				done(job, seq)
				mu.Unlock()
			}
			return nil
		})
	}
	return g.Wait()
}

// OutputPath returns the default GIF path for an icon animated with kind:
// the icon's base name with the kind appended, in dir.
func OutputPath(dir, source string, kind anim.Kind) string {
	base := filepath.Base(source)
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "icon"
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.gif", base, kind))
}

// ShiftFile moves the image at in by (dx, dy), fills the exposed area
// and writes the result to out. The output format follows the extension
// of out: .jpg/.jpeg, .gif or otherwise PNG.
func ShiftFile(ctx context.Context, in, out string, dx, dy int, fill color.Color) (err error) {
	src, err := animgif.Load(ctx, in)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}
	shifted := anim.Shift(src, dx, dy, fill)

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(out)
		}
	}()
	if err := encodeStill(f, out, shifted); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	slog.Info("saved shifted image", "path", out, "dx", dx, "dy", dy)
	return nil
}

func encodeStill(w io.Writer, name string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".gif":
		return gif.Encode(w, img, &gif.Options{NumColors: 256, Quantizer: quantize.MedianCutQuantizer{}})
	default:
		return png.Encode(w, img)
	}
}
