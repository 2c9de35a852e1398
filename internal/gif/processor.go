package gif

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	// Registered decoders for source icons.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Gaurav-Gosain/iconanim/internal/anim"
)

// ErrDecode is wrapped by errors from loading and decoding images.
var ErrDecode = errors.New("decode failed")

// Load decodes an icon from either a file path or an http(s) URL.
// The result has its origin at (0, 0) and keeps the source alpha.
func Load(ctx context.Context, source string) (*image.NRGBA, error) {
	rc, err := open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, format, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, source, err)
	}
	slog.Debug("decoded image", "source", source, "format", format, "bounds", img.Bounds())
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n, nil
	}
	return anim.NRGBA(img), nil
}

// LoadGIF loads every frame of a GIF from either a file path or URL.
func LoadGIF(ctx context.Context, source string) (*gif.GIF, error) {
	rc, err := open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	g, err := gif.DecodeAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, source, err)
	}
	return g, nil
}

// open returns a reader for a file path or URL.
func open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !IsURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to open file: %w", ErrDecode, err)
		}
		return f, nil
	}

	slog.Info("downloading", "url", source)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to download: %w", ErrDecode, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP error: %s", ErrDecode, resp.Status)
	}
	return resp.Body, nil
}

// Flatten renders every frame of g onto a full canvas, applying each
// frame's disposal method, and returns the result as a sequence.
// The sequence delay is taken from the first frame.
func Flatten(g *gif.GIF) (*anim.Sequence, error) {
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("%w: GIF has no frames", ErrDecode)
	}
	imgWidth, imgHeight := Dimensions(g)
	bounds := image.Rect(0, 0, imgWidth, imgHeight)

	current := image.NewNRGBA(bounds)
	previous := image.NewNRGBA(bounds)
	seq := &anim.Sequence{
		Frames: make([]*image.NRGBA, len(g.Image)),
		Loop:   g.LoopCount == 0,
	}
	if len(g.Delay) > 0 {
		seq.Delay = time.Duration(g.Delay[0]) * 10 * time.Millisecond
	}

	for i, src := range g.Image {
		if i > 0 && disposal(g, i-1) == gif.DisposalPrevious {
			draw.Draw(previous, bounds, current, image.Point{}, draw.Src)
		}
		if i > 0 {
			dispose(current, previous, g.Image[i-1], disposal(g, i-1))
		}
		draw.Draw(current, current.Bounds(), src, image.Point{}, draw.Over)

		frame := image.NewNRGBA(bounds)
		draw.Draw(frame, bounds, current, image.Point{}, draw.Src)
		seq.Frames[i] = frame
	}
	return seq, nil
}

func disposal(g *gif.GIF, i int) byte {
	if i < len(g.Disposal) {
		return g.Disposal[i]
	}
	return gif.DisposalNone
}

// dispose applies the disposal method of the frame just shown.
func dispose(current, previous *image.NRGBA, shown *image.Paletted, method byte) {
	switch method {
	case gif.DisposalBackground:
		draw.Draw(current, shown.Bounds(), &image.Uniform{color.Transparent}, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		draw.Draw(current, current.Bounds(), previous, image.Point{}, draw.Src)
	}
}

// Dimensions calculates the total canvas size needed for all frames.
func Dimensions(g *gif.GIF) (width, height int) {
	var lowestX, lowestY, highestX, highestY int

	for _, img := range g.Image {
		if img.Rect.Min.X < lowestX {
			lowestX = img.Rect.Min.X
		}
		if img.Rect.Min.Y < lowestY {
			lowestY = img.Rect.Min.Y
		}
		if img.Rect.Max.X > highestX {
			highestX = img.Rect.Max.X
		}
		if img.Rect.Max.Y > highestY {
			highestY = img.Rect.Max.Y
		}
	}

	return highestX - lowestX, highestY - lowestY
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
