package gif

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Gaurav-Gosain/iconanim/internal/anim"
)

// testIcon returns a w×h icon, opaque red with a transparent border.
func testIcon(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0xff, A: 0xff})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

// ============================================================================
// Encoding Tests
// ============================================================================

func TestEncodeRoundTrip(t *testing.T) {
	spec, err := anim.NewSpec(anim.Bounce{Offsets: []int{0, -3, -5, -3, 0}},
		anim.WithPadding(4, 6), anim.WithDelay(350*time.Millisecond))
	if err != nil {
		t.Fatalf("NewSpec() error = %v", err)
	}
	seq, err := anim.Animate(testIcon(10, 10), spec)
	if err != nil {
		t.Fatalf("Animate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, seq, nil); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}

	if len(g.Image) != len(seq.Frames) {
		t.Fatalf("frames = %d, want %d", len(g.Image), len(seq.Frames))
	}
	if g.LoopCount != 0 {
		t.Errorf("LoopCount = %d, want 0 (forever)", g.LoopCount)
	}
	if diff := cmp.Diff([]int{35, 35, 35, 35, 35}, g.Delay); diff != "" {
		t.Errorf("Delay mismatch (-want +got):\n%s", diff)
	}
	for i, d := range g.Disposal {
		if d != gif.DisposalBackground {
			t.Errorf("frame %d disposal = %d, want %d", i, d, gif.DisposalBackground)
		}
	}
	for i, f := range g.Image {
		if f.Bounds() != seq.Bounds() {
			t.Errorf("frame %d bounds = %v, want %v", i, f.Bounds(), seq.Bounds())
		}
	}

	// Canvas 18×22, icon top-left at (4,6) on the first frame.
	first := g.Image[0]
	if _, _, _, a := first.At(0, 0).RGBA(); a != 0 {
		t.Errorf("background alpha = %d, want 0", a)
	}
	if first.ColorIndexAt(0, 0) != TransparentIndex {
		t.Errorf("background index = %d, want %d", first.ColorIndexAt(0, 0), TransparentIndex)
	}
	r, _, _, a := first.At(8, 10).RGBA()
	if a != 0xffff || r>>8 < 0xf0 {
		t.Errorf("icon pixel = %v, want opaque red", first.At(8, 10))
	}
}

func TestEncodeNonLooping(t *testing.T) {
	seq := &anim.Sequence{Frames: []*image.NRGBA{testIcon(4, 4)}, Delay: 5 * time.Millisecond}
	var buf bytes.Buffer
	if err := Encode(&buf, seq, nil); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}
	if g.LoopCount != -1 {
		t.Errorf("LoopCount = %d, want -1", g.LoopCount)
	}
	if g.Delay[0] != 1 {
		t.Errorf("Delay = %d, want 1", g.Delay[0])
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		seq  *anim.Sequence
	}{
		{"nil sequence", nil},
		{"no frames", &anim.Sequence{}},
		{"mismatched frames", &anim.Sequence{Frames: []*image.NRGBA{testIcon(4, 4), testIcon(5, 4)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Encode(&bytes.Buffer{}, tt.seq, nil)
			if !errors.Is(err, ErrEncode) {
				t.Errorf("Encode() error = %v, want ErrEncode", err)
			}
		})
	}
}

func TestEncodeFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.gif")
	seq := &anim.Sequence{Frames: []*image.NRGBA{testIcon(4, 4)}, Loop: true}
	if err := EncodeFile(path, seq, nil); err != nil {
		t.Fatalf("EncodeFile() error = %v", err)
	}
	g, err := LoadGIF(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadGIF() error = %v", err)
	}
	if len(g.Image) != 1 {
		t.Errorf("frames = %d, want 1", len(g.Image))
	}
}

func TestPalettedTransparentFrame(t *testing.T) {
	p := paletted(image.NewNRGBA(image.Rect(0, 0, 3, 3)), nil)
	if len(p.Palette) != 1 {
		t.Errorf("palette length = %d, want 1", len(p.Palette))
	}
	if p.ColorIndexAt(1, 1) != TransparentIndex {
		t.Errorf("index = %d, want %d", p.ColorIndexAt(1, 1), TransparentIndex)
	}
}

func TestCentiseconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int
	}{
		{0, 0},
		{time.Millisecond, 1},
		{100 * time.Millisecond, 10},
		{355 * time.Millisecond, 35},
	}
	for _, tt := range tests {
		if got := centiseconds(tt.in); got != tt.want {
			t.Errorf("centiseconds(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// ============================================================================
// Loading Tests
// ============================================================================

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	iconPath := filepath.Join(dir, "icon.png")
	writePNG(t, iconPath, testIcon(6, 5))

	t.Run("load from file", func(t *testing.T) {
		img, err := Load(context.Background(), iconPath)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if img.Bounds() != image.Rect(0, 0, 6, 5) {
			t.Errorf("bounds = %v", img.Bounds())
		}
		if got := img.NRGBAAt(0, 0); got.A != 0 {
			t.Errorf("border alpha = %d, want 0", got.A)
		}
	})

	t.Run("non-existent file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(dir, "missing.png"))
		if !errors.Is(err, ErrDecode) {
			t.Errorf("Load() error = %v, want ErrDecode", err)
		}
	})

	t.Run("invalid image file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.png")
		if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		_, err := Load(context.Background(), bad)
		if !errors.Is(err, ErrDecode) {
			t.Errorf("Load() error = %v, want ErrDecode", err)
		}
	})
}

func TestLoadFromURL(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testIcon(3, 3)); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/icon.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	img, err := Load(context.Background(), srv.URL+"/icon.png")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 3 {
		t.Errorf("width = %d, want 3", img.Bounds().Dx())
	}

	_, err = Load(context.Background(), srv.URL+"/missing.png")
	if !errors.Is(err, ErrDecode) || !strings.Contains(err.Error(), "404") {
		t.Errorf("Load() error = %v, want ErrDecode with status", err)
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"http URL", "http://example.com/icon.png", true},
		{"https URL", "https://example.com/icon.png", true},
		{"file path", "/path/to/icon.png", false},
		{"relative path", "icon.png", false},
		{"ftp URL", "ftp://example.com", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsURL(tt.input); got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Flattening Tests
// ============================================================================

func TestDimensions(t *testing.T) {
	tests := []struct {
		name       string
		images     []*image.Paletted
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "single frame",
			images:     []*image.Paletted{image.NewPaletted(image.Rect(0, 0, 64, 64), nil)},
			wantWidth:  64,
			wantHeight: 64,
		},
		{
			name: "frames with offset",
			images: []*image.Paletted{
				image.NewPaletted(image.Rect(0, 0, 32, 32), nil),
				image.NewPaletted(image.Rect(16, 16, 48, 48), nil),
			},
			wantWidth:  48,
			wantHeight: 48,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Dimensions(&gif.GIF{Image: tt.images})
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("Dimensions() = %d×%d, want %d×%d", w, h, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestFlattenDisposal(t *testing.T) {
	pal := color.Palette{color.Transparent, color.RGBA{R: 0xff, A: 0xff}, color.RGBA{G: 0xff, A: 0xff}}
	full := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
	for i := range full.Pix {
		full.Pix[i] = 1
	}
	patch := image.NewPaletted(image.Rect(2, 2, 4, 4), pal)
	for i := range patch.Pix {
		patch.Pix[i] = 2
	}

	tests := []struct {
		name     string
		disposal byte
		want     color.NRGBA // pixel (0,0) of the third frame
	}{
		{"none keeps drawing", gif.DisposalNone, color.NRGBA{R: 0xff, A: 0xff}},
		{"previous restores", gif.DisposalPrevious, color.NRGBA{R: 0xff, A: 0xff}},
		{"background clears", gif.DisposalBackground, color.NRGBA{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &gif.GIF{
				Image:     []*image.Paletted{full, patch, patch},
				Delay:     []int{20, 20, 20},
				Disposal:  []byte{tt.disposal, tt.disposal, tt.disposal},
				LoopCount: 0,
			}
			seq, err := Flatten(g)
			if err != nil {
				t.Fatalf("Flatten() error = %v", err)
			}
			if len(seq.Frames) != 3 {
				t.Fatalf("frames = %d, want 3", len(seq.Frames))
			}
			if seq.Delay != 200*time.Millisecond {
				t.Errorf("Delay = %v, want 200ms", seq.Delay)
			}
			if !seq.Loop {
				t.Error("Loop = false, want true")
			}
			if got := seq.Frames[2].NRGBAAt(0, 0); got != tt.want {
				t.Errorf("pixel (0,0) = %v, want %v", got, tt.want)
			}
			if got := seq.Frames[2].NRGBAAt(3, 3); got != (color.NRGBA{G: 0xff, A: 0xff}) {
				t.Errorf("patch pixel = %v, want green", got)
			}
		})
	}
}

func TestFlattenEmpty(t *testing.T) {
	if _, err := Flatten(&gif.GIF{}); !errors.Is(err, ErrDecode) {
		t.Errorf("Flatten() error = %v, want ErrDecode", err)
	}
}
