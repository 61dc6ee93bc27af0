package pixels

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writePNG encodes img into a temp file and returns its path.
func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return p
}

func TestDecodeAndFlatten_RGB(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: uint8(10 * x), G: uint8(20 * y), B: 200, A: 255})
		}
	}
	img, format, err := Decode(writePNG(t, src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "png" {
		t.Fatalf("format=%q", format)
	}
	s := Flatten(img)
	if len(s) != 4*3*3 {
		t.Fatalf("samples=%d want 36", len(s))
	}
	// pixel (1,2): R=10 G=40 B=200
	off := (2*4 + 1) * 3
	if s[off] != 10 || s[off+1] != 40 || s[off+2] != 200 {
		t.Fatalf("pixel (1,2) = %v", s[off:off+3])
	}
}

func TestFlatten_GrayIsSingleChannel(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 5, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 25)
	}
	img, _, err := Decode(writePNG(t, src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	s := Flatten(img)
	if len(s) != 10 {
		t.Fatalf("samples=%d want 10", len(s))
	}
	for i, v := range s {
		if v != uint8(i*25) {
			t.Fatalf("s[%d]=%d want %d", i, v, i*25)
		}
	}
}

func TestFlatten_SubImageRespectsBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	sub := src.SubImage(image.Rect(1, 1, 3, 2)).(*image.NRGBA)
	if got := len(Flatten(sub)); got != 2*1*3 {
		t.Fatalf("samples=%d want 6", got)
	}
	if Flatten(image.NewRGBA(image.Rect(0, 0, 0, 0))) != nil {
		t.Fatalf("expected nil samples for empty image")
	}
}

func TestDecode_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.jpg")
	_, _, err := Decode(missing)
	var de *DecodeError
	if !errors.As(err, &de) || de.Path != missing {
		t.Fatalf("expected DecodeError for missing file, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}

	junk := filepath.Join(t.TempDir(), "junk.jpg")
	if err := os.WriteFile(junk, []byte("definitely not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err = Decode(junk)
	if !errors.As(err, &de) || !errors.Is(err, image.ErrFormat) {
		t.Fatalf("expected DecodeError wrapping ErrFormat, got %v", err)
	}
}

func TestHistogram_DensitySumsToOne(t *testing.T) {
	samples := make([]uint8, 0, 1000)
	for i := 0; i < 1000; i++ {
		samples = append(samples, uint8((i*37)%256))
	}
	h, err := NewHistogram(samples)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if math.Abs(h.Area()-1) > 1e-9 {
		t.Fatalf("area=%v want 1", h.Area())
	}
	if h.Total != 1000 {
		t.Fatalf("total=%d", h.Total)
	}
	sum := 0
	for _, c := range h.Counts {
		sum += c
	}
	if sum != 1000 {
		t.Fatalf("counts sum=%d", sum)
	}
}

func TestHistogram_Empty(t *testing.T) {
	if _, err := NewHistogram(nil); !errors.Is(err, ErrNoPixels) {
		t.Fatalf("expected ErrNoPixels, got %v", err)
	}
}

func TestHistogram_EdgeBins(t *testing.T) {
	h, err := NewHistogram([]uint8{0, 0, 255, 128})
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if h.Counts[0] != 2 || h.Counts[255] != 1 || h.Counts[128] != 1 {
		t.Fatalf("unexpected counts: 0=%d 128=%d 255=%d", h.Counts[0], h.Counts[128], h.Counts[255])
	}
	if h.Density[0] != 0.5 || h.MaxDensity() != 0.5 {
		t.Fatalf("density[0]=%v max=%v", h.Density[0], h.MaxDensity())
	}
}

func TestOtsuThreshold_Bimodal(t *testing.T) {
	var samples []uint8
	for i := 0; i < 500; i++ {
		samples = append(samples, uint8(40+i%21))  // 40..60
		samples = append(samples, uint8(190+i%21)) // 190..210
	}
	h, _ := NewHistogram(samples)
	th := OtsuThreshold(h)
	if th < 60 || th >= 190 {
		t.Fatalf("otsu threshold=%d, want within [60,190)", th)
	}
}

func TestOtsuThreshold_Degenerate(t *testing.T) {
	if OtsuThreshold(Histogram{}) != 0 {
		t.Fatalf("empty histogram should give 0")
	}
	h, _ := NewHistogram([]uint8{77, 77, 77})
	if th := OtsuThreshold(h); th != 0 {
		t.Fatalf("single-valued histogram threshold=%d want 0", th)
	}
}

func TestClampThreshold(t *testing.T) {
	cases := []struct{ t, off, want int }{
		{138, 0, 138}, {158, -20, 138}, {10, -20, 0}, {250, 20, 255},
	}
	for _, c := range cases {
		if got := ClampThreshold(c.t, c.off); got != c.want {
			t.Errorf("ClampThreshold(%d,%d)=%d want %d", c.t, c.off, got, c.want)
		}
	}
}

func TestLuminance(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{255, 255, 255, 255})
	src.Set(1, 0, color.RGBA{0, 0, 0, 255})
	l := Luminance(src)
	if len(l) != 2 || l[0] != 255 || l[1] != 0 {
		t.Fatalf("luminance=%v", l)
	}
}
