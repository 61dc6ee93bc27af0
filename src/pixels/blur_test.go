package pixels

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestGaussianKernel(t *testing.T) {
	k := gaussianKernel(BlurSize, BlurSigma)
	if len(k) != 7 {
		t.Fatalf("len=%d want 7", len(k))
	}
	sum := 0.0
	for i, v := range k {
		sum += v
		if math.Abs(v-k[len(k)-1-i]) > 1e-15 {
			t.Fatalf("kernel not symmetric: %v", k)
		}
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("kernel sum=%v want 1", sum)
	}
	if k[3] <= k[2] || k[2] <= k[1] || k[1] <= k[0] {
		t.Fatalf("kernel should peak at the centre: %v", k)
	}
}

func TestReflect101(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{-1, 5, 1}, {-3, 5, 3}, {0, 5, 0}, {4, 5, 4}, {5, 5, 3}, {7, 5, 1}, {-2, 2, 0}, {3, 1, 0},
	}
	for _, c := range cases {
		if got := reflect101(c.i, c.n); got != c.want {
			t.Errorf("reflect101(%d,%d)=%d want %d", c.i, c.n, got, c.want)
		}
	}
}

func TestBlur_UniformPlaneUnchanged(t *testing.T) {
	w, h := 9, 4
	plane := make([]uint8, w*h)
	for i := range plane {
		plane[i] = 123
	}
	out := Blur(plane, w, h, BlurSize, BlurSigma)
	for i, v := range out {
		if v != 123 {
			t.Fatalf("pixel %d=%d want 123", i, v)
		}
	}
}

func TestBlur_SpreadsSpikeAndKeepsInput(t *testing.T) {
	w, h := 11, 11
	plane := make([]uint8, w*h)
	plane[5*w+5] = 255
	out := Blur(plane, w, h, BlurSize, BlurSigma)
	if plane[5*w+5] != 255 || plane[5*w+4] != 0 {
		t.Fatalf("input modified")
	}
	c := out[5*w+5]
	if c == 0 || c >= 255 {
		t.Fatalf("centre=%d should be attenuated", c)
	}
	if out[5*w+4] == 0 || out[5*w+4] >= c {
		t.Fatalf("neighbour=%d should be lit but below centre %d", out[5*w+4], c)
	}
	if out[0] != 0 {
		t.Fatalf("corner beyond kernel radius=%d want 0", out[0])
	}
}

// noisyTwoTone builds a 64x64 gray image: 60 on the left half, 100 on the right, with 5% salt
// (255) and 5% pepper (0) on a fixed pattern.
func noisyTwoTone() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(60)
			if x >= 32 {
				v = 100
			}
			switch (7*x + 13*y) % 20 {
			case 0:
				v = 255
			case 10:
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestOtsuThreshold_SmoothingSuppressesNoise(t *testing.T) {
	img := noisyTwoTone()

	raw, err := NewHistogram(Luminance(img))
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	// Salt pixels pull the unsmoothed split above both tones.
	if got := OtsuThreshold(raw); got < 100 {
		t.Fatalf("unsmoothed threshold=%d, expected the salt spike to dominate (>=100)", got)
	}

	smooth, err := NewHistogram(SmoothedLuminance(img))
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	got := OtsuThreshold(smooth)
	if got < 70 || got >= 100 {
		t.Fatalf("smoothed threshold=%d should fall between the two tones", got)
	}
}
