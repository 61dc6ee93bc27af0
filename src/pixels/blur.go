package pixels

import (
	"image"
	"math"
)

// Smoothing applied before the threshold search: a 7x7 Gaussian with sigma 1.
const (
	BlurSize  = 7
	BlurSigma = 1.0
)

// gaussianKernel returns a normalized 1-D Gaussian of odd length size.
func gaussianKernel(size int, sigma float64) []float64 {
	k := make([]float64, size)
	r := size / 2
	sum := 0.0
	for i := range k {
		d := float64(i - r)
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// reflect101 maps i into [0,n) mirroring around the edge pixels without repeating them
// (-1 -> 1, n -> n-2).
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

// Blur smooths a row-major w*h gray plane with a separable size x size Gaussian. Borders are
// reflected. The input is not modified.
func Blur(plane []uint8, w, h, size int, sigma float64) []uint8 {
	if w <= 0 || h <= 0 || len(plane) < w*h || size < 3 || sigma <= 0 {
		return append([]uint8(nil), plane...)
	}
	if size%2 == 0 {
		size++
	}
	k := gaussianKernel(size, sigma)
	r := size / 2

	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := plane[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			acc := 0.0
			for j, kv := range k {
				acc += kv * float64(row[reflect101(x+j-r, w)])
			}
			tmp[y*w+x] = acc
		}
	}
	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			acc := 0.0
			for j, kv := range k {
				acc += kv * tmp[reflect101(y+j-r, h)*w+x]
			}
			out[y*w+x] = uint8(math.Min(255, math.Max(0, math.Round(acc))))
		}
	}
	return out
}

// SmoothedLuminance returns the luminance plane of img after the BlurSize/BlurSigma Gaussian.
func SmoothedLuminance(img image.Image) []uint8 {
	b := img.Bounds()
	return Blur(Luminance(img), b.Dx(), b.Dy(), BlurSize, BlurSigma)
}
