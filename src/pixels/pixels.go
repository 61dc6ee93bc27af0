// Package pixels decodes images and turns them into intensity sample sets and histograms.
package pixels

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrNoPixels is returned when a decoded image yields no samples.
var ErrNoPixels = errors.New("image has no pixels")

// DecodeError reports an image that could not be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image %q: %v (expected a readable JPEG, PNG, GIF, BMP, TIFF or WebP file)", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode opens path and decodes it with any registered format.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}
	return img, format, nil
}

// Flatten returns every channel sample of img in row-major order. Single-channel gray images give
// one sample per pixel; everything else gives R,G,B per pixel with alpha dropped.
func Flatten(img image.Image) []uint8 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n <= 0 {
		return nil
	}
	switch src := img.(type) {
	case *image.Gray:
		out := make([]uint8, 0, n)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			out = append(out, src.Pix[off:off+b.Dx()]...)
		}
		return out
	case *image.Gray16:
		out := make([]uint8, 0, n)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				out = append(out, uint8(src.Gray16At(x, y).Y>>8))
			}
		}
		return out
	case *image.NRGBA:
		out := make([]uint8, 0, n*3)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			row := src.Pix[off : off+4*b.Dx()]
			for i := 0; i < len(row); i += 4 {
				out = append(out, row[i], row[i+1], row[i+2])
			}
		}
		return out
	}
	out := make([]uint8, 0, n*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out = append(out, c.R, c.G, c.B)
		}
	}
	return out
}

// Luminance returns one gray sample per pixel in row-major order.
func Luminance(img image.Image) []uint8 {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	if g, ok := img.(*image.Gray); ok {
		return Flatten(g)
	}
	out := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
		}
	}
	return out
}
