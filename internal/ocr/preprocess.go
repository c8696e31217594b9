package ocr

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Rec. 709 luma weights, as used by the CSS grayscale() filter.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Preprocess applies contrast(c) followed by grayscale(1) and writes the
// result into a new buffer; src is left untouched.
func Preprocess(src image.Image, contrast float64) *image.Gray {
	b := src.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, src, b.Min, draw.Src)

	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := rgba.RGBAAt(x, y)
			r := adjustContrast(c.R, contrast)
			g := adjustContrast(c.G, contrast)
			bl := adjustContrast(c.B, contrast)
			l := lumaR*r + lumaG*g + lumaB*bl
			out.SetGray(x, y, color.Gray{Y: clamp8(l)})
		}
	}
	return out
}

// adjustContrast maps v through (v-0.5)*c+0.5 in unit space and returns the 0..255 value.
func adjustContrast(v uint8, c float64) float64 {
	f := (float64(v)/255-0.5)*c + 0.5
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f * 255
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
