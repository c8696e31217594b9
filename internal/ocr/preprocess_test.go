package ocr

import (
	"image"
	"image/color"
	"testing"
)

func TestPreprocess(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 1))
	src.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	src.SetRGBA(1, 0, color.RGBA{0, 0, 0, 255})
	src.SetRGBA(2, 0, color.RGBA{128, 128, 128, 255})
	src.SetRGBA(3, 0, color.RGBA{255, 0, 0, 255})

	out := Preprocess(src, 1.4)

	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), src.Bounds())
	}
	want := []uint8{255, 0, 128, 54}
	for x, w := range want {
		if got := out.GrayAt(x, 0).Y; got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}
	if c := src.RGBAAt(3, 0); c.G != 0 || c.R != 255 {
		t.Errorf("source buffer modified: %v", c)
	}
}

func TestDPIForScale(t *testing.T) {
	if got := DPIForScale(3.2); got != 230 {
		t.Errorf("DPIForScale(3.2) = %d, want 230", got)
	}
	if got := DPIForScale(0); got != 72 {
		t.Errorf("DPIForScale(0) = %d, want 72", got)
	}
}
