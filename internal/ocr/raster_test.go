package ocr

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"slices"
	"testing"
)

type pngRunner struct {
	args []string
	err  error
}

func (r *pngRunner) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	r.args = args
	if r.err != nil {
		return nil, []byte("bad pdf"), r.err
	}
	prefix := args[len(args)-1]
	f, err := os.Create(prefix + ".png")
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return nil, nil, png.Encode(f, image.NewGray(image.Rect(0, 0, 3, 2)))
}

func TestRasterizerRenderPage(t *testing.T) {
	r := &pngRunner{}
	img, err := Rasterizer{Runner: r}.RenderPage(context.Background(), "in.pdf", 2, 3.2)
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	for _, want := range [][]string{{"-r", "230"}, {"-f", "2"}, {"-l", "2"}} {
		i := slices.Index(r.args, want[0])
		if i < 0 || i+1 >= len(r.args) || r.args[i+1] != want[1] {
			t.Errorf("args %v missing %v", r.args, want)
		}
	}
}

func TestRasterizerRenderPageError(t *testing.T) {
	boom := errors.New("exit 1")
	_, err := Rasterizer{Runner: &pngRunner{err: boom}}.RenderPage(context.Background(), "in.pdf", 1, 1)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped runner error", err)
	}
}
