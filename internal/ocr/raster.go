package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// PointsPerInch is the PDF user-space unit; scale 1.0 renders at this DPI.
const PointsPerInch = 72

// Rasterizer renders single PDF pages to images with pdftoppm.
type Rasterizer struct {
	Runner Runner
	Bin    string // binary name or absolute path; if empty -> "pdftoppm"
}

// DPIForScale converts a viewport magnification into a render resolution.
func DPIForScale(scale float64) int {
	if scale <= 0 {
		scale = 1
	}
	return int(math.Round(PointsPerInch * scale))
}

// RenderPage renders 1-based page of the PDF at path.
func (r Rasterizer) RenderPage(ctx context.Context, path string, page int, scale float64) (image.Image, error) {
	bin := r.Bin
	if bin == "" {
		bin = "pdftoppm"
	}
	tmpDir, err := os.MkdirTemp("", "labelscan-pp-*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	prefix := filepath.Join(tmpDir, "page")
	n := strconv.Itoa(page)
	// pdftoppm -png -r <dpi> -f N -l N -singlefile <in.pdf> <tmp/page>
	_, errb, err := r.Runner.Run(ctx, bin,
		"-png",
		"-r", strconv.Itoa(DPIForScale(scale)),
		"-f", n, "-l", n,
		"-singlefile",
		path, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm page %d: %w: %s", page, err, truncate(string(errb), 512))
	}

	f, err := os.Open(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm produced no image for page %d: %w", page, err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}
	return img, nil
}
