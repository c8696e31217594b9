package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/labelscan/internal/extract"
)

// PageRenderer rasterizes one 1-based page at a viewport scale.
type PageRenderer interface {
	Render(ctx context.Context, page int, scale float64) (image.Image, error)
}

// Recognizer turns one encoded image into plain text.
type Recognizer interface {
	Recognize(ctx context.Context, img []byte) (string, error)
}

// Config tunes the OCR path.
type Config struct {
	Scale    float64 // viewport magnification, default 3.2
	Contrast float64 // contrast factor applied before grayscale, default 1.4
}

// Adapter runs render, preprocess, recognize and parse for a single page.
type Adapter struct {
	cfg        Config
	recognizer Recognizer
	logger     *slog.Logger
}

func NewAdapter(cfg Config, r Recognizer, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 3.2
	}
	if cfg.Contrast <= 0 {
		cfg.Contrast = 1.4
	}
	return &Adapter{cfg: cfg, recognizer: r, logger: logger}
}

// PerformOCR returns the identifiers found on page. Renderer and engine
// failures are returned; an unreadable label is not.
func (a *Adapter) PerformOCR(ctx context.Context, doc PageRenderer, page int) (extract.Fields, error) {
	start := time.Now()

	img, err := doc.Render(ctx, page, a.cfg.Scale)
	if err != nil {
		return extract.Fields{}, fmt.Errorf("render page %d: %w", page, err)
	}

	filtered := Preprocess(img, a.cfg.Contrast)
	var buf bytes.Buffer
	if err := png.Encode(&buf, filtered); err != nil {
		return extract.Fields{}, fmt.Errorf("encode page %d: %w", page, err)
	}

	text, err := a.recognizer.Recognize(ctx, buf.Bytes())
	if err != nil {
		return extract.Fields{}, fmt.Errorf("recognize page %d: %w", page, err)
	}

	f := ParseText(text)
	a.logger.Debug("ocr page parsed",
		"page", page,
		"chars", len(text),
		"awb", f.AWB,
		"source_id", f.SourceID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return f, nil
}
