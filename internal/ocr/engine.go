package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/joseph-ayodele/labelscan/internal/common"
)

// Engine is one long-lived recognition instance. Engines are not safe for
// concurrent use; the Pool gives each worker its own.
type Engine interface {
	Recognize(ctx context.Context, img []byte) (string, error)
	Close() error
}

// EngineFactory builds and warms up one Engine.
type EngineFactory func(ctx context.Context) (Engine, error)

// TesseractEngine recognizes text with a dedicated gosseract client.
type TesseractEngine struct {
	client *gosseract.Client
}

// NewTesseractFactory returns a factory producing pre-warmed tesseract engines.
func NewTesseractFactory(language, tessdataDir string) EngineFactory {
	return func(ctx context.Context) (Engine, error) {
		c := gosseract.NewClient()
		if tessdataDir != "" {
			if err := c.SetTessdataPrefix(tessdataDir); err != nil {
				_ = c.Close()
				return nil, common.DependencyError("tessdata "+tessdataDir, err)
			}
		}
		if language != "" {
			if err := c.SetLanguage(language); err != nil {
				_ = c.Close()
				return nil, fmt.Errorf("set language: %w", err)
			}
		}
		e := &TesseractEngine{client: c}
		if err := e.warmUp(ctx); err != nil {
			_ = c.Close()
			return nil, common.DependencyError("tesseract", err)
		}
		return e, nil
	}
}

// warmUp forces model loading by recognizing a blank tile.
func (e *TesseractEngine) warmUp(ctx context.Context) error {
	tile := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range tile.Pix {
		tile.Pix[i] = color.White.Y
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, tile); err != nil {
		return err
	}
	_, err := e.Recognize(ctx, buf.Bytes())
	return err
}

func (e *TesseractEngine) Recognize(ctx context.Context, img []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := e.client.SetImageFromBytes(img); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

func (e *TesseractEngine) Close() error {
	return e.client.Close()
}
