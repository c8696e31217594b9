// Package pipeline orchestrates page extraction across a batch of label PDFs.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/labelscan/internal/document"
	"github.com/joseph-ayodele/labelscan/internal/extract"
	"github.com/joseph-ayodele/labelscan/internal/ocr"
)

// PageOCR recognizes identifiers on a rendered page.
type PageOCR interface {
	PerformOCR(ctx context.Context, doc ocr.PageRenderer, page int) (extract.Fields, error)
}

// Processor runs the text path and the OCR path.
type Processor struct {
	loader     document.Loader
	ocr        PageOCR
	logger     *slog.Logger
	progress   ProgressFunc
	fileWindow int
	pageChunk  int
}

type Option func(*Processor)

// WithFileWindow sets how many files are extracted at once.
func WithFileWindow(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.fileWindow = n
		}
	}
}

// WithPageChunk sets how many pages of one file are in flight at once.
func WithPageChunk(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.pageChunk = n
		}
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(p *Processor) { p.progress = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewProcessor(loader document.Loader, pageOCR PageOCR, opts ...Option) *Processor {
	p := &Processor{
		loader:     loader,
		ocr:        pageOCR,
		logger:     slog.Default(),
		fileWindow: 3,
		pageChunk:  15,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}
