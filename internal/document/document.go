// Package document is the boundary to PDF parsing and rendering: text layer
// via ledongthuc/pdf, page rasters via pdftoppm and sub-documents via pdfcpu.
package document

import (
	"context"
	"image"
)

// File is one fully read input document.
type File struct {
	Name    string // display name, e.g. "batch1.pdf" or "amazon_batch1.pdf"
	Origin  string // name of the user-supplied file these bytes came from
	Path    string // on-disk location when known
	Data    []byte
	HashHex string

	// SourcePages maps page i+1 of a derived document back to its page in Origin.
	SourcePages []int
}

// SourcePage translates a page number of f into the matching page of the origin file.
func (f File) SourcePage(page int) int {
	if page >= 1 && page <= len(f.SourcePages) {
		return f.SourcePages[page-1]
	}
	return page
}

// OriginName returns Origin, defaulting to Name for user-supplied files.
func (f File) OriginName() string {
	if f.Origin != "" {
		return f.Origin
	}
	return f.Name
}

// Document is an opened PDF. Page numbers are 1-based.
type Document interface {
	NumPages() int
	PageText(page int) (string, error)
	Render(ctx context.Context, page int, scale float64) (image.Image, error)
	Close() error
}

// Loader opens documents and derives page subsets from them.
type Loader interface {
	Open(ctx context.Context, f File) (Document, error)
	ExtractPages(ctx context.Context, f File, pages []int, prefix string) (File, error)
}
