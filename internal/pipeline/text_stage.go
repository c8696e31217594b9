package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/labelscan/internal/document"
	"github.com/joseph-ayodele/labelscan/internal/extract"
)

// ProcessPDF extracts every page of f from its text layer. Pages are read in
// chunks; chunks run one after another and the pages of a chunk run together.
func (p *Processor) ProcessPDF(ctx context.Context, f document.File) ([]extract.PageRecord, error) {
	start := time.Now()

	doc, err := p.loader.Open(ctx, f)
	if err != nil {
		return nil, err
	}
	defer func() { _ = doc.Close() }()

	total := doc.NumPages()
	records := make([]extract.PageRecord, 0, total)

	for first := 1; first <= total; first += p.pageChunk {
		last := min(first+p.pageChunk-1, total)
		chunk := make([]extract.PageRecord, last-first+1)

		g, gctx := errgroup.WithContext(ctx)
		for n := first; n <= last; n++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				text, err := doc.PageText(n)
				if err != nil {
					return err
				}
				chunk[n-first] = extract.ExtractPage(n, text, f.Name)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}

		records = append(records, chunk...)
		p.report(NoPercent, fmt.Sprintf("Reading %s: %d/%d", f.Name, last, total))
	}

	p.logger.Info("pdf.text.ok",
		"file", f.Name,
		"pages", total,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}

// amazonPages lists the pages flagged for the OCR path, in page order.
func amazonPages(records []extract.PageRecord) []int {
	var pages []int
	for _, r := range records {
		if r.IsAmazon {
			pages = append(pages, r.Page)
		}
	}
	return pages
}
