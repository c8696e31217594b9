package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/labelscan/constants"
	"github.com/joseph-ayodele/labelscan/internal/document"
	"github.com/joseph-ayodele/labelscan/internal/extract"
)

// ProcessAmazonPDF runs every page of f through OCR. Records keep f's name,
// carry f's origin and report the page number of the origin file.
func (p *Processor) ProcessAmazonPDF(ctx context.Context, f document.File) ([]extract.PageRecord, error) {
	if p.ocr == nil {
		return nil, fmt.Errorf("ocr %s: no recognizer configured", f.Name)
	}
	start := time.Now()

	doc, err := p.loader.Open(ctx, f)
	if err != nil {
		return nil, err
	}
	defer func() { _ = doc.Close() }()

	total := doc.NumPages()
	records := make([]extract.PageRecord, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.pageChunk)
	for n := 1; n <= total; n++ {
		g.Go(func() error {
			r, err := p.scanPage(gctx, doc, f, n)
			if err != nil {
				return err
			}
			records[n-1] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ocr %s: %w", f.Name, err)
	}

	p.logger.Info("pdf.ocr.ok",
		"file", f.Name,
		"origin", f.OriginName(),
		"pages", total,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}

func (p *Processor) scanPage(ctx context.Context, doc document.Document, f document.File, n int) (extract.PageRecord, error) {
	p.report(NoPercent, fmt.Sprintf("AI Scanning: %s (P%d)", f.Name, n))

	fields, err := p.ocr.PerformOCR(ctx, doc, n)
	if err != nil {
		return extract.PageRecord{}, err
	}

	src := fields.SourceID
	if src == "" {
		src = fields.OrderID
	}
	courier := fields.Courier
	if courier == "" {
		courier = constants.CourierAmazon
	}

	r := extract.NewRecord(f.SourcePage(n), f.Name, f.OriginName(), extract.Fields{
		SourceID: src,
		AWB:      fields.AWB,
		Courier:  courier,
	})
	r.IsAmazon = true
	r.OCR = true
	return r, nil
}
