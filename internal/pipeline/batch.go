package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/labelscan/constants"
	"github.com/joseph-ayodele/labelscan/internal/document"
	"github.com/joseph-ayodele/labelscan/internal/extract"
)

// Batch is the text-path outcome of a multi-file run.
type Batch struct {
	NormalData []extract.PageRecord
	// AmazonPDFs holds one derived document per input file that had pages
	// flagged for the OCR path.
	AmazonPDFs []document.File
}

// ProcessMultiplePDFs extracts files in windows; files in a window run
// together and windows run in order. Any failure aborts the whole batch.
func (p *Processor) ProcessMultiplePDFs(ctx context.Context, files []document.File) (Batch, error) {
	var (
		mu    sync.Mutex
		batch Batch
	)

	for i := 0; i < len(files); i += p.fileWindow {
		window := files[i:min(i+p.fileWindow, len(files))]
		percent := float64(i) / float64(len(files)) * 100

		g, gctx := errgroup.WithContext(ctx)
		for _, f := range window {
			g.Go(func() error {
				p.report(percent, fmt.Sprintf("Processing %s...", f.Name))

				records, err := p.ProcessPDF(gctx, f)
				if err != nil {
					return err
				}

				var sub *document.File
				if pages := amazonPages(records); len(pages) > 0 {
					derived, err := p.loader.ExtractPages(gctx, f, pages, constants.AmazonPrefix)
					if err != nil {
						return err
					}
					sub = &derived
				}

				mu.Lock()
				defer mu.Unlock()
				batch.NormalData = append(batch.NormalData, records...)
				if sub != nil {
					batch.AmazonPDFs = append(batch.AmazonPDFs, *sub)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			p.logger.Error("batch aborted", "files", len(files), "window_start", i, "error", err)
			return Batch{}, err
		}
	}

	p.report(100, fmt.Sprintf("Processed %d files", len(files)))
	return batch, nil
}
