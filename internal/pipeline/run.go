package pipeline

import (
	"context"
	"fmt"

	"github.com/joseph-ayodele/labelscan/internal/aggregate"
	"github.com/joseph-ayodele/labelscan/internal/document"
	"github.com/joseph-ayodele/labelscan/internal/extract"
)

// Run extracts files into session: text path first, then the OCR path for
// every derived sub-document when scanOCR is set. The session is only
// updated once the text path of the whole batch succeeded.
func (p *Processor) Run(ctx context.Context, session *aggregate.Session, files []document.File, scanOCR bool) (Batch, error) {
	batch, err := p.ProcessMultiplePDFs(ctx, files)
	if err != nil {
		return Batch{}, err
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	session.AddFiles(names...)
	session.Append(batch.NormalData...)

	if scanOCR && len(batch.AmazonPDFs) > 0 {
		if err := p.ScanOCR(ctx, session, batch.AmazonPDFs); err != nil {
			return batch, err
		}
	}
	return batch, nil
}

// ScanOCR runs files through the OCR path and, if every file succeeds,
// replaces the session records of their origin files with the OCR records.
func (p *Processor) ScanOCR(ctx context.Context, session *aggregate.Session, files []document.File) error {
	var (
		rescanned []extract.PageRecord
		origins   []string
	)
	for i, f := range files {
		p.report(float64(i)/float64(len(files))*100, fmt.Sprintf("Scanning %s...", f.Name))
		records, err := p.ProcessAmazonPDF(ctx, f)
		if err != nil {
			return err
		}
		rescanned = append(rescanned, records...)
		origins = append(origins, f.OriginName())
	}

	session.Replace(origins, rescanned)
	p.report(100, fmt.Sprintf("Scanned %d files", len(files)))
	p.logger.Info("session.ocr.merged", "session_id", session.ID, "files", len(files), "records", len(rescanned))
	return nil
}
