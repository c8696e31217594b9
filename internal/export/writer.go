// Package export renders session results and reconciliation outcomes into
// the files a user takes away: workbooks, CSV, plain-text lists and a JSON report.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/labelscan/internal/aggregate"
	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/extract"
	"github.com/joseph-ayodele/labelscan/internal/reconcile"
	"github.com/joseph-ayodele/labelscan/internal/sheet"
)

// File names written into the output directory.
const (
	FileSourceIDs     = "source_ids.txt"
	FileUpdatedMaster = "Updated_Packing_Master.xlsx"
	FilePendingXLSX   = "Pending_Orders.xlsx"
	FilePendingText   = "pending_orders.txt"
	FileReport        = "report.json"
)

// Writer writes artifacts into one directory.
type Writer struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, logger: logger, now: time.Now}
}

func (w *Writer) Dir() string { return w.dir }

// WriteExtraction writes the extraction workbook, its CSV twin and the source
// id list. It returns the paths written.
func (w *Writer) WriteExtraction(ctx context.Context, records []extract.PageRecord) ([]string, error) {
	start := time.Now()
	now := w.now()
	base := "shipping_data_" + now.Format("2006-01-02")
	sourceIDs := aggregate.SourceIDs(records)

	xlsx, err := ExtractionXLSX(records, sourceIDs, now)
	if err != nil {
		return nil, err
	}
	csv, err := ExtractionCSV(records)
	if err != nil {
		return nil, err
	}

	files := []struct {
		name string
		data []byte
	}{
		{base + ".xlsx", xlsx},
		{base + ".csv", csv},
		{FileSourceIDs, []byte(SourceIDsText(sourceIDs))},
	}
	var paths []string
	for _, f := range files {
		p, err := w.write(f.name, f.data)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}

	common.LoggerFromContext(ctx, w.logger).Info("export.xlsx.ok",
		"dir", w.dir,
		"rows", len(records),
		"source_ids", len(sourceIDs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return paths, nil
}

// WriteReconciliation writes the annotated master and, when there are pending
// orders, the pending workbook and text blob.
func (w *Writer) WriteReconciliation(ctx context.Context, packing []sheet.Row, o *reconcile.Outcome) ([]string, error) {
	master, err := AnnotatedMasterXLSX(packing)
	if err != nil {
		return nil, err
	}
	p, err := w.write(FileUpdatedMaster, master)
	if err != nil {
		return nil, err
	}
	paths := []string{p}

	if len(o.PendingIDs) > 0 {
		pending, err := PendingXLSX(o.PendingIDs)
		if err != nil {
			return paths, err
		}
		for _, f := range []struct {
			name string
			data []byte
		}{
			{FilePendingXLSX, pending},
			{FilePendingText, []byte(PendingText(o.PendingIDs))},
		} {
			p, err := w.write(f.name, f.data)
			if err != nil {
				return paths, err
			}
			paths = append(paths, p)
		}
	}

	common.LoggerFromContext(ctx, w.logger).Info("export.reconcile.ok",
		"dir", w.dir,
		"matched", o.Matched,
		"pending", o.Pending,
		"unrecognized", len(o.Unrecognized),
	)
	return paths, nil
}

// WriteReport validates and writes report.json.
func (w *Writer) WriteReport(r Report) (string, error) {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = w.now().UTC()
	}
	data, err := MarshalReport(r)
	if err != nil {
		return "", common.NewAppError(common.CodeExport, "invalid run report", err)
	}
	return w.write(FileReport, data)
}

func (w *Writer) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", common.NewAppError(common.CodeExport, fmt.Sprintf("create %s", w.dir), err)
	}
	p := filepath.Join(w.dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", common.NewAppError(common.CodeExport, fmt.Sprintf("write %s", name), err)
	}
	return p, nil
}
