// Package extraction runs label batches end to end: ingest, extract, merge
// and export.
package extraction

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joseph-ayodele/labelscan/internal/aggregate"
	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/document"
	"github.com/joseph-ayodele/labelscan/internal/export"
	"github.com/joseph-ayodele/labelscan/internal/extract"
	"github.com/joseph-ayodele/labelscan/internal/ingest"
	"github.com/joseph-ayodele/labelscan/internal/ocr"
	"github.com/joseph-ayodele/labelscan/internal/pipeline"
)

// Mode selects how a batch goes through the pipeline.
type Mode string

const (
	ModeExtract Mode = "extract"  // text path, OCR for pages classified as Amazon
	ModeText    Mode = "text"     // text path only
	ModeScanOCR Mode = "scan-ocr" // text path, then every selected file re-read by OCR
)

// Request describes one batch.
type Request struct {
	Paths      []string
	Mode       Mode
	SkipHidden bool
	OutDir     string // overrides the service default when set
	Command    string // recorded in the report; defaults to Mode
}

// Result is what a batch produced.
type Result struct {
	SessionID string
	Files     []string
	Records   []extract.PageRecord
	Stats     aggregate.Stats
	UniqueIDs []string
	SourceIDs []string
	Derived   []document.File
	Artifacts []string
	Ingest    ingest.DirStats
}

// Service handles extraction business logic.
type Service struct {
	ingestor ingest.Ingestor
	proc     *pipeline.Processor
	outDir   string
	report   bool
	closer   io.Closer
	logger   *slog.Logger
}

// NewService creates a new extraction service. closer, when non-nil, is
// released by Close (the OCR pool in production).
func NewService(ing ingest.Ingestor, proc *pipeline.Processor, outDir string, report bool, closer io.Closer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{ingestor: ing, proc: proc, outDir: outDir, report: report, closer: closer, logger: logger}
}

// NewFromConfig wires the production stack: filesystem ingest, the PDF
// loader with pdftoppm rendering, and a lazily started tesseract pool.
func NewFromConfig(cfg *common.Config, progress pipeline.ProgressFunc, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	raster := ocr.Rasterizer{Runner: ocr.NewExecRunner(logger), Bin: cfg.OCR.PdftoppmBin}
	loader := document.NewPDFLoader(raster, logger)

	pool := ocr.NewPool(
		ocr.NewTesseractFactory(cfg.OCR.Language, cfg.OCR.TessdataDir),
		ocr.WithPoolSize(cfg.OCR.MaxWorkers),
		ocr.WithPoolLogger(logger),
	)
	adapter := ocr.NewAdapter(ocr.Config{Scale: cfg.OCR.RenderScale, Contrast: cfg.OCR.Contrast}, pool, logger)

	proc := pipeline.NewProcessor(loader, &checkedOCR{next: adapter, bin: cfg.OCR.PdftoppmBin},
		pipeline.WithFileWindow(cfg.Pipeline.FileWindow),
		pipeline.WithPageChunk(cfg.Pipeline.PageChunk),
		pipeline.WithProgress(progress),
		pipeline.WithLogger(logger),
	)
	return NewService(ingest.NewFSIngestor(logger), proc, cfg.Export.OutDir, cfg.Export.Report, pool, logger)
}

// Run processes one batch and writes its artifacts.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Mode == "" {
		req.Mode = ModeExtract
	}
	session := aggregate.NewSession()
	if id := common.RunIDFromContext(ctx); id != "" {
		session.ID = id
	}
	ctx = common.WithRunID(ctx, session.ID)
	logger := common.LoggerFromContext(ctx, s.logger).With("run_id", session.ID)
	ctx = common.WithLogger(ctx, logger)

	files, stats, err := s.ingestor.Collect(ctx, req.Paths, req.SkipHidden)
	if err != nil {
		logger.Error("extraction.ingest.failed", "error", err)
		return nil, err
	}
	logger.Info("extraction.started", "mode", string(req.Mode), "files", len(files), "deduplicated", stats.Deduplicated)

	batch, err := s.proc.Run(ctx, session, files, req.Mode == ModeExtract)
	if err != nil {
		logger.Error("extraction.failed", "error", err)
		return nil, common.ExtractionError("batch aborted", err)
	}
	if req.Mode == ModeScanOCR {
		if err := s.proc.ScanOCR(ctx, session, files); err != nil {
			logger.Error("extraction.ocr.failed", "error", err)
			return nil, common.ExtractionError("ocr scan aborted", err)
		}
	}

	records := session.Records()
	res := &Result{
		SessionID: session.ID,
		Files:     session.Files(),
		Records:   records,
		Stats:     aggregate.Summarize(records),
		UniqueIDs: aggregate.UniqueIDs(records),
		SourceIDs: aggregate.SourceIDs(records),
		Derived:   batch.AmazonPDFs,
		Ingest:    stats,
	}

	outDir := req.OutDir
	if outDir == "" {
		outDir = s.outDir
	}
	if len(records) > 0 {
		w := export.NewWriter(outDir, logger)
		if res.Artifacts, err = w.WriteExtraction(ctx, records); err != nil {
			return res, err
		}
		if s.report {
			command := req.Command
			if command == "" {
				command = string(req.Mode)
				if req.Mode == ModeText {
					command = string(ModeExtract)
				}
			}
			p, err := w.WriteReport(export.Report{
				RunID:     session.ID,
				Command:   command,
				StartedAt: session.StartedAt,
				Files:     res.Files,
				Stats:     &res.Stats,
				UniqueIDs: res.UniqueIDs,
				Artifacts: res.Artifacts,
			})
			if err != nil {
				return res, err
			}
			res.Artifacts = append(res.Artifacts, p)
		}
	}

	logger.Info("extraction.done",
		"records", res.Stats.Total,
		"with_source_id", res.Stats.WithSourceID,
		"awb_only", res.Stats.AWBOnly,
		"manual_review", res.Stats.ManualReview,
		"unique_ids", len(res.UniqueIDs),
		"elapsed_ms", time.Since(session.StartedAt).Milliseconds(),
	)
	return res, nil
}

// HandleFile processes one file dropped into a watched directory. Artifacts
// go to a sub-directory of the output directory named after the file.
func (s *Service) HandleFile(ctx context.Context, path string) error {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	_, err := s.Run(ctx, Request{
		Paths:   []string{path},
		Mode:    ModeExtract,
		OutDir:  filepath.Join(s.outDir, stem),
		Command: "watch",
	})
	return err
}

func (s *Service) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// checkedOCR verifies the renderer binary once, before the first page is
// sent down the OCR path.
type checkedOCR struct {
	next pipeline.PageOCR
	bin  string

	once sync.Once
	err  error
}

func (c *checkedOCR) PerformOCR(ctx context.Context, doc ocr.PageRenderer, page int) (extract.Fields, error) {
	c.once.Do(func() {
		_, c.err = ocr.LookupBinary(c.bin)
	})
	if c.err != nil {
		return extract.Fields{}, c.err
	}
	return c.next.PerformOCR(ctx, doc, page)
}
