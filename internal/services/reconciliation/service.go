// Package reconciliation reads the packing master and the scanned orders
// sheet, reconciles them and writes the annotated outputs.
package reconciliation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/export"
	"github.com/joseph-ayodele/labelscan/internal/ingest"
	"github.com/joseph-ayodele/labelscan/internal/reconcile"
	"github.com/joseph-ayodele/labelscan/internal/sheet"
)

// Request names the two input spreadsheets.
type Request struct {
	PackingPath string
	OrdersPath  string
	OutDir      string
}

type Result struct {
	RunID     string
	Outcome   *reconcile.Outcome
	Packing   []sheet.Row // annotated master
	Artifacts []string
}

// Service handles reconciliation business logic.
type Service struct {
	outDir string
	report bool
	logger *slog.Logger
}

func NewService(outDir string, report bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{outDir: outDir, report: report, logger: logger}
}

func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	started := time.Now().UTC()
	runID := common.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := common.LoggerFromContext(ctx, s.logger).With("run_id", runID)
	ctx = common.WithLogger(common.WithRunID(ctx, runID), logger)

	for _, p := range []string{req.PackingPath, req.OrdersPath} {
		if err := ingest.RequireSheet(p); err != nil {
			return nil, err
		}
	}
	packing, err := sheet.ReadFile(req.PackingPath)
	if err != nil {
		logger.Error("reconcile.read.failed", "file", req.PackingPath, "error", err)
		return nil, err
	}
	orders, err := sheet.ReadFile(req.OrdersPath)
	if err != nil {
		logger.Error("reconcile.read.failed", "file", req.OrdersPath, "error", err)
		return nil, err
	}

	out, err := reconcile.Process(packing, orders)
	if err != nil {
		return nil, err
	}
	logger.Info("reconcile.ok",
		"master_rows", len(packing)-1,
		"order_column", out.OrderColumn,
		"master_column", out.MasterColumn,
		"extracted", out.ExtractedIDs,
		"unique", out.UniqueOrders,
		"matched", out.Matched,
		"pending", out.Pending,
		"unrecognized", len(out.Unrecognized),
	)

	dir := req.OutDir
	if dir == "" {
		dir = s.outDir
	}
	w := export.NewWriter(dir, logger)
	artifacts, err := w.WriteReconciliation(ctx, packing, out)
	if err != nil {
		return nil, err
	}
	if s.report {
		p, err := w.WriteReport(export.Report{
			RunID:          runID,
			Command:        "reconcile",
			StartedAt:      started,
			Files:          []string{req.PackingPath, req.OrdersPath},
			Reconciliation: export.NewReconcileSummary(out),
			Artifacts:      artifacts,
		})
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, p)
	}

	return &Result{RunID: runID, Outcome: out, Packing: packing, Artifacts: artifacts}, nil
}
