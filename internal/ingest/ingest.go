package ingest

import (
	"context"

	"github.com/joseph-ayodele/labelscan/internal/document"
)

// IngestionResult is the per-file ingest outcome.
type IngestionResult struct {
	SourcePath   string
	Name         string
	HashHex      string
	Pages        int
	Deduplicated bool
	Err          string
}

// DirStats summarizes a collection pass.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

// Ingestor turns user-supplied paths into validated label documents.
type Ingestor interface {
	// IngestPath reads and validates a single file.
	IngestPath(ctx context.Context, path string) (document.File, IngestionResult, error)
	// Collect expands files and directories into a de-duplicated, validated batch.
	Collect(ctx context.Context, paths []string, skipHidden bool) ([]document.File, DirStats, error)
}
