package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/document"
)

// FSIngestor reads label PDFs from the local filesystem.
type FSIngestor struct {
	AllowedExts map[string]struct{} // lowercased sans '.'; nil -> constants.LabelExtensions
	logger      *slog.Logger
}

func NewFSIngestor(logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{logger: logger}
}

func (i *FSIngestor) IngestPath(ctx context.Context, path string) (document.File, IngestionResult, error) {
	out := IngestionResult{SourcePath: path, Name: filepath.Base(path)}
	if err := ctx.Err(); err != nil {
		return document.File{}, out, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return document.File{}, out, common.InputError("%s: %v", path, err)
	}
	out.SourcePath = abs

	if !AllowedExt(filepath.Ext(abs), i.AllowedExts) {
		return document.File{}, out, common.InputError("%s: unsupported or missing extension", out.Name)
	}

	data, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return document.File{}, out, common.NotFoundError(path, err)
	}
	if err != nil {
		return document.File{}, out, common.InputError("%s: %v", out.Name, err)
	}
	pages, err := document.PageCount(data)
	if err != nil {
		return document.File{}, out, common.InputError("%s: not a readable PDF: %v", out.Name, err)
	}

	sum := sha256.Sum256(data)
	out.HashHex = hex.EncodeToString(sum[:])
	out.Pages = pages

	i.logger.Debug("ingest.file.ok", "file", out.Name, "pages", pages, "sha256", out.HashHex[:12])
	return document.File{
		Name:    out.Name,
		Path:    abs,
		Data:    data,
		HashHex: out.HashHex,
	}, out, nil
}

// Collect expands paths (files or directories, walked recursively) into a
// batch. Files sharing a base name or content hash with an earlier file are
// skipped. Any unreadable or invalid file fails the whole call, so nothing
// reaches the pipeline from a partially valid selection.
func (i *FSIngestor) Collect(ctx context.Context, paths []string, skipHidden bool) ([]document.File, DirStats, error) {
	var (
		stats  DirStats
		files  []document.File
		names  = map[string]struct{}{}
		hashes = map[string]struct{}{}
	)

	add := func(path string) error {
		stats.Matched++
		f, res, err := i.IngestPath(ctx, path)
		if err != nil {
			stats.Failed++
			return err
		}
		_, dupName := names[f.Name]
		_, dupHash := hashes[f.HashHex]
		if dupName || dupHash {
			stats.Deduplicated++
			i.logger.Info("ingest.file.duplicate", "file", res.SourcePath)
			return nil
		}
		names[f.Name] = struct{}{}
		hashes[f.HashHex] = struct{}{}
		files = append(files, f)
		stats.Succeeded++
		return nil
	}

	for _, root := range paths {
		if strings.TrimSpace(root) == "" {
			continue
		}
		info, err := os.Stat(root)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stats, common.NotFoundError(root, err)
		}
		if err != nil {
			return nil, stats, common.InputError("%s: %v", root, err)
		}
		if !info.IsDir() {
			stats.Scanned++
			if err := add(root); err != nil {
				return nil, stats, err
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			stats.Scanned++
			if walkErr != nil {
				return walkErr
			}
			if skipHidden && path != root && IsHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !AllowedExt(filepath.Ext(path), i.AllowedExts) {
				return nil
			}
			return add(path)
		})
		if err != nil {
			if common.IsInputError(err) || errors.Is(err, context.Canceled) {
				return nil, stats, err
			}
			return nil, stats, common.InputError("walk %s: %v", root, err)
		}
	}

	if len(files) == 0 {
		return nil, stats, common.InputError("no PDF files found")
	}
	return files, stats, nil
}
