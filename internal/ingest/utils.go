package ingest

import (
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/labelscan/constants"
	"github.com/joseph-ayodele/labelscan/internal/common"
)

// AllowedExt checks ext against allowed, or the label extensions when allowed is nil.
func AllowedExt(ext string, allowed map[string]struct{}) bool {
	if allowed == nil {
		allowed = constants.LabelExtensions
	}
	_, ok := allowed[constants.NormalizeExt(ext)]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return base != "." && base != ".." && strings.HasPrefix(base, ".")
}

// RequireSheet rejects paths that are not a supported spreadsheet.
func RequireSheet(path string) error {
	if strings.TrimSpace(path) == "" {
		return common.InputError("spreadsheet path is required")
	}
	if !AllowedExt(filepath.Ext(path), constants.SheetExtensions) {
		return common.InputError("%s: expected one of .xlsx, .xlsm, .xls, .csv", filepath.Base(path))
	}
	return nil
}
