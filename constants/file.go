package constants

import "strings"

// LabelExtensions are the accepted label document extensions.
var LabelExtensions = map[string]struct{}{
	"pdf": {},
}

// SheetExtensions are the accepted spreadsheet extensions for reconciliation inputs.
var SheetExtensions = map[string]struct{}{
	"xlsx": {},
	"xlsm": {},
	"xls":  {},
	"csv":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
