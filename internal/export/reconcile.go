package export

import (
	"strings"

	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/sheet"
)

// AnnotatedMasterXLSX writes the packing master, Status column included.
func AnnotatedMasterXLSX(packing []sheet.Row) ([]byte, error) {
	if len(packing) == 0 {
		return nil, common.InputError("no processed packing rows to export")
	}
	return sheet.WriteXLSX(sheet.Sheet{Name: SheetUpdated, Rows: packing})
}

// PendingXLSX writes one pending order id per row under a fixed header.
func PendingXLSX(ids []string) ([]byte, error) {
	if len(ids) == 0 {
		return nil, common.InputError("no pending orders to export")
	}
	return sheet.WriteXLSX(sheet.Sheet{Name: SheetPending, Rows: singleColumn(HeaderPendingID, ids)})
}

// PendingText joins pending ids with commas.
func PendingText(ids []string) string {
	return strings.Join(ids, ",")
}
