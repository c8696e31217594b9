package export

import (
	"strings"
	"time"

	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/extract"
	"github.com/joseph-ayodele/labelscan/internal/sheet"
)

const (
	SheetExtracted   = "Extracted IDs"
	SheetSourceIDs   = "Source IDs Only"
	SheetUpdated     = "UpdatedPacking"
	SheetPending     = "PendingOrders"
	HeaderPendingID  = "Pending Order ID"
	timestampLayout  = "2006-01-02T15:04:05.000Z"
	sourceIDColWidth = 15
)

var (
	extractionHeader = []string{
		"Source ID", "AWB Code", "Courier Name", "File Name", "Page Number", "Extraction Type", "Timestamp",
	}
	extractionWidths = []float64{15, 15, 20, 20, 12, 15, 20}
)

// ExtractionType names the identifier a record was matched on.
func ExtractionType(r extract.PageRecord) string {
	switch {
	case r.HasSourceID():
		return "Source ID"
	case r.HasAWB():
		return "AWB Code"
	default:
		return "None"
	}
}

// ExtractionXLSX builds the extraction workbook. The "Source IDs Only" sheet
// is added only when sourceIDs is non-empty.
func ExtractionXLSX(records []extract.PageRecord, sourceIDs []string, now time.Time) ([]byte, error) {
	if len(records) == 0 {
		return nil, common.InputError("no data to export")
	}
	stamp := now.UTC().Format(timestampLayout)

	rows := make([]sheet.Row, 0, len(records)+1)
	rows = append(rows, sheet.TextRow(extractionHeader...))
	for _, r := range records {
		rows = append(rows, sheet.Row{
			sheet.Text(r.SourceID),
			sheet.Text(r.AWB),
			sheet.Text(r.Courier),
			sheet.Text(r.FileName),
			sheet.Number(float64(r.Page)),
			sheet.Text(ExtractionType(r)),
			sheet.Text(stamp),
		})
	}
	sheets := []sheet.Sheet{{Name: SheetExtracted, Rows: rows, Widths: extractionWidths}}

	if len(sourceIDs) > 0 {
		sheets = append(sheets, sheet.Sheet{
			Name:   SheetSourceIDs,
			Rows:   singleColumn("Source ID", sourceIDs),
			Widths: []float64{sourceIDColWidth},
		})
	}
	return sheet.WriteXLSX(sheets...)
}

// ExtractionCSV is the flat export: the first five workbook columns.
func ExtractionCSV(records []extract.PageRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, common.InputError("no data to export")
	}
	rows := make([]sheet.Row, 0, len(records)+1)
	rows = append(rows, sheet.TextRow(extractionHeader[:5]...))
	for _, r := range records {
		rows = append(rows, sheet.Row{
			sheet.Text(r.SourceID),
			sheet.Text(r.AWB),
			sheet.Text(r.Courier),
			sheet.Text(r.FileName),
			sheet.Number(float64(r.Page)),
		})
	}
	return sheet.WriteCSV(rows)
}

// SourceIDsText joins ids one per line.
func SourceIDsText(ids []string) string {
	return strings.Join(ids, "\n")
}

func singleColumn(header string, values []string) []sheet.Row {
	rows := make([]sheet.Row, 0, len(values)+1)
	rows = append(rows, sheet.TextRow(header))
	for _, v := range values {
		rows = append(rows, sheet.TextRow(v))
	}
	return rows
}
