package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet to be written.
type Sheet struct {
	Name   string
	Rows   []Row
	Widths []float64 // column widths in characters, by column index; zero keeps the default
}

// WriteXLSX encodes sheets, in order, into one workbook. The first sheet is active.
func WriteXLSX(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx write: no sheets")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, fmt.Errorf("xlsx sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("xlsx sheet %q: %w", s.Name, err)
		}

		for y, row := range s.Rows {
			for x, c := range row {
				if c.Kind == KindEmpty {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(x+1, y+1)
				var v any = c.Text
				if c.Kind == KindNumber {
					v = c.Num
				}
				if err := f.SetCellValue(s.Name, cell, v); err != nil {
					return nil, fmt.Errorf("xlsx cell %s!%s: %w", s.Name, cell, err)
				}
			}
		}

		for x, w := range s.Widths {
			if w <= 0 {
				continue
			}
			col, _ := excelize.ColumnNumberToName(x + 1)
			_ = f.SetColWidth(s.Name, col, col, w)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSV encodes rows as CSV with every cell coerced to text.
func WriteCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, r := range rows {
		if err := w.Write(r.Strings()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}
	return buf.Bytes(), nil
}
