package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/labelscan/constants"
	"github.com/joseph-ayodele/labelscan/internal/common"
)

// ReadFile reads the first sheet of the spreadsheet at path.
func ReadFile(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.NotFoundError(path, err)
	}
	if err != nil {
		return nil, common.InputError("read %s: %v", path, err)
	}
	return Read(filepath.Base(path), data)
}

// Read decodes data according to the extension of name.
func Read(name string, data []byte) ([]Row, error) {
	var (
		rows []Row
		err  error
	)
	switch ext := constants.NormalizeExt(filepath.Ext(name)); ext {
	case "xlsx", "xlsm":
		rows, err = readXLSX(data)
	case "xls":
		rows, err = readXLS(data)
	case "csv":
		rows, err = readCSV(data)
	default:
		return nil, common.InputError("%s: unsupported spreadsheet type %q", name, ext)
	}
	if err != nil {
		return nil, common.InputError("%s: %v", name, err)
	}
	return padAll(rows), nil
}

func readXLSX(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	name := sheets[0]

	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(raw))
	for y, values := range raw {
		row := make(Row, len(values))
		for x, v := range values {
			if v == "" {
				continue
			}
			axis, _ := excelize.CoordinatesToCellName(x+1, y+1)
			row[x] = xlsxCell(f, name, axis, v)
		}
		rows[y] = row
	}
	return rows, nil
}

func xlsxCell(f *excelize.File, sheet, axis, v string) Cell {
	t, err := f.GetCellType(sheet, axis)
	if err == nil && (t == excelize.CellTypeNumber || t == excelize.CellTypeUnset) {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return Number(n)
		}
	}
	return Text(v)
}

func readXLS(data []byte) (rows []Row, err error) {
	// xlsReader panics on some malformed BIFF records.
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("xls parse: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if wb.GetNumberSheets() == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	s, err := wb.GetSheet(0)
	if err != nil {
		return nil, err
	}

	n := s.GetNumberRows()
	rows = make([]Row, 0, n)
	for i := 0; i < n; i++ {
		r, err := s.GetRow(i)
		if err != nil || r == nil {
			rows = append(rows, Row{})
			continue
		}
		cols := r.GetCols()
		row := make(Row, len(cols))
		for x, c := range cols {
			if v := c.GetString(); v != "" {
				row[x] = Text(v)
			}
		}
		rows = append(rows, trimTrailingEmpty(row))
	}
	return rows, nil
}

func readCSV(data []byte) ([]Row, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows []Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(Row, len(rec))
		for i, v := range rec {
			if strings.TrimSpace(v) != "" {
				row[i] = Text(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func trimTrailingEmpty(r Row) Row {
	for len(r) > 0 && r[len(r)-1].Kind == KindEmpty {
		r = r[:len(r)-1]
	}
	return r
}
