// Package sheet reads and writes the tabular files used for reconciliation.
// Rows come back with header:1 semantics: row 0 is the header, every row is
// padded with Empty cells to the sheet width.
package sheet

import (
	"strconv"
	"strings"
)

// Kind tags the value held by a Cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
)

// Cell is a loosely typed spreadsheet value.
type Cell struct {
	Kind Kind
	Text string
	Num  float64
}

// Row is one spreadsheet row.
type Row []Cell

func Empty() Cell { return Cell{} }

func Text(s string) Cell { return Cell{Kind: KindText, Text: s} }

func Number(f float64) Cell { return Cell{Kind: KindNumber, Num: f} }

// String coerces the cell for comparison and header matching. Numbers print
// without exponent or trailing zeros so that 12345 and "12345" agree.
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// IsBlank reports whether the cell holds nothing but whitespace.
func (c Cell) IsBlank() bool {
	return strings.TrimSpace(c.String()) == ""
}

// TextRow builds a row of text cells.
func TextRow(values ...string) Row {
	r := make(Row, len(values))
	for i, v := range values {
		r[i] = Text(v)
	}
	return r
}

// Strings coerces every cell of r.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

// Pad extends r with Empty cells up to width.
func (r Row) Pad(width int) Row {
	for len(r) < width {
		r = append(r, Empty())
	}
	return r
}

// padAll right-pads every row to the widest row.
func padAll(rows []Row) []Row {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	for i := range rows {
		rows[i] = rows[i].Pad(width)
	}
	return rows
}
