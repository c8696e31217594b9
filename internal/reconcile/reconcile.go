// Package reconcile matches scanned order IDs against a packing master sheet
// and marks every master row RECEIVED or PENDING.
package reconcile

import (
	"strings"
	"unicode"

	"github.com/joseph-ayodele/labelscan/constants"
	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/sheet"
)

// Outcome is the result of one reconciliation.
type Outcome struct {
	Matched      int
	Pending      int
	PendingIDs   []string    // cleaned IDs of pending master rows, in master order
	PendingRows  []sheet.Row // the pending rows themselves, status cell included
	Unrecognized []string    // scanned IDs with no master row, in first-seen order
	ExtractedIDs int         // non-empty IDs read from the orders sheet, duplicates included
	UniqueOrders int
	MasterIDs    int
	OrderColumn  int
	MasterColumn int
}

// Clean normalizes an ID for comparison: whitespace (Unicode spaces and the
// byte order mark included) and '#' removed, upper case.
func Clean(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		if unicode.IsSpace(r) || r == '#' || r == '\uFEFF' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// FindOrderIDColumn returns the first header column whose text mentions both
// "order" and "id", or 0 when none does.
func FindOrderIDColumn(header sheet.Row) int {
	for i, c := range header {
		h := strings.ToLower(c.String())
		if strings.Contains(h, "order") && strings.Contains(h, "id") {
			return i
		}
	}
	return 0
}

// Process reconciles packing (master) against orders (scanned). Row 0 of each
// is the header. packing is updated in place: a Status header is appended when
// missing and every data row with an ID gets its status cell set, so running
// Process again on its own output is stable.
func Process(packing, orders []sheet.Row) (*Outcome, error) {
	if len(packing) == 0 || len(orders) == 0 {
		return nil, common.InputError("reconcile: both sheets need at least a header row")
	}

	out := &Outcome{
		OrderColumn:  FindOrderIDColumn(orders[0]),
		MasterColumn: FindOrderIDColumn(packing[0]),
	}

	scanned := make(map[string]struct{})
	var ordered []string
	for _, row := range orders[1:] {
		raw := cellAt(row, out.OrderColumn)
		if raw.IsBlank() {
			continue
		}
		id := Clean(raw.String())
		if id == "" {
			continue
		}
		out.ExtractedIDs++
		if _, seen := scanned[id]; !seen {
			scanned[id] = struct{}{}
			ordered = append(ordered, id)
		}
	}
	out.UniqueOrders = len(ordered)

	header := packing[0]
	if len(header) == 0 || header[len(header)-1].String() != constants.StatusHeader {
		header = append(header, sheet.Text(constants.StatusHeader))
		packing[0] = header
	}
	statusCol := len(header) - 1

	master := make(map[string]struct{})
	for i := 1; i < len(packing); i++ {
		row := packing[i].Pad(statusCol)
		id := Clean(cellAt(row, out.MasterColumn).String())
		if id == "" {
			packing[i] = row
			continue
		}
		master[id] = struct{}{}

		status := constants.RowStatusPending
		if _, ok := scanned[id]; ok {
			status = constants.RowStatusReceived
		}
		row = setCell(row, statusCol, sheet.Text(string(status)))
		packing[i] = row

		if status == constants.RowStatusReceived {
			out.Matched++
			continue
		}
		out.Pending++
		out.PendingIDs = append(out.PendingIDs, id)
		out.PendingRows = append(out.PendingRows, row)
	}
	out.MasterIDs = len(master)

	for _, id := range ordered {
		if _, ok := master[id]; !ok {
			out.Unrecognized = append(out.Unrecognized, id)
		}
	}
	return out, nil
}

func cellAt(r sheet.Row, i int) sheet.Cell {
	if i < len(r) {
		return r[i]
	}
	return sheet.Empty()
}

func setCell(r sheet.Row, i int, c sheet.Cell) sheet.Row {
	if i == len(r) {
		return append(r, c)
	}
	r[i] = c
	return r
}
