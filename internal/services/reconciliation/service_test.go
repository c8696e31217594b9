package reconciliation

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/export"
	"github.com/joseph-ayodele/labelscan/internal/sheet"
)

func TestRun(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")

	master, err := sheet.WriteXLSX(sheet.Sheet{Name: "Master", Rows: []sheet.Row{
		sheet.TextRow("SKU", "Order ID"),
		{sheet.Text("x"), sheet.Number(1001)},
		{sheet.Text("y"), sheet.Text("#1002")},
		{sheet.Text("z"), sheet.Text("S 1003")},
	}})
	if err != nil {
		t.Fatal(err)
	}
	packingPath := filepath.Join(in, "packing.xlsx")
	ordersPath := filepath.Join(in, "orders.csv")
	if err := os.WriteFile(packingPath, master, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ordersPath, []byte("order id\n1001\ns1003\nS9999\n1001\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := common.WithRunID(context.Background(), "recon-1")
	res, err := NewService(out, true, nil).Run(ctx, Request{PackingPath: packingPath, OrdersPath: ordersPath})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.RunID != "recon-1" {
		t.Errorf("run id = %q, want the one on the context", res.RunID)
	}
	o := res.Outcome
	if o.Matched != 2 || o.Pending != 1 || o.ExtractedIDs != 4 || o.UniqueOrders != 3 {
		t.Errorf("outcome = %+v", o)
	}
	if !slices.Equal(o.PendingIDs, []string{"1002"}) || !slices.Equal(o.Unrecognized, []string{"S9999"}) {
		t.Errorf("pending %v unrecognized %v", o.PendingIDs, o.Unrecognized)
	}

	updated, err := sheet.ReadFile(filepath.Join(out, export.FileUpdatedMaster))
	if err != nil {
		t.Fatalf("read annotated master: %v", err)
	}
	if got := updated[0].Strings(); !slices.Equal(got, []string{"SKU", "Order ID", "Status"}) {
		t.Errorf("header = %v", got)
	}
	if got := updated[2][2].String(); got != "PENDING" {
		t.Errorf("row 2 status = %q", got)
	}
	if len(res.Artifacts) != 4 {
		t.Errorf("artifacts = %v", res.Artifacts)
	}
}

func TestRunRejectsWrongFileType(t *testing.T) {
	_, err := NewService(t.TempDir(), false, nil).Run(context.Background(), Request{PackingPath: "a.pdf", OrdersPath: "b.csv"})
	if !common.IsInputError(err) {
		t.Fatalf("err = %v", err)
	}
}
