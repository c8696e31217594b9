package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/labelscan/internal/services/reconciliation"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <packing-master> <orders>",
	Short: "Mark packing master rows RECEIVED or PENDING against scanned orders",
	Long: `reconcile matches the order IDs of the orders sheet against the packing
master. Both files may be .xlsx, .xlsm, .xls or .csv; the first sheet is read
and the first header mentioning "order" and "id" selects the ID column
(column A otherwise).

Outputs:
  Updated_Packing_Master.xlsx   master with a Status column
  Pending_Orders.xlsx           pending order IDs
  pending_orders.txt            pending order IDs, comma separated`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := reconciliation.NewService(cfg.Export.OutDir, cfg.Export.Report, logger)
		res, err := svc.Run(cmd.Context(), reconciliation.Request{PackingPath: args[0], OrdersPath: args[1]})
		if err != nil {
			return err
		}
		printReconciliation(cmd.OutOrStdout(), res)
		return nil
	},
}

func printReconciliation(w io.Writer, res *reconciliation.Result) {
	o := res.Outcome
	fmt.Fprintf(w, "IDs extracted:    %d\n", o.ExtractedIDs)
	fmt.Fprintf(w, "Unique IDs:       %d\n", o.UniqueOrders)
	fmt.Fprintf(w, "Received:         %d\n", o.Matched)
	fmt.Fprintf(w, "Pending:          %d\n", o.Pending)
	fmt.Fprintf(w, "Not in master:    %d\n", len(o.Unrecognized))
	if len(o.Unrecognized) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(o.Unrecognized, "\n  "))
	}
	for _, p := range res.Artifacts {
		fmt.Fprintf(w, "  wrote %s\n", p)
	}
}
