package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/labelscan/internal/services/extraction"
)

var (
	noOCR      bool
	skipHidden bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf|dir>...",
	Short: "Extract source IDs and AWB codes from label PDFs",
	Long: `Extract reads every page of the given PDFs (directories are walked
recursively) and writes:

  shipping_data_<date>.xlsx   Extracted IDs + Source IDs Only sheets
  shipping_data_<date>.csv    flat export
  source_ids.txt              one source ID per line
  report.json                 run summary (export.report)

Amazon pages are re-read with OCR unless --no-ocr is given.

Examples:
  labelscan extract labels/
  labelscan extract a.pdf b.pdf --no-ocr -o out/`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := extraction.ModeExtract
		if noOCR {
			mode = extraction.ModeText
		}
		return runExtraction(cmd, args, mode)
	},
}

var scanOCRCmd = &cobra.Command{
	Use:   "scan-ocr <pdf|dir>...",
	Short: "Force every page of the given PDFs through OCR",
	Long: `scan-ocr extracts the text layer first, then reads every page again with
OCR and replaces the text results of those files. Use it for image-only
labels whose text layer is empty or wrong.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtraction(cmd, args, extraction.ModeScanOCR)
	},
}

func init() {
	extractCmd.Flags().BoolVar(&noOCR, "no-ocr", false, "skip the OCR pass for Amazon pages")
	for _, c := range []*cobra.Command{extractCmd, scanOCRCmd} {
		c.Flags().BoolVar(&skipHidden, "skip-hidden", true, "skip hidden files and directories")
	}
}

func runExtraction(cmd *cobra.Command, args []string, mode extraction.Mode) error {
	svc := extraction.NewFromConfig(cfg, progressPrinter(cmd.ErrOrStderr()), logger)
	defer func() { _ = svc.Close() }()

	res, err := svc.Run(cmd.Context(), extraction.Request{
		Paths:      args,
		Mode:       mode,
		SkipHidden: skipHidden,
	})
	if err != nil {
		return err
	}
	printExtraction(cmd.OutOrStdout(), res)
	return nil
}

func printExtraction(w io.Writer, res *extraction.Result) {
	fmt.Fprintf(w, "Files:            %d\n", len(res.Files))
	fmt.Fprintf(w, "Pages:            %d\n", res.Stats.Total)
	fmt.Fprintf(w, "With source ID:   %d\n", res.Stats.WithSourceID)
	fmt.Fprintf(w, "AWB only:         %d\n", res.Stats.AWBOnly)
	fmt.Fprintf(w, "Manual review:    %d\n", res.Stats.ManualReview)
	fmt.Fprintf(w, "Unique IDs:       %d\n", len(res.UniqueIDs))
	if len(res.Derived) > 0 {
		fmt.Fprintf(w, "OCR documents:    %d\n", len(res.Derived))
	}
	for _, p := range res.Artifacts {
		fmt.Fprintf(w, "  wrote %s\n", p)
	}
}
