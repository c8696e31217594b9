package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/pipeline"
)

var (
	cfgFile   string
	outDir    string
	logLevel  string
	logFormat string
	quiet     bool

	cfg    *common.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "labelscan",
	Short: "Extract shipping label IDs from PDFs and reconcile them against a packing master",
	Long: `labelscan reads batches of shipping-label PDFs, pulls the source ID, AWB
code and courier off every page, and exports the results.

Pages that look like Amazon labels are cut into a separate document and read
again with OCR (pdftoppm + tesseract), since their text layer is unreliable.

The reconcile command marks every row of a packing master spreadsheet as
RECEIVED or PENDING against a scanned orders sheet.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := common.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("out") {
			c.Export.OutDir = outDir
		}
		if flags.Changed("log-level") {
			c.Log.Level = logLevel
		}
		if flags.Changed("log-format") {
			c.Log.Format = logFormat
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c
		logger = newLogger(cmd.ErrOrStderr(), c.Log)
		slog.SetDefault(logger)
		logger.Debug("config loaded", "config", c.String())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./labelscan.yaml or ~/.labelscan/labelscan.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "output directory (overrides export.out_dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "text or json")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	rootCmd.AddCommand(extractCmd, scanOCRCmd, reconcileCmd, watchCmd, versionCmd)
}

func newLogger(w io.Writer, c common.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// progressPrinter renders pipeline progress on one line of w.
func progressPrinter(w io.Writer) pipeline.ProgressFunc {
	if quiet {
		return nil
	}
	tty := stderrIsTerminal()
	var (
		mu   sync.Mutex
		last float64
	)
	return func(percent float64, status string) {
		mu.Lock()
		defer mu.Unlock()
		if percent != pipeline.NoPercent {
			last = percent
		}
		if !tty {
			fmt.Fprintf(w, "[%3.0f%%] %s\n", last, status)
			return
		}
		fmt.Fprintf(w, "\r\033[K[%3.0f%%] %s", last, status)
		if last >= 100 {
			fmt.Fprintln(w)
		}
	}
}

func stderrIsTerminal() bool {
	fi, err := os.Stderr.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
