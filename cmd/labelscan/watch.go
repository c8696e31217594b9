package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/labelscan/internal/async"
	"github.com/joseph-ayodele/labelscan/internal/ingest"
	"github.com/joseph-ayodele/labelscan/internal/services/extraction"
)

var watchExisting bool

var watchCmd = &cobra.Command{
	Use:   "watch <dir>...",
	Short: "Process label PDFs as they appear in a directory",
	Long: `watch keeps running and extracts every PDF created in (or copied into)
the given directories. Each file gets its own output directory under the
configured out dir. Stop with Ctrl+C; queued files are finished first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc := extraction.NewFromConfig(cfg, nil, logger)
		defer func() { _ = svc.Close() }()

		q := async.NewProcessorQueue(svc, logger,
			async.WithWorkers(cfg.Watch.Workers),
			async.WithQueueSize(cfg.Watch.QueueSize),
			async.WithProcessTimeout(cfg.Watch.ProcessTimeout),
		)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Watch.ProcessTimeout+5*time.Second)
			defer cancel()
			q.Shutdown(shutdownCtx)
		}()

		events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       args,
			InitialScan: watchExisting,
			SkipHidden:  true,
			Debounce:    cfg.Watch.Debounce,
		}, logger)
		if err != nil {
			return err
		}

		for {
			select {
			case path, ok := <-events:
				if !ok {
					return nil
				}
				if err := q.Enqueue(ctx, async.NewJob(path)); err != nil {
					logger.Warn("watch.enqueue.failed", "path", path, "error", err)
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				logger.Warn("watch.error", "error", err)
			case <-ctx.Done():
				logger.Info("watch.stopping")
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "also process PDFs already in the directories")
}
