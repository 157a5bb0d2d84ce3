package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/cadstream/internal/ingest"
	"github.com/philipparndt/cadstream/internal/sink"
	"github.com/philipparndt/cadstream/pkg/viewer"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and stream decoded models to the sink",
	Long: `Watch a directory for new or changed STL files. Every file that decodes
is published as the current model; the sink logs a summary for each new
model and, when --snapshot-dir is set, writes a rendered PNG.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Duration("settle", 0, "Delay before reading a changed file (overrides watch.settle_delay)")
	watchCmd.Flags().String("snapshot-dir", "", "Write a PNG per model to this directory (overrides sink.snapshot_dir)")
	watchCmd.Flags().Bool("skip-existing", false, "Do not load files already present in the directory")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg.Watch.Dir = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("settle") {
		cfg.Watch.SettleDelay, _ = flags.GetDuration("settle")
	}
	if flags.Changed("snapshot-dir") {
		cfg.Sink.SnapshotDir, _ = flags.GetString("snapshot-dir")
	}
	if skip, _ := flags.GetBool("skip-existing"); skip {
		cfg.Watch.LoadExisting = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchAndServe(ctx, nil)
}

// watchAndServe runs the pipeline and the sink until ctx is cancelled or
// either of them fails. extra displays are added next to the configured
// ones.
func watchAndServe(ctx context.Context, extra []sink.Display) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := ingest.NewStore()
	pipeline := ingest.NewPipeline(store, ingest.Options{
		SettleDelay: cfg.Watch.SettleDelay,
	})

	displays := extra
	if cfg.Sink.SnapshotDir != "" {
		if err := os.MkdirAll(cfg.Sink.SnapshotDir, 0o755); err != nil {
			return err
		}
		displays = append(displays, sink.PNGWriter{Dir: cfg.Sink.SnapshotDir})
	}
	s := sink.New(store, sink.Options{
		PollInterval: cfg.Sink.PollInterval,
		Render:       viewer.DefaultOptions(cfg.Sink.Width, cfg.Sink.Height),
	}, displays...)

	sinkErr := make(chan error, 1)
	go func() {
		sinkErr <- s.Run(ctx)
	}()

	watchErr := pipeline.Watch(ctx, cfg.Watch.Dir, ingest.WatchOptions{
		Debounce:     cfg.Watch.Debounce,
		QueueSize:    cfg.Watch.QueueSize,
		LoadExisting: cfg.Watch.LoadExisting,
	})
	cancel()

	return errors.Join(watchErr, <-sinkErr)
}
