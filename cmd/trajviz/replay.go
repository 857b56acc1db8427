package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trajviz/internal/export"
)

var (
	replaySpeed    float64
	replayGreptime bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <rows.jsonl>",
	Short: "Replay an exported JSONL file",
	Long: "replay streams rows written by `export --jsonl` to STDOUT or GreptimeDB, " +
		"pacing them by trajectory time. A speed of 0 disables pacing.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, cleanup, err := newRowWriter(cfg, "", !replayGreptime, replayGreptime, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer func() { _ = cleanup() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		n, err := export.ReplayFile(ctx, args[0], w, replaySpeed)
		if err != nil {
			return fmt.Errorf("replay %s after %d rows: %w", args[0], n, err)
		}
		log.Info("replay finished", slog.Int("rows", n))
		return nil
	},
}

func init() {
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayGreptime, "greptime", false, "Write to GreptimeDB instead of STDOUT")
}
