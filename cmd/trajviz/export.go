package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"trajviz/internal/export"
)

var (
	exportJSONL    string
	exportStdout   bool
	exportGreptime bool
)

var exportCmd = &cobra.Command{
	Use:   "export <document>",
	Short: "Export flattened trajectory points",
	Long:  "export writes one row per trajectory point to a JSONL file, STDOUT and/or GreptimeDB.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportJSONL == "" && !exportStdout && !exportGreptime {
			return fmt.Errorf("choose at least one of --jsonl, --stdout or --greptime")
		}
		res, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}
		w, cleanup, err := newRowWriter(cfg, exportJSONL, exportStdout, exportGreptime, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		rows := export.AllRows(res.Trajectories)
		if err := w.WriteRows(rows); err != nil {
			cleanup()
			return err
		}
		if err := cleanup(); err != nil {
			return fmt.Errorf("close export: %w", err)
		}
		log.Info("export finished", slog.Int("rows", len(rows)), slog.Int("agents", res.Accepted()))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportJSONL, "jsonl", "", "Write rows to this JSONL file")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Print rows to STDOUT as JSON lines")
	exportCmd.Flags().BoolVar(&exportGreptime, "greptime", false, "Write rows to GreptimeDB (endpoint from config or GREPTIMEDB_ENDPOINT)")
}
