package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"trajviz/internal/config"
	"trajviz/internal/loader"
	"trajviz/internal/logging"
)

var (
	configPath string
	schemaPath string
	workers    int
	logLevel   string

	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "trajviz",
	Short: "Multi-agent trajectory viewer",
	Long: "trajviz loads a YAML or JSON document of agent configurations and movement segments, " +
		"skips malformed agents with a warning, and plots, summarises or exports the rest.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath, schemaPath)
		if err != nil {
			return err
		}
		if err := c.ApplyEnv(os.Getenv); err != nil {
			return err
		}
		if cmd.Flags().Changed("workers") {
			c.Loader.Workers = workers
		}
		if logLevel != "" {
			c.Log.Level = logLevel
		}
		l, err := logging.NewWithOptions(cmd.ErrOrStderr(), c.Log.Level, c.Log.Format)
		if err != nil {
			return err
		}
		cfg, log = c, l
		cmd.SetContext(logging.NewContext(cmd.Context(), l))
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDocument loads path. Only source-level failures are returned; malformed
// agents are logged by the loader and left out of the result.
func loadDocument(cmd *cobra.Command, path string) (*loader.Result, error) {
	return loader.LoadFile(cmd.Context(), path, loader.Options{Workers: cfg.Loader.Workers})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to trajviz configuration YAML")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Path to CUE schema file (defaults to the built-in schema)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1, "Parse agents with this many workers")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(dashboardCmd)
}
