package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trajviz/internal/viewer"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <document>",
	Short: "Serve trajectories over HTTP",
	Long:  "serve loads a document once and serves an index page, the plot series as JSON and a rendered plot.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}
		addr := cfg.Serve.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := viewer.NewServer(res, renderOptions(cfg.Render), log)
		if err := srv.Start(ctx, addr); err != nil {
			return err
		}
		log.Info("viewer stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}
