package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"trajviz/internal/dashboard"
	"trajviz/internal/export"
	"trajviz/internal/plotdata"
)

var dashboardOut string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard <document>",
	Short: "Generate a Grafana dashboard for exported trajectories",
	Long: "dashboard writes a Grafana dashboard that queries the configured GreptimeDB table. " +
		"The datasource UID is read from " + dashboard.DatasourceEnv + ".",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}
		gc := cfg.Export.Greptime
		epoch, err := gc.EpochTime()
		if err != nil {
			return err
		}
		from, to := epoch, epoch.Add(time.Hour)
		if e, ok := plotdata.Bounds(plotdata.ExtractAll(res.Trajectories)...); ok {
			lo, err := export.Offset(e.MinT)
			if err != nil {
				return err
			}
			hi, err := export.Offset(e.MaxT)
			if err != nil {
				return err
			}
			from, to = epoch.Add(lo), epoch.Add(hi)
		}
		p, err := dashboard.ParamsFor(cfg.Render.Title, gc.Database, gc.Table, from, to, os.Getenv)
		if err != nil {
			return err
		}
		path, err := dashboard.Render(dashboardOut, p)
		if err != nil {
			return err
		}
		log.Info("dashboard written", "path", path)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardOut, "out", "o", "build", "Output directory")
}
