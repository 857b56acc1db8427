package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"trajviz/internal/config"
	"trajviz/internal/render"
)

var (
	plotOutput       string
	plotTitle        string
	plotNoFootprints bool
	plotNoEndpoints  bool
)

var plotCmd = &cobra.Command{
	Use:   "plot <document>",
	Short: "Render agent trajectories to an image",
	Long:  "plot loads a trajectory document and draws every accepted agent. The image format follows the output extension.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}
		opts := renderOptions(cfg.Render)
		if plotTitle != "" {
			opts.Title = plotTitle
		}
		if plotNoFootprints {
			opts.Footprints = false
		}
		if plotNoEndpoints {
			opts.Endpoints = false
		}
		if err := render.Save(plotOutput, render.Agents(res.Trajectories), opts); err != nil {
			return err
		}
		log.Info("plot written",
			slog.String("path", plotOutput),
			slog.Int("agents", res.Accepted()),
			slog.Int("rejected", res.Rejected()))
		return nil
	},
}

func renderOptions(rc config.RenderConfig) render.Options {
	return render.Options{
		Title:      rc.Title,
		Footprints: rc.Footprints,
		Endpoints:  rc.Endpoints,
		Width:      vg.Length(rc.WidthIn) * vg.Inch,
		Height:     vg.Length(rc.HeightIn) * vg.Inch,
	}
}

func init() {
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "trajectories.png", "Output image path (.png, .svg, .pdf)")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "Plot title (overrides config)")
	plotCmd.Flags().BoolVar(&plotNoFootprints, "no-footprints", false, "Do not draw agent footprints")
	plotCmd.Flags().BoolVar(&plotNoEndpoints, "no-endpoints", false, "Do not mark segment endpoints")
}
