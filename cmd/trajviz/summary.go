package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"trajviz/internal/report"
)

var summaryWidth int

var summaryCmd = &cobra.Command{
	Use:   "summary <document>",
	Short: "Print accepted and rejected agents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}
		width := summaryWidth
		if width == 0 {
			width = terminalWidth(100)
		}
		return report.Summary(cmd.OutOrStdout(), res, report.Options{Width: width})
	},
}

// terminalWidth returns the width of stdout, or fallback when it is not a terminal.
func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

func init() {
	summaryCmd.Flags().IntVar(&summaryWidth, "width", 0, "Wrap width for rejection causes (default: terminal width)")
}
