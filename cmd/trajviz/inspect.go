package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"trajviz/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <document>",
	Short: "Browse loaded agents interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("inspect needs an interactive terminal")
		}
		res, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}
		return inspect.Run(res)
	},
}
