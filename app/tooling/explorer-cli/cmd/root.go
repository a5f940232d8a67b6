// Package cmd contains the explorer cli commands.
package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var url string

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:3000", "Url of the explorer api.")
}

var rootCmd = &cobra.Command{
	Use:           "explorer",
	Short:         "Browse blocks, kernels and outputs of a chain.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command selected on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("explorer", "err", err)
		os.Exit(1)
	}
}
