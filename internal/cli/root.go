// Package cli wires the plankit command tree.
package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "plankit",
})

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "plankit",
	Short:   "Generate and validate task plan documents",
	Long:    `Plankit turns objectives into structured task plans and checks existing plans against decomposition rules: atomic scope, verifiability, sized complexity, and an acyclic dependency graph.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose || os.Getenv("PLANKIT_VERBOSE") == "1" || os.Getenv("PLANKIT_VERBOSE") == "true" {
			logger.SetLevel(log.DebugLevel)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.AddCommand(validateCmd, decomposeCmd, planCmd, viewCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
