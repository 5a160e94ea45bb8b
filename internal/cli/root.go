package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "creq",
	Short:   "A minimal terminal-based HTTP(S) client",
	Version: version,
	Long: `Creq is a minimal terminal-based HTTP(S) client written in Go. It sends
a request, waits for the complete response, decodes the body based on
the Content-Type header, and renders the result. Request files let you
script sequences of requests with variable extraction and response
checks.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute runs the root command and returns its error, if any.
// This is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	// Add subcommands to root command
	RootCmd.AddCommand(headCmd)
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(postCmd)
	RootCmd.AddCommand(putCmd)
	RootCmd.AddCommand(jsonCmd)
	RootCmd.AddCommand(formCmd)
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(benchCmd)
}
