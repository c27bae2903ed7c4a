package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "whaleradar",
	Short: "A paper-trading desk driven by live exchange prices",
	Long: `Whaleradar runs a simulated manual-trading desk.

It consumes live ticker prices over websocket, lets a human open and close
paper positions over HTTP, closes positions automatically when their
stop-loss or take-profit threshold is crossed, and keeps account state
durable across restarts.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
