package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "moodbite",
	Short: "moodbite logs food and mood and finds how one affects the other",
	Long: "moodbite serves the food and mood logging API, the chat assistant and the " +
		"food-mood insight engine. Configuration comes from the environment or a .env file.",
	SilenceUsage: true,
	// running the binary with no subcommand starts the server
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, insightsCmd, classifyCmd)
}
