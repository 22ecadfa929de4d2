package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ifly-videos-bot",
	Short: "Telegram bot that stores and organizes iFLY flight videos",
	Long:  `Members upload clips named by the recording rigs; the bot files them by day, session slot and flight. Commands: run, initdb.`,
	RunE:  runBot, // default: run the bot (same as "ifly-videos-bot run")
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initDBCmd)
}

// Execute runs the root command and returns the error (for main to log.Fatal).
func Execute() error {
	return rootCmd.Execute()
}
