package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// global flags
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "spotipi",
	Short: "now-playing frame renderer for e-ink displays",
	Long: `spotipi renders a "now playing" frame (cover art plus wrapped
title/artist text) for a low-refresh-rate e-ink display and polls the
player for changes.

When run without a subcommand, it starts the polling daemon.`,
	Version: "1.0.0",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c",
		"config/spotipi.json", "path to the settings file")
	rootCmd.AddCommand(renderCmd)
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
