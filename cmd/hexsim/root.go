package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/hexsim/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "hexsim",
	Short: "hexsim simulates stack programs over partially known values",
	Long: `hexsim runs a sequence of actions against a stack whose values may be unknown,
and reports every stack that could result together with every error that could occur.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logOptions reads the persistent logging flags.
func logOptions(cmd *cobra.Command) cli.LogOptions {
	debug, _ := cmd.Flags().GetBool("debug")
	level, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	return cli.LogOptions{Debug: debug, Level: level, JSON: jsonLogs}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("log-level", "", "Log level on stderr: debug, info, warn or error (overrides --debug)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().Int("parallelism", 1, "Branches evaluated concurrently")
	rootCmd.SilenceErrors = true
}
