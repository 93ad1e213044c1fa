package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/hexsim/internal/cli"
	"github.com/aretw0/hexsim/pkg/adapters/mcp"
	"github.com/aretw0/hexsim/pkg/registry"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts hexsim as an MCP Server over Standard Input/Output.
This allows AI agents to run simulations as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := logOptions(cmd)
		if !opts.Debug && opts.Level == "" {
			// The server always logs lifecycle messages to stderr.
			opts.Level = "info"
		}
		logger, err := cli.CreateLogger(opts)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)

		srv := mcp.NewServer(registry.Default(), mcp.WithLogger(logger))
		logger.Info("Starting hexsim MCP Server (Stdio)...")
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
