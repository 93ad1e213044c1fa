package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/hexsim"
	"github.com/aretw0/hexsim/internal/cli"
	"github.com/aretw0/hexsim/internal/presentation/tui"
	"github.com/aretw0/hexsim/pkg/registry"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		parallelism, _ := cmd.Flags().GetInt("parallelism")
		quiet, _ := cmd.Flags().GetBool("quiet")

		logger, err := cli.CreateLogger(logOptions(cmd))
		if err != nil {
			return err
		}

		if !quiet {
			tui.PrintBanner(cmd.OutOrStdout(), hexsim.Version)
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		r := cli.NewREPL(cmd.InOrStdin(), cmd.OutOrStdout(), registry.Default(),
			hexsim.WithLogger(logger),
			hexsim.WithParallelism(parallelism),
		)
		return r.Run(sigCtx)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
