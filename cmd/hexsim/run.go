package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/hexsim/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <program>",
	Short: "Run a program file and print every possible outcome",
	Long: `Loads a program (YAML, or JSON when the file ends in .json), applies its actions
to the starting stack and prints the resulting branches.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parallelism, _ := cmd.Flags().GetInt("parallelism")
		format, _ := cmd.Flags().GetString("format")
		plain, _ := cmd.Flags().GetBool("plain")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.Execute(sigCtx, cli.RunOptions{
			ProgramPath: args[0],
			Format:      format,
			Plain:       plain,
			Log:         logOptions(cmd),
			Parallelism: parallelism,
			Out:         cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, markdown, mermaid or json")
	runCmd.Flags().Bool("plain", false, "Disable colours and markdown styling")
}
