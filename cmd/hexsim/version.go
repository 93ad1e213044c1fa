package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/hexsim"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hexsim",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hexsim version %s\n", hexsim.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
