package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/hexsim/pkg/domain"
	"github.com/aretw0/hexsim/pkg/registry"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the available actions",
	Run: func(cmd *cobra.Command, args []string) {
		reg := registry.Default()
		for _, name := range reg.Names() {
			a, _ := reg.Lookup(name)
			if c, ok := a.(interface{ Unwrap() domain.ConstLenAction }); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s arity %d\n", name, c.Unwrap().Arity())
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd)
}
