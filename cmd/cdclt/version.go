package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coresat/cdclt/solver"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the solver version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(solver.Version())
		},
	}
}
