package main

import (
	"fmt"

	"github.com/spf13/cobra"

	econstat "github.com/vic2tools/econstat"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "econstat %s (built %s)\n", econstat.Version, econstat.CompiledAt)
		},
	}
}
