package main

import (
	"fmt"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/spf13/cobra"
)

func describeCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Summarize transactions",
		Long: `Summarize the transactions list would show: how many there are, the dates
they span, and per-currency credits, debits and average transaction size.

Examples:
  fintrack describe
  fintrack describe --type debit --from 01-01-2025 --to 31-03-2025`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, d, err := loadDashboard(cmd.Context(), &flags)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSummary(d.Describe()))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
