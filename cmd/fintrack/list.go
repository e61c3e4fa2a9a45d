package main

import (
	"fmt"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/common"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var (
		flags       viewFlags
		totals      bool
		first, last int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List transactions as a table, filtered by a free-text query and optional
structured criteria and sorted by any column.

Examples:
  # Everything, newest first
  fintrack list

  # Search every field; matches are case-insensitive
  fintrack list --query groceries

  # Debits in January, largest outflow first
  fintrack list --type debit --from 01-01-2025 --to 31-01-2025 --sort amount:asc --totals

  # The five oldest transactions
  fintrack list --sort date:asc --first 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if first < 0 || last < 0 {
				return common.NewUserError("--first and --last take a positive count", common.ErrInvalidLimit)
			}

			_, d, err := loadDashboard(cmd.Context(), &flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			view := d.View().Head(first).Tail(last)
			fmt.Fprintln(out, cli.RenderView(view))

			if totals && !view.IsEmpty() {
				fmt.Fprintln(out, cli.RenderTotals(d.Totals()))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&totals, "totals", false, "show per-currency totals of the listed transactions")
	cmd.Flags().IntVarP(&first, "first", "f", 0, "show only the first N rows")
	cmd.Flags().IntVarP(&last, "last", "l", 0, "show only the last N rows")
	cmd.MarkFlagsMutuallyExclusive("first", "last")

	return cmd
}
