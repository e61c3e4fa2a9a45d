package main

import (
	"fmt"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/config"
	"github.com/Veraticus/fintrack/internal/source"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the listed transactions to a JSON, YAML or CSV file",
		Long: `Write the transactions that list would show, in the same order, to a
file. The extension picks the encoding: .json, .yaml and .yml write a tracker
that fintrack can load again, .csv writes a spreadsheet-friendly table.

Examples:
  fintrack export groceries.json --query groceries --sort amount:asc
  fintrack export january.csv --from 01-01-2025 --to 31-01-2025`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandPath(args[0])
			format, err := source.ExportFormat(path)
			if err != nil {
				return common.NewUserError("Export files must end in .json, .yaml, .yml or .csv", err)
			}

			cfg, d, err := loadDashboard(cmd.Context(), &flags)
			if err != nil {
				return err
			}

			rows := d.Rows()
			if err := source.Export(path, cfg.Data.Currency, rows); err != nil {
				return common.NewUserError("Export failed", err)
			}
			common.LogDebug("Exported transactions", common.Fields{"path": path, "format": format, "count": len(rows), "sort": d.SortState().String()})

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(rows), path)))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
