package main

import (
	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/dashboard"
	"github.com/Veraticus/fintrack/internal/source"
	"github.com/Veraticus/fintrack/internal/tui"
	"github.com/spf13/cobra"
)

func uiCmd() *cobra.Command {
	var (
		flags  viewFlags
		totals bool
	)

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse transactions in an interactive dashboard",
		Long: `Open the interactive dashboard.

Keys:
  /        search (applied as you type), Enter keeps it, Esc clears it
  1-5      sort by column; pressing the active column again flips direction
  ←/→, s   move the column focus and sort by it
  t        toggle per-currency totals
  Ctrl+R   reload from disk
  q        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			opts, err := flags.options(cfg)
			if err != nil {
				return err
			}

			src, err := source.Open(cfg)
			if err != nil {
				return common.NewUserError("Cannot open transaction data", err)
			}

			return tui.Run(cmd.Context(),
				tui.WithSource(src),
				tui.WithDashboard(dashboard.New(nil, opts...)),
				tui.WithTotals(totals),
			)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&totals, "totals", false, "show the totals panel on start")

	return cmd
}
