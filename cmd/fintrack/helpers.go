package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/config"
	"github.com/Veraticus/fintrack/internal/dashboard"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/order"
	"github.com/Veraticus/fintrack/internal/search"
	"github.com/Veraticus/fintrack/internal/source"
	"github.com/spf13/cobra"
)

// viewFlags are the query, sort and criteria flags shared by list, export and ui.
type viewFlags struct {
	query   string
	sort    string
	txnType string
	from    string
	to      string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "case-insensitive search across every field")
	cmd.Flags().StringVarP(&f.sort, "sort", "s", "", "sort as field:direction, e.g. amount:asc (default: view.sort)")
	cmd.Flags().StringVar(&f.txnType, "type", "", "only credit or debit transactions")
	cmd.Flags().StringVar(&f.from, "from", "", "earliest date, DD-MM-YYYY")
	cmd.Flags().StringVar(&f.to, "to", "", "latest date, DD-MM-YYYY")
}

// options turns the flags into dashboard options.
func (f *viewFlags) options(cfg *config.Config) ([]dashboard.Option, error) {
	state := cfg.SortState()
	if f.sort != "" {
		parsed, err := order.ParseState(f.sort)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("Invalid --sort %q (fields: %v)", f.sort, model.FieldKeys()), err)
		}
		state = parsed
	}

	criteria, err := search.ParseCriteria(f.txnType, f.from, f.to)
	if err != nil {
		return nil, common.NewUserError("Invalid filter", err)
	}

	return []dashboard.Option{
		dashboard.WithSort(state),
		dashboard.WithQuery(f.query),
		dashboard.WithCriteria(criteria),
	}, nil
}

// loadDashboard loads the configured source and composes a dashboard over it.
func loadDashboard(ctx context.Context, flags *viewFlags) (*config.Config, *dashboard.Dashboard, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	opts, err := flags.options(cfg)
	if err != nil {
		return nil, nil, err
	}

	src, err := source.Open(cfg)
	if err != nil {
		return nil, nil, common.NewUserError("Cannot open transaction data", err)
	}

	transactions, err := src.Load(ctx)
	if err != nil {
		return nil, nil, common.NewUserError(fmt.Sprintf("Failed to load %s", cfg.Data.Path), err)
	}

	return cfg, dashboard.New(transactions, opts...), nil
}
