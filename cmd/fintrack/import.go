package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/config"
	"github.com/Veraticus/fintrack/internal/source"
	"github.com/Veraticus/fintrack/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var (
		dbPath string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import tracker, YAML or OFX/QFX files into the SQLite ledger",
		Long: `Import transactions into the SQLite ledger. Each file's format is taken
from its extension (.json, .yaml, .ofx, .qfx). Imported records get fresh ids
following the ledger's highest id.

Examples:
  # Import a bank export
  fintrack import ~/Downloads/march.qfx --db ~/.fintrack/ledger.db

  # Import every statement in a directory
  fintrack import ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			target, err := ledgerPath(cfg, dbPath)
			if err != nil {
				return err
			}

			files := expandFiles(args)
			if len(files) == 0 {
				return common.NewUserError("No files found to import", common.ErrEmptySource)
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Import")
			ctx := handler.HandleInterrupts(cmd.Context(), !dryRun)

			store, nextID, err := openLedger(ctx, target, dryRun)
			if err != nil {
				return err
			}
			if store != nil {
				defer func() { _ = store.Close() }()
			}

			slog.Info("Importing files", "file_count", len(files), "ledger", target, "dry_run", dryRun)

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Importing...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr())
				}),
			)

			imported, failed := 0, 0
			for _, file := range files {
				if ctx.Err() != nil {
					break
				}

				count, importErr := importFile(ctx, store, file, cfg.Data.Currency, nextID, dryRun)
				if importErr != nil {
					failed++
					if errors.Is(importErr, common.ErrEmptySource) {
						slog.Warn("No transactions found in file", "file", filepath.Base(file))
					} else {
						common.LogError(importErr, "Failed to import file", common.Fields{"file": file})
					}
				}
				nextID += int64(count)
				imported += count

				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			}

			if handler.WasInterrupted() {
				return nil
			}

			common.LogInfo("Import finished", common.Fields{
				"imported": imported,
				"failed":   failed,
				"ledger":   target,
				"dry_run":  dryRun,
			})

			summary := fmt.Sprintf("Imported %d transactions from %d files into %s", imported, len(files)-failed, target)
			if dryRun {
				summary = fmt.Sprintf("Dry run: would import %d transactions from %d files", imported, len(files)-failed)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite ledger to import into (default: data.path when data.format is sqlite)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without saving")

	return cmd
}

// ledgerPath picks the SQLite ledger an import writes to.
func ledgerPath(cfg *config.Config, flagPath string) (string, error) {
	if flagPath != "" {
		return config.ExpandPath(flagPath), nil
	}

	format, err := cfg.ResolvedFormat()
	if err == nil && format == config.FormatSQLite {
		return cfg.Data.Path, nil
	}
	return "", common.NewUserError(
		"Import needs a SQLite ledger: pass --db or set data.format to sqlite",
		common.ErrInvalidConfig)
}

// openLedger opens the import target and returns the first id to assign. A
// dry run never creates or migrates the ledger: it reads an existing one and
// starts at 1 when there is none.
func openLedger(ctx context.Context, path string, dryRun bool) (*storage.SQLiteStorage, int64, error) {
	if dryRun {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, 1, nil
		}

		store, err := storage.OpenReadOnly(path)
		if err != nil {
			return nil, 0, common.NewUserError("Cannot open ledger", err)
		}
		version, err := store.SchemaVersion(ctx)
		if err != nil {
			_ = store.Close()
			return nil, 0, err
		}
		if version == 0 {
			return store, 1, nil
		}
		nextID, err := store.NextID(ctx)
		if err != nil {
			_ = store.Close()
			return nil, 0, err
		}
		return store, nextID, nil
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, 0, common.NewUserError("Cannot open ledger", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, 0, common.NewUserError("Cannot migrate ledger", err)
	}
	nextID, err := store.NextID(ctx)
	if err != nil {
		_ = store.Close()
		return nil, 0, err
	}
	return store, nextID, nil
}

// expandFiles expands glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) []string {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil || len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files
}

// importFile loads one file and saves its records under ids starting at
// firstID. It returns how many records the file held.
func importFile(ctx context.Context, store *storage.SQLiteStorage, path, currency string, firstID int64, dryRun bool) (int, error) {
	src, err := source.ForPath(path, currency)
	if err != nil {
		return 0, err
	}

	transactions, err := src.Load(ctx)
	if err != nil {
		return 0, err
	}
	if len(transactions) == 0 {
		return 0, fmt.Errorf("%w: %s", common.ErrEmptySource, path)
	}

	for i := range transactions {
		transactions[i].ID = firstID + int64(i)
	}

	if dryRun {
		return len(transactions), nil
	}
	if err := store.SaveTransactions(ctx, transactions); err != nil {
		return 0, err
	}
	return len(transactions), nil
}
