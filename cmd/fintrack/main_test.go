package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/config"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackerJSON = `{
  "version": 1,
  "currency": "NGN",
  "records": [
    {"id": 1, "date": "01-01-2025", "remark": "Salary", "amount": 100, "type": "Credit"},
    {"id": 2, "date": "02-01-2025", "remark": "Groceries", "amount": -50, "type": "Debit"}
  ]
}`

const trackerYAML = `version: 1
currency: USD
records:
  - id: 1
    date: 05-01-2025
    remark: Coffee
    amount: -4.50
    type: Debit
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// useData points the global viper configuration at path for one test.
func useData(t *testing.T, path string) {
	t.Helper()
	viper.Reset()
	viper.Set("data.path", path)
	t.Cleanup(viper.Reset)
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCmd(t *testing.T) {
	useData(t, writeFile(t, t.TempDir(), "tracker.json", trackerJSON))

	out, err := execute(t, listCmd())
	require.NoError(t, err)

	assert.Contains(t, out, "Date ▼")
	assert.Contains(t, out, "Salary")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "2 transactions")
}

func TestListCmd_QueryAndTotals(t *testing.T) {
	useData(t, writeFile(t, t.TempDir(), "tracker.json", trackerJSON))

	out, err := execute(t, listCmd(), "--query", "groceries", "--totals")
	require.NoError(t, err)

	assert.Contains(t, out, `1 of 2 transactions match "groceries"`)
	assert.Contains(t, out, "Totals")
	assert.NotContains(t, out, "Salary")
}

func TestListCmd_CriteriaAndSort(t *testing.T) {
	useData(t, writeFile(t, t.TempDir(), "tracker.json", trackerJSON))

	out, err := execute(t, listCmd(), "--type", "credit", "--sort", "amount:asc")
	require.NoError(t, err)

	assert.Contains(t, out, "Amount ▲")
	assert.Contains(t, out, "Salary")
	assert.NotContains(t, out, "Groceries")
	assert.Contains(t, out, "1 of 2 transactions")
}

func TestListCmd_EmptyStates(t *testing.T) {
	t.Run("empty tracker", func(t *testing.T) {
		useData(t, writeFile(t, t.TempDir(), "tracker.json", `{"version":1,"currency":"NGN","records":[]}`))

		out, err := execute(t, listCmd())
		require.NoError(t, err)
		assert.Contains(t, out, "No transactions recorded yet")
	})

	t.Run("no matches", func(t *testing.T) {
		useData(t, writeFile(t, t.TempDir(), "tracker.json", trackerJSON))

		out, err := execute(t, listCmd(), "--query", "rent")
		require.NoError(t, err)
		assert.Contains(t, out, `No transactions match "rent"`)
	})
}

func TestListCmd_Errors(t *testing.T) {
	useData(t, writeFile(t, t.TempDir(), "tracker.json", trackerJSON))

	_, err := execute(t, listCmd(), "--sort", "category")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidSort)
	assert.Contains(t, common.UserMessage(err), "Invalid --sort")

	_, err = execute(t, listCmd(), "--from", "31-01-2025", "--to", "01-01-2025")
	assert.ErrorIs(t, err, common.ErrInvalidDateRange)

	useData(t, filepath.Join(t.TempDir(), "missing.json"))
	_, err = execute(t, listCmd())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListCmd_FirstAndLast(t *testing.T) {
	useData(t, writeFile(t, t.TempDir(), "tracker.json", trackerJSON))

	tests := []struct {
		name    string
		args    []string
		want    string
		notWant string
	}{
		{name: "first", args: []string{"--first", "1"}, want: "Groceries", notWant: "Salary"},
		{name: "last", args: []string{"-l", "1"}, want: "Salary", notWant: "Groceries"},
		{name: "oldest first", args: []string{"--sort", "date:asc", "-f", "1"}, want: "Salary", notWant: "Groceries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, listCmd(), tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, tt.notWant)
			assert.Contains(t, out, "2 transactions (showing 1)")
		})
	}
}

func TestListCmd_FirstAndLastErrors(t *testing.T) {
	useData(t, writeFile(t, t.TempDir(), "tracker.json", trackerJSON))

	_, err := execute(t, listCmd(), "--first", "1", "--last", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first last")

	_, err = execute(t, listCmd(), "--last", "-2")
	assert.ErrorIs(t, err, common.ErrInvalidLimit)
}

func TestDescribeCmd(t *testing.T) {
	useData(t, writeFile(t, t.TempDir(), "tracker.json", trackerJSON))

	out, err := execute(t, describeCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "records 2")
	assert.Contains(t, out, "01-01-2025 to 02-01-2025")
	assert.Contains(t, out, "75.00")

	out, err = execute(t, describeCmd(), "--type", "debit")
	require.NoError(t, err)
	assert.Contains(t, out, "records 1")
	assert.Contains(t, out, "02-01-2025 to 02-01-2025")

	out, err = execute(t, describeCmd(), "--query", "rent")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions to describe")
}

func TestImportCmd(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "tracker.json", trackerJSON)
	yamlPath := writeFile(t, dir, "coffee.yaml", trackerYAML)
	dbPath := filepath.Join(dir, "ledger.db")
	useData(t, jsonPath)

	out, err := execute(t, importCmd(), jsonPath, yamlPath, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 transactions from 2 files")

	got, err := (&source.SQLiteSource{Path: dbPath}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{got[0].ID, got[1].ID, got[2].ID}, "records are renumbered")
	assert.Equal(t, "Coffee", got[2].Remark)
	assert.Equal(t, "USD", got[2].Currency)

	// A second import appends after the highest id.
	_, err = execute(t, importCmd(), yamlPath, "--db", dbPath)
	require.NoError(t, err)

	got, err = (&source.SQLiteSource{Path: dbPath}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, int64(4), got[3].ID)
}

func TestImportCmd_DryRun(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "tracker.json", trackerJSON)
	dbPath := filepath.Join(dir, "ledger.db")
	useData(t, jsonPath)

	out, err := execute(t, importCmd(), jsonPath, "--db", dbPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: would import 2 transactions")
	assert.NoFileExists(t, dbPath, "a dry run does not create the ledger")
}

func TestImportCmd_DryRunExistingLedger(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "tracker.json", trackerJSON)
	dbPath := filepath.Join(dir, "ledger.db")
	useData(t, jsonPath)

	_, err := execute(t, importCmd(), jsonPath, "--db", dbPath)
	require.NoError(t, err)

	out, err := execute(t, importCmd(), jsonPath, "--db", dbPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: would import 2 transactions")

	got, err := (&source.SQLiteSource{Path: dbPath}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2, "the ledger is left untouched")
}

func TestImportCmd_NeedsLedger(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "tracker.json", trackerJSON)
	useData(t, jsonPath)

	_, err := execute(t, importCmd(), jsonPath)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestImportCmd_SQLiteDataPath(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "tracker.json", trackerJSON)
	dbPath := filepath.Join(dir, "ledger.db")
	useData(t, dbPath)

	_, err := execute(t, importCmd(), jsonPath)
	require.NoError(t, err)

	// list now reads the ledger
	out, err := execute(t, listCmd(), "--query", "salary")
	require.NoError(t, err)
	assert.Contains(t, out, `1 of 2 transactions match "salary"`)
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	useData(t, writeFile(t, dir, "tracker.json", trackerJSON))
	outPath := filepath.Join(dir, "debits.yaml")

	out, err := execute(t, exportCmd(), outPath, "--type", "debit")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 transactions")

	got, err := (&source.JSONSource{Path: outPath}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Groceries", got[0].Remark)
	assert.Equal(t, model.TypeDebit, got[0].Type)

	_, err = execute(t, exportCmd(), filepath.Join(dir, "debits.ofx"))
	assert.ErrorIs(t, err, common.ErrUnsupportedSource)
	assert.Contains(t, common.UserMessage(err), ".csv")
}

func TestExportCmd_CSV(t *testing.T) {
	dir := t.TempDir()
	useData(t, writeFile(t, dir, "tracker.json", trackerJSON))
	outPath := filepath.Join(dir, "all.csv")

	out, err := execute(t, exportCmd(), outPath, "--sort", "date:asc")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 transactions")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "ID,Date,Remark,Amount,Currency,Type\n"+
		"1,01-01-2025,Salary,100,NGN,Credit\n"+
		"2,02-01-2025,Groceries,-50,NGN,Debit\n", string(data))
}

func TestLedgerPath(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		flag    string
		want    string
		wantErr bool
	}{
		{
			name: "flag wins",
			cfg:  config.Config{Data: config.DataConfig{Path: "/data/ledger.db"}},
			flag: "/tmp/other.db",
			want: "/tmp/other.db",
		},
		{
			name: "sqlite data path",
			cfg:  config.Config{Data: config.DataConfig{Path: "/data/ledger.db"}},
			want: "/data/ledger.db",
		},
		{
			name: "explicit sqlite format",
			cfg:  config.Config{Data: config.DataConfig{Path: "/data/ledger", Format: "sqlite"}},
			want: "/data/ledger",
		},
		{
			name:    "json data path",
			cfg:     config.Config{Data: config.DataConfig{Path: "/data/tracker.json"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledgerPath(&tt.cfg, tt.flag)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.qfx", "")
	writeFile(t, dir, "b.qfx", "")
	plain := writeFile(t, dir, "tracker.json", "")

	files := expandFiles([]string{filepath.Join(dir, "*.qfx"), plain, filepath.Join(dir, "missing.ofx")})
	assert.Equal(t, []string{
		filepath.Join(dir, "a.qfx"),
		filepath.Join(dir, "b.qfx"),
		plain,
	}, files)
}
