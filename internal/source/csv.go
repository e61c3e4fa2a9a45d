package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
)

// Export encodings picked by file extension.
const (
	ExportJSON = "json"
	ExportYAML = "yaml"
	ExportCSV  = "csv"
)

var csvHeader = []string{"ID", "Date", "Remark", "Amount", "Currency", "Type"}

// ExportFormat returns the export encoding for path.
func ExportFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ExportJSON, nil
	case ".yaml", ".yml":
		return ExportYAML, nil
	case ".csv":
		return ExportCSV, nil
	default:
		return "", fmt.Errorf("%w: cannot export to %q", common.ErrUnsupportedSource, path)
	}
}

// Export writes transactions to path in the encoding its extension names.
// currency becomes the tracker default for JSON and YAML.
func Export(path, currency string, transactions []model.Transaction) error {
	format, err := ExportFormat(path)
	if err != nil {
		return err
	}
	if format != ExportCSV {
		return WriteTracker(path, currency, transactions)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteCSV(f, transactions); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes a header row and one row per transaction, in order.
// Amounts keep their exact decimal text.
func WriteCSV(w io.Writer, transactions []model.Transaction) error {
	records := make([][]string, 0, len(transactions)+1)
	records = append(records, csvHeader)
	for _, txn := range transactions {
		records = append(records, []string{
			strconv.FormatInt(txn.ID, 10),
			txn.Date,
			txn.Remark,
			txn.Amount.String(),
			txn.Currency,
			txn.Type.String(),
		})
	}

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
