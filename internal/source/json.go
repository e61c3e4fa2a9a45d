package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
	"gopkg.in/yaml.v3"
)

// TrackerVersion is the tracker file layout version this package reads and writes.
const TrackerVersion = 1

// Tracker is the on-disk layout of a fintrack tracker file.
type Tracker struct {
	Currency string              `json:"currency" yaml:"currency"`
	Records  []model.Transaction `json:"records" yaml:"records"`
	Version  int                 `json:"version" yaml:"version"`
}

// defaultCategories is the category table every classic tracker starts with.
var defaultCategories = map[string]int{"Income": 1, "Expenses": 2}

// trackerFile is the layout Load accepts: Tracker plus the category tables
// of classic trackers, whose records carry a category id and a description
// instead of a type and a remark.
type trackerFile struct {
	Categories    map[string]int    `json:"categories"`
	Subcategories map[string]string `json:"subcategories_by_id"`
	Currency      string            `json:"currency"`
	Records       []trackerRecord   `json:"records"`
	Version       int               `json:"version"`
}

type trackerRecord struct {
	model.Transaction
	Category    *int   `json:"category"`
	Subcategory *int   `json:"subcategory"`
	Description string `json:"description"`
}

// transaction resolves a classic record's category to a type and its
// description (or subcategory name) to a remark.
func (f *trackerFile) transaction(rec trackerRecord) model.Transaction {
	txn := rec.Transaction

	if strings.TrimSpace(string(txn.Type)) == "" && rec.Category != nil {
		categories := f.Categories
		if len(categories) == 0 {
			categories = defaultCategories
		}
		for name, id := range categories {
			if id == *rec.Category {
				txn.Type = model.TransactionType(name)
				break
			}
		}
	}

	if txn.Remark == "" {
		txn.Remark = rec.Description
	}
	if txn.Remark == "" && rec.Subcategory != nil {
		txn.Remark = f.Subcategories[strconv.Itoa(*rec.Subcategory)]
	}
	return txn
}

// JSONSource reads a tracker file. Files ending in .yaml or .yml are decoded
// as YAML.
type JSONSource struct {
	Path            string
	DefaultCurrency string
}

// Load reads and validates the tracker's records.
func (s *JSONSource) Load(ctx context.Context) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracker %s: %w", s.Path, err)
	}

	tracker, err := decodeTracker(s.Path, data)
	if err != nil {
		return nil, err
	}
	if tracker.Version > TrackerVersion {
		return nil, fmt.Errorf("%w: %s has tracker version %d, expected at most %d",
			common.ErrUnsupportedSource, s.Path, tracker.Version, TrackerVersion)
	}

	currency := strings.TrimSpace(tracker.Currency)
	if currency == "" {
		currency = s.DefaultCurrency
	}

	records := make([]model.Transaction, 0, len(tracker.Records))
	for _, rec := range tracker.Records {
		records = append(records, tracker.transaction(rec))
	}
	for i := range records {
		if strings.TrimSpace(records[i].Currency) == "" {
			records[i].Currency = currency
		}
		records[i].Currency = strings.ToUpper(records[i].Currency)
		if t, err := model.ParseTransactionType(string(records[i].Type)); err == nil {
			records[i].Type = t
		}
	}

	if err := validate(s.Path, records); err != nil {
		return nil, err
	}
	return records, nil
}

func decodeTracker(path string, data []byte) (*trackerFile, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		// decimal.Decimal has no YAML decoder, so records go through JSON.
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("failed to parse tracker %s: %w", path, err)
		}
		converted, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("failed to convert tracker %s: %w", path, err)
		}
		data = converted
	}

	var tracker trackerFile
	if err := json.Unmarshal(data, &tracker); err != nil {
		return nil, fmt.Errorf("failed to parse tracker %s: %w", path, err)
	}
	return &tracker, nil
}

// WriteTracker writes transactions as a tracker file, choosing YAML or JSON
// by extension.
func WriteTracker(path, currency string, transactions []model.Transaction) error {
	tracker := Tracker{
		Version:  TrackerVersion,
		Currency: currency,
		Records:  transactions,
	}
	if tracker.Records == nil {
		tracker.Records = []model.Transaction{}
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlTracker(tracker)
	default:
		data, err = json.MarshalIndent(tracker, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode tracker: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create tracker directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write tracker %s: %w", path, err)
	}
	return nil
}

// yamlTracker encodes through JSON so amounts keep decimal's text form.
func yamlTracker(tracker Tracker) ([]byte, error) {
	raw, err := json.Marshal(tracker)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}
