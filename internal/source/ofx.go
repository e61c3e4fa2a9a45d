package source

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/ofx"
)

// OFXSource reads an OFX/QFX bank or credit card statement.
type OFXSource struct {
	Path            string
	DefaultCurrency string
}

// Load parses the statement's transactions.
func (s *OFXSource) Load(ctx context.Context) ([]model.Transaction, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OFX file %s: %w", s.Path, err)
	}
	defer func() { _ = file.Close() }()

	transactions, err := ofx.NewParser(s.DefaultCurrency).ParseFile(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}

	if err := validate(s.Path, transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}
