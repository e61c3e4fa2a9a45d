package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/config"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackerJSON = `{
  "version": 1,
  "currency": "NGN",
  "records": [
    {"id": 1, "date": "01-01-2025", "remark": "Salary", "amount": 100, "type": "Credit"},
    {"id": 2, "date": "02-01-2025", "remark": "Groceries", "amount": "-50.75", "currency": "usd", "type": "expenses"}
  ]
}`

const trackerYAML = `version: 1
currency: GBP
records:
  - id: 7
    date: 15-03-2025
    remark: Rent
    amount: -1500.25
    type: Debit
`

const classicTrackerJSON = `{
  "version": 1,
  "currency": "NGN",
  "created_at": "2025-01-01T08:00:00+00:00",
  "last_modified": "2025-01-03T08:00:00+00:00",
  "categories": {"Income": 1, "Expenses": 2},
  "subcategories_by_id": {"1": "Miscellaneous", "2": "Food"},
  "subcategories_by_name": {"Miscellaneous": 1, "Food": 2},
  "next_subcategory_id": 3,
  "records": [
    {"id": 1, "category": 1, "amount": 250000.0, "subcategory": 1, "description": "January salary", "date": "01-01-2025"},
    {"id": 2, "category": 2, "amount": 4500.5, "subcategory": 2, "description": "Groceries", "date": "02-01-2025"},
    {"id": 3, "category": 2, "amount": 1200.0, "subcategory": 2, "description": "", "date": "03-01-2025"}
  ],
  "next_record_id": 4
}`

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>2000.00
<FITID>2024012001
<NAME>PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestJSONSource_Load(t *testing.T) {
	path := writeFile(t, "tracker.json", trackerJSON)

	got, err := (&JSONSource{Path: path, DefaultCurrency: "EUR"}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "NGN", got[0].Currency, "inherits tracker currency")
	assert.Equal(t, model.TypeCredit, got[0].Type)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(100)))

	assert.Equal(t, "USD", got[1].Currency)
	assert.Equal(t, model.TypeDebit, got[1].Type, "aliases are normalized")
	assert.True(t, got[1].Amount.Equal(decimal.RequireFromString("-50.75")))
}

func TestJSONSource_LoadClassicTracker(t *testing.T) {
	path := writeFile(t, "tracker.json", classicTrackerJSON)

	got, err := (&JSONSource{Path: path, DefaultCurrency: "USD"}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, model.TypeCredit, got[0].Type, "Income category")
	assert.Equal(t, "January salary", got[0].Remark)
	assert.Equal(t, "NGN", got[0].Currency)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(250000)))

	assert.Equal(t, model.TypeDebit, got[1].Type, "Expenses category")
	assert.Equal(t, "Groceries", got[1].Remark)
	assert.True(t, got[1].Amount.Equal(decimal.RequireFromString("4500.5")))

	assert.Equal(t, "Food", got[2].Remark, "empty description falls back to the subcategory")
}

func TestJSONSource_ClassicTrackerCategories(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		content  string
		wantType model.TransactionType
	}{
		{
			name:     "default category table",
			content:  `{"version":1,"currency":"NGN","records":[{"id":1,"category":2,"amount":10,"subcategory":1,"description":"Fuel","date":"01-01-2025"}]}`,
			wantType: model.TypeDebit,
		},
		{
			name:     "renumbered categories",
			content:  `{"version":1,"currency":"NGN","categories":{"Income":7,"Expenses":8},"records":[{"id":1,"category":7,"amount":10,"description":"Refund","date":"01-01-2025"}]}`,
			wantType: model.TypeCredit,
		},
		{
			name:    "unknown category id",
			content: `{"version":1,"currency":"NGN","records":[{"id":1,"category":9,"amount":10,"description":"?","date":"01-01-2025"}]}`,
			wantErr: common.ErrInvalidTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "tracker.json", tt.content)
			got, err := (&JSONSource{Path: path}).Load(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantType, got[0].Type)
		})
	}
}

func TestJSONSource_LoadYAML(t *testing.T) {
	path := writeFile(t, "tracker.yaml", trackerYAML)

	got, err := (&JSONSource{Path: path}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, "15-03-2025", got[0].Date)
	assert.Equal(t, "GBP", got[0].Currency)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("-1500.25")), got[0].Amount.String())
}

func TestJSONSource_DefaultCurrency(t *testing.T) {
	path := writeFile(t, "tracker.json", `{"version":1,"records":[{"id":1,"date":"01-01-2025","amount":5,"type":"Credit"}]}`)

	got, err := (&JSONSource{Path: path, DefaultCurrency: "CAD"}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CAD", got[0].Currency)
}

func TestJSONSource_EmptyTracker(t *testing.T) {
	path := writeFile(t, "tracker.json", `{"version":1,"currency":"NGN","records":[]}`)

	got, err := (&JSONSource{Path: path}).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJSONSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "bad date",
			content: `{"version":1,"currency":"NGN","records":[{"id":1,"date":"2025-01-01","amount":1,"type":"Credit"}]}`,
			wantErr: common.ErrInvalidTransaction,
		},
		{
			name:    "unknown type",
			content: `{"version":1,"currency":"NGN","records":[{"id":1,"date":"01-01-2025","amount":1,"type":"Transfer"}]}`,
			wantErr: common.ErrInvalidTransaction,
		},
		{
			name: "duplicate id",
			content: `{"version":1,"currency":"NGN","records":[
				{"id":1,"date":"01-01-2025","amount":1,"type":"Credit"},
				{"id":1,"date":"02-01-2025","amount":2,"type":"Debit"}]}`,
			wantErr: common.ErrInvalidTransaction,
		},
		{
			name:    "newer version",
			content: `{"version":2,"currency":"NGN","records":[]}`,
			wantErr: common.ErrUnsupportedSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "tracker.json", tt.content)
			_, err := (&JSONSource{Path: path}).Load(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJSONSource_Malformed(t *testing.T) {
	path := writeFile(t, "tracker.json", `{"records": [`)
	_, err := (&JSONSource{Path: path}).Load(context.Background())
	assert.Error(t, err)

	_, err = (&JSONSource{Path: filepath.Join(t.TempDir(), "missing.json")}).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteTracker_RoundTrip(t *testing.T) {
	records := []model.Transaction{
		{ID: 1, Date: "01-01-2025", Remark: "Salary", Amount: decimal.NewFromInt(100), Currency: "NGN", Type: model.TypeCredit},
		{ID: 2, Date: "02-01-2025", Remark: "Groceries", Amount: decimal.RequireFromString("-50.75"), Currency: "NGN", Type: model.TypeDebit},
	}

	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, WriteTracker(path, "NGN", records))

			got, err := (&JSONSource{Path: path}).Load(context.Background())
			require.NoError(t, err)
			require.Len(t, got, 2)
			for i := range records {
				assert.Equal(t, records[i].ID, got[i].ID)
				assert.Equal(t, records[i].Remark, got[i].Remark)
				assert.True(t, records[i].Amount.Equal(got[i].Amount))
			}
		})
	}
}

func TestOFXSource_Load(t *testing.T) {
	path := writeFile(t, "statement.qfx", statementOFX)

	got, err := (&OFXSource{Path: path, DefaultCurrency: "NGN"}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, model.TypeDebit, got[0].Type)
	assert.Equal(t, "15-01-2024", got[0].Date)
	assert.Equal(t, "USD", got[0].Currency)

	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, model.TypeCredit, got[1].Type)
	assert.True(t, got[1].Amount.Equal(decimal.NewFromInt(2000)))
}

func TestSQLiteSource_Load(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		{ID: 3, Date: "03-01-2025", Remark: "Fuel", Amount: decimal.NewFromInt(-20), Currency: "NGN", Type: model.TypeDebit},
		{ID: 1, Date: "01-01-2025", Remark: "Salary", Amount: decimal.NewFromInt(100), Currency: "NGN", Type: model.TypeCredit},
	}))
	require.NoError(t, store.Close())

	got, err := (&SQLiteSource{Path: path}).Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestSQLiteSource_EmptyLedger(t *testing.T) {
	got, err := (&SQLiteSource{Path: filepath.Join(t.TempDir(), "fresh.db")}).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		want    Source
		wantErr error
	}{
		{
			name: "inferred json",
			cfg:  &config.Config{Data: config.DataConfig{Path: "/tmp/tracker.json", Currency: "NGN"}},
			want: &JSONSource{Path: "/tmp/tracker.json", DefaultCurrency: "NGN"},
		},
		{
			name: "explicit sqlite",
			cfg:  &config.Config{Data: config.DataConfig{Path: "/tmp/ledger", Format: "sqlite"}},
			want: &SQLiteSource{Path: "/tmp/ledger"},
		},
		{
			name: "ofx by extension",
			cfg:  &config.Config{Data: config.DataConfig{Path: "/tmp/march.ofx", Currency: "USD"}},
			want: &OFXSource{Path: "/tmp/march.ofx", DefaultCurrency: "USD"},
		},
		{
			name:    "unknown extension",
			cfg:     &config.Config{Data: config.DataConfig{Path: "/tmp/ledger.csv"}},
			wantErr: common.ErrUnsupportedSource,
		},
		{
			name:    "nil config",
			wantErr: common.ErrMissingConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	_, err := New("/tmp/x", "csv", "NGN")
	assert.ErrorIs(t, err, common.ErrUnsupportedSource)
}
