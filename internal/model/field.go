package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a field key is not one of the transaction fields.
var ErrUnknownField = errors.New("unknown transaction field")

// FieldKey names a sortable, displayable transaction field.
type FieldKey string

// Transaction field keys.
const (
	FieldDate     FieldKey = "date"
	FieldRemark   FieldKey = "remark"
	FieldAmount   FieldKey = "amount"
	FieldCurrency FieldKey = "currency"
	FieldType     FieldKey = "type"
)

// FieldKeys returns every field key in column order.
func FieldKeys() []FieldKey {
	return []FieldKey{FieldDate, FieldRemark, FieldAmount, FieldCurrency, FieldType}
}

// ParseFieldKey validates a field key read from user input.
func ParseFieldKey(s string) (FieldKey, error) {
	key := FieldKey(strings.ToLower(strings.TrimSpace(s)))
	if !key.Valid() {
		return "", fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownField, s, strings.Join(fieldKeyNames(), ", "))
	}
	return key, nil
}

// Valid reports whether k is a known field.
func (k FieldKey) Valid() bool {
	switch k {
	case FieldDate, FieldRemark, FieldAmount, FieldCurrency, FieldType:
		return true
	}
	return false
}

// Display renders the field of t as shown in a table cell.
func (k FieldKey) Display(t Transaction) string {
	switch k {
	case FieldDate:
		return t.Date
	case FieldRemark:
		return t.Remark
	case FieldAmount:
		return t.Amount.StringFixed(2)
	case FieldCurrency:
		return t.Currency
	case FieldType:
		return t.Type.String()
	default:
		panic(fmt.Sprintf("model: unknown field key %q", string(k)))
	}
}

func fieldKeyNames() []string {
	keys := FieldKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return names
}

// Column describes one column of the transaction table.
type Column struct {
	Key   FieldKey
	Label string
	Width int // layout hint, in terminal cells
}

// DefaultColumns returns the static column configuration.
func DefaultColumns() []Column {
	return []Column{
		{Key: FieldDate, Label: "Date", Width: 12},
		{Key: FieldRemark, Label: "Remark", Width: 32},
		{Key: FieldAmount, Label: "Amount", Width: 14},
		{Key: FieldCurrency, Label: "Currency", Width: 8},
		{Key: FieldType, Label: "Type", Width: 8},
	}
}

// Row renders t as one cell per column.
func Row(columns []Column, t Transaction) []string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		cells[i] = c.Key.Display(t)
	}
	return cells
}
