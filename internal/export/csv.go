// Package export writes parsed transactions to CSV and XLSX for use in
// spreadsheets, and reads the CSV form back.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/rentalai/rentalai/internal/model"
	"github.com/rentalai/rentalai/internal/normalize"
)

// Row is the flat CSV form of a transaction. Amounts are plain decimals,
// empty when the side is not set.
type Row struct {
	Date        string `csv:"date"`
	Narration   string `csv:"narration"`
	Debit       string `csv:"debit"`
	Credit      string `csv:"credit"`
	IncomeType  string `csv:"income_type"`
	Reference   string `csv:"reference"`
	NeedsReview string `csv:"needs_review"`
}

const reviewFlag = "yes"

// ToRow flattens t.
func ToRow(t model.Transaction) Row {
	r := Row{
		Date:       t.Date.String(),
		Narration:  t.Narration,
		IncomeType: string(t.IncomeType),
		Reference:  t.Reference,
	}
	if t.Debit != nil {
		r.Debit = t.Debit.StringFixed(2)
	}
	if t.Credit != nil {
		r.Credit = t.Credit.StringFixed(2)
	}
	if t.NeedsReview {
		r.NeedsReview = reviewFlag
	}
	return r
}

// FromRow parses r back into a transaction.
func FromRow(r Row) (model.Transaction, error) {
	t := model.Transaction{
		Narration:   r.Narration,
		IncomeType:  model.IncomeType(strings.ToLower(strings.TrimSpace(r.IncomeType))),
		Reference:   r.Reference,
		NeedsReview: strings.EqualFold(strings.TrimSpace(r.NeedsReview), reviewFlag),
	}
	if strings.TrimSpace(r.Date) != "" {
		d, ok := normalize.ParseDate(r.Date)
		if !ok {
			return model.Transaction{}, fmt.Errorf("invalid date %q", r.Date)
		}
		t.Date = model.NewDate(d)
	}
	var err error
	if t.Debit, err = amount(r.Debit); err != nil {
		return model.Transaction{}, fmt.Errorf("debit: %w", err)
	}
	if t.Credit, err = amount(r.Credit); err != nil {
		return model.Transaction{}, fmt.Errorf("credit: %w", err)
	}
	return t, nil
}

func amount(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, ok := normalize.ParseAmount(s)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return &d, nil
}

// WriteCSV writes txns with a header row.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	rows := make([]*Row, len(txns))
	for i, t := range txns {
		r := ToRow(t)
		rows[i] = &r
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

// ReadCSV reads transactions written by WriteCSV. Columns are matched by
// header name, so extra columns are ignored.
func ReadCSV(r io.Reader) ([]model.Transaction, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	txns := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		t, err := FromRow(*row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}
