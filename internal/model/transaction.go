package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeType tags a credit by who paid it.
type IncomeType string

const (
	IncomeOffice IncomeType = "office"
	IncomeLodge  IncomeType = "lodge"
)

// Transaction is one reconciled statement line.
type Transaction struct {
	Date        Date             `json:"date"`
	Narration   string           `json:"narration"`
	Debit       *decimal.Decimal `json:"debit"`  // nil if not a withdrawal
	Credit      *decimal.Decimal `json:"credit"` // nil if not a deposit
	IncomeType  IncomeType       `json:"income_type,omitempty"`
	Reference   string           `json:"reference,omitempty"`
	NeedsReview bool             `json:"needs_review,omitempty"`
}

// HasAmount reports whether either side is set.
func (t Transaction) HasAmount() bool {
	return t.Debit != nil || t.Credit != nil
}

// DoubleSided reports whether both debit and credit are set.
func (t Transaction) DoubleSided() bool {
	return t.Debit != nil && t.Credit != nil
}

// Date is a calendar date without a time component, serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// String returns the ISO form.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return &time.ParseError{Layout: dateLayout, Value: s, Message: ": expected quoted date"}
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
