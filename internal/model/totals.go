package model

import "github.com/shopspring/decimal"

// Totals aggregates one month (or any slice) of transactions.
type Totals struct {
	IncomeTotal    decimal.Decimal `json:"income_total"`
	ExpenseTotal   decimal.Decimal `json:"expense_total"`
	Net            decimal.Decimal `json:"net"`
	IncomeEntries  int             `json:"income_entries"`
	ExpenseEntries int             `json:"expense_entries"`
	OfficeTotal    decimal.Decimal `json:"office_total"`
	OfficeEntries  int             `json:"office_entries"`
	LodgeTotal     decimal.Decimal `json:"lodge_total"`
	LodgeEntries   int             `json:"lodge_entries"`
}

// YearBucket is one calendar year of year-to-date totals.
type YearBucket struct {
	Year           int             `json:"year"`
	IncomeTotal    decimal.Decimal `json:"income_total"`
	ExpenseTotal   decimal.Decimal `json:"expense_total"`
	Net            decimal.Decimal `json:"net"`
	IncomeEntries  int             `json:"income_entries"`
	ExpenseEntries int             `json:"expense_entries"`
}
