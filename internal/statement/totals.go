package statement

import (
	"sort"

	"github.com/rentalai/rentalai/internal/model"
)

// ComputeTotals sums credits as income and debits as expense, split by
// income type.
func ComputeTotals(txns []model.Transaction) model.Totals {
	var t model.Totals
	for _, tx := range txns {
		if tx.Credit != nil {
			t.IncomeTotal = t.IncomeTotal.Add(*tx.Credit)
			t.IncomeEntries++
			switch tx.IncomeType {
			case model.IncomeOffice:
				t.OfficeTotal = t.OfficeTotal.Add(*tx.Credit)
				t.OfficeEntries++
			case model.IncomeLodge:
				t.LodgeTotal = t.LodgeTotal.Add(*tx.Credit)
				t.LodgeEntries++
			}
		}
		if tx.Debit != nil {
			t.ExpenseTotal = t.ExpenseTotal.Add(*tx.Debit)
			t.ExpenseEntries++
		}
	}
	t.Net = t.IncomeTotal.Sub(t.ExpenseTotal).Round(2)
	return t
}

// ComputeYTDTotals buckets transactions by calendar year, newest year first.
// Zero amounts are not counted as entries.
func ComputeYTDTotals(txns []model.Transaction) []model.YearBucket {
	byYear := map[int]*model.YearBucket{}
	for _, tx := range txns {
		if tx.Date.IsZero() {
			continue
		}
		y := tx.Date.Year()
		b, ok := byYear[y]
		if !ok {
			b = &model.YearBucket{Year: y}
			byYear[y] = b
		}
		if tx.Credit != nil && !tx.Credit.IsZero() {
			b.IncomeTotal = b.IncomeTotal.Add(*tx.Credit)
			b.IncomeEntries++
		}
		if tx.Debit != nil && !tx.Debit.IsZero() {
			b.ExpenseTotal = b.ExpenseTotal.Add(*tx.Debit)
			b.ExpenseEntries++
		}
	}

	out := make([]model.YearBucket, 0, len(byYear))
	for _, b := range byYear {
		b.Net = b.IncomeTotal.Sub(b.ExpenseTotal).Round(2)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// SortByDate orders txns by date, keeping statement order for equal dates.
func SortByDate(txns []model.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.Before(txns[j].Date.Time)
	})
}
