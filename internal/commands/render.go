package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/rentalai/rentalai/internal/model"
	"github.com/rentalai/rentalai/internal/pdfdoc"
	"github.com/rentalai/rentalai/internal/statement"
)

// parseOutput is the --json form of a parsed statement.
type parseOutput struct {
	Bank     string              `json:"bank"`
	Source   string              `json:"source"`
	Strategy string              `json:"strategy,omitempty"`
	Rows     []model.Transaction `json:"rows"`
	Totals   model.Totals        `json:"totals"`
	YTD      []model.YearBucket  `json:"ytd,omitempty"`
	Warnings []string            `json:"warnings,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// warnings turns report failures into operator-facing messages.
func warnings(rep statement.Report) []string {
	var out []string
	for _, f := range rep.Failures {
		if errors.Is(f, pdfdoc.ErrWrongPassword) {
			out = append(out, "wrong PDF password")
			break
		}
	}
	if rep.Unreadable() {
		out = append(out, unreadableHint)
	} else if len(rep.Transactions) == 0 {
		out = append(out, "no transactions found")
	}
	return out
}

func printWarnings(w io.Writer, path string, msgs []string) {
	for _, m := range msgs {
		fmt.Fprintf(w, "warning: %s: %s\n", filepath.Base(path), m)
	}
}

func printTransactions(w io.Writer, txns []model.Transaction) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Date\tDebit\tCredit\tType\t Narration\t")
	for _, t := range txns {
		flag := ""
		if t.NeedsReview {
			flag = " (review)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t %s%s\t\n",
			t.Date, amountCell(t.Debit), amountCell(t.Credit), t.IncomeType, t.Narration, flag)
	}
	tw.Flush()
}

func amountCell(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func printTotals(w io.Writer, t model.Totals) {
	fmt.Fprintf(w, "Income:  %s (%d entries; office %s, lodge %s)\n",
		inr(t.IncomeTotal), t.IncomeEntries, inr(t.OfficeTotal), inr(t.LodgeTotal))
	fmt.Fprintf(w, "Expense: %s (%d entries)\n", inr(t.ExpenseTotal), t.ExpenseEntries)
	fmt.Fprintf(w, "Net:     %s\n", inr(t.Net))
}

func printYTD(w io.Writer, buckets []model.YearBucket) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tIncome\tEntries\tExpense\tEntries\tNet\t")
	for _, b := range buckets {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%s\t\n",
			b.Year, inr(b.IncomeTotal), b.IncomeEntries, inr(b.ExpenseTotal), b.ExpenseEntries, inr(b.Net))
	}
	tw.Flush()
}
