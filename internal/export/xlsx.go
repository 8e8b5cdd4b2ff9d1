package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/rentalai/rentalai/internal/model"
)

// Sheet names in the workbook written by WriteXLSX.
const (
	TransactionsSheet = "Transactions"
	TotalsSheet       = "Totals"
)

// numFmt is the built-in "#,##0.00" format.
const numFmt = 4

var transactionHeader = []any{"Date", "Narration", "Debit", "Credit", "Income Type", "Reference", "Needs Review"}

// WriteXLSX writes a workbook with a Transactions sheet and a Totals sheet.
// Amounts are stored as numbers so they sum in a spreadsheet.
func WriteXLSX(w io.Writer, txns []model.Transaction, totals model.Totals) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TransactionsSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{NumFmt: numFmt})
	if err != nil {
		return fmt.Errorf("creating number style: %w", err)
	}

	if err := f.SetSheetRow(TransactionsSheet, "A1", &transactionHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		r := ToRow(t)
		row := []any{r.Date, r.Narration, cellAmount(t.Debit), cellAmount(t.Credit), r.IncomeType, r.Reference, r.NeedsReview}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(TransactionsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	if len(txns) > 0 {
		last := fmt.Sprintf("D%d", len(txns)+1)
		if err := f.SetCellStyle(TransactionsSheet, "C2", last, style); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}
	if err := f.SetColWidth(TransactionsSheet, "B", "B", 48); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := writeTotals(f, totals, style); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeTotals(f *excelize.File, t model.Totals, style int) error {
	if _, err := f.NewSheet(TotalsSheet); err != nil {
		return fmt.Errorf("creating totals sheet: %w", err)
	}
	rows := [][]any{
		{"Metric", "Amount", "Entries"},
		{"Income", t.IncomeTotal.InexactFloat64(), t.IncomeEntries},
		{"Office", t.OfficeTotal.InexactFloat64(), t.OfficeEntries},
		{"Lodge", t.LodgeTotal.InexactFloat64(), t.LodgeEntries},
		{"Expense", t.ExpenseTotal.InexactFloat64(), t.ExpenseEntries},
		{"Net", t.Net.InexactFloat64(), ""},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(TotalsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing totals row %d: %w", i+1, err)
		}
	}
	if err := f.SetCellStyle(TotalsSheet, "B2", fmt.Sprintf("B%d", len(rows)), style); err != nil {
		return fmt.Errorf("styling totals: %w", err)
	}
	return nil
}

func cellAmount(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.Round(2).InexactFloat64()
}
