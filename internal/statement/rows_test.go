package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(l Layout, rows ...RawRow) *rowBuilder {
	b := newRowBuilder(&l)
	for _, r := range rows {
		b.add(r)
	}
	return b
}

func TestRowBuilder_ContinuationMerge(t *testing.T) {
	b := build(AxisLayout(),
		RawRow{Date: "01/05/2024", Narration: "NEFT FROM", Credit: "5000"},
		RawRow{Narration: "XYZ CORP"},
	)
	txns := b.transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, "NEFT FROM XYZ CORP", txns[0].Narration)
	assert.True(t, amountEq("5000", txns[0].Credit))
	assert.Nil(t, txns[0].Debit)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), txns[0].Date.Time)
}

func TestRowBuilder_ContinuationWithoutPreviousRowIsDropped(t *testing.T) {
	b := build(AxisLayout(), RawRow{Narration: "ORPHAN TEXT"})
	assert.Empty(t, b.transactions())
}

func TestRowBuilder_SummaryRowsDroppedAndResetContinuation(t *testing.T) {
	b := build(HDFCLayout(),
		RawRow{Date: "01/05/24", Narration: "UPI-RENT-FLAT 2", Credit: "12,000.00"},
		RawRow{Narration: "CLOSING BALANCE 45,231.00", Debit: "45,231.00", Credit: "45,231.00"},
		RawRow{Narration: "GENERATED FOOTER"},
	)
	txns := b.transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, "UPI-RENT-FLAT 2", txns[0].Narration)
	for _, tx := range txns {
		assert.NotContains(t, tx.Narration, "CLOSING BALANCE")
	}
}

func TestRowBuilder_HDFCCarriesDateForward(t *testing.T) {
	b := build(HDFCLayout(),
		RawRow{Date: "01/05/24", Narration: "ATM WDL", Debit: "2,000.00"},
		RawRow{Narration: "POS PURCHASE", Debit: "500.00"},
	)
	txns := b.transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, txns[0].Date, txns[1].Date)
	assert.True(t, amountEq("500", txns[1].Debit))
}

func TestRowBuilder_AxisFlagsDatelessAmounts(t *testing.T) {
	b := build(AxisLayout(),
		RawRow{Narration: "POS BEFORE ANY DATE", Debit: "100.00"},
		RawRow{Date: "01-05-2024", Narration: "ATM WDL", Debit: "2,000.00"},
		RawRow{Narration: "POS PURCHASE", Debit: "500.00"},
	)
	txns := b.transactions()
	require.Len(t, txns, 2)
	assert.False(t, txns[0].NeedsReview)

	dateless := txns[1]
	assert.Equal(t, "POS PURCHASE", dateless.Narration)
	assert.Equal(t, txns[0].Date, dateless.Date)
	assert.True(t, amountEq("500", dateless.Debit))
	assert.True(t, dateless.NeedsReview)
}

func TestRowBuilder_CarriedDateNotFlagged(t *testing.T) {
	b := build(HDFCLayout(),
		RawRow{Date: "01/05/24", Narration: "ATM WDL", Debit: "2,000.00"},
		RawRow{Narration: "POS PURCHASE", Debit: "500.00"},
	)
	txns := b.transactions()
	require.Len(t, txns, 2)
	assert.False(t, txns[1].NeedsReview)
}

func TestRowBuilder_AxisStripsSummaryTokens(t *testing.T) {
	b := build(AxisLayout(),
		RawRow{Date: "01-05-2024", Narration: "UPI/RENT TRANSACTION TOTAL 12,000.00", Credit: "12,000.00"},
	)
	txns := b.transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, "UPI/RENT", txns[0].Narration)
}

func TestRowBuilder_EmptyAndZeroCells(t *testing.T) {
	b := build(HDFCLayout(),
		RawRow{},
		RawRow{Date: "01/05/24", Narration: "NEFT CR", Debit: "0.00", Credit: "(1,000.00)"},
	)
	txns := b.transactions()
	require.Len(t, txns, 1)
	assert.Nil(t, txns[0].Debit)
	assert.True(t, amountEq("1000", txns[0].Credit))
}

func TestRowBuilder_BoilerplateEndsContinuation(t *testing.T) {
	b := build(HDFCYTDLayout(),
		RawRow{Date: "01/05/24", Narration: "NEFT CR-ACME", Credit: "5,000.00"},
		RawRow{Narration: "Page No .: 2"},
		RawRow{Narration: "MR RAJESH KUMAR"},
		RawRow{Date: "02/05/24", Narration: "UPI-RENT", Credit: "1,000.00"},
		RawRow{Narration: "FLAT 4"},
	)
	txns := b.transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, "NEFT CR-ACME", txns[0].Narration)
	assert.Equal(t, "UPI-RENT FLAT 4", txns[1].Narration)
}

func TestRowBuilder_AmbiguousRowsNeedReview(t *testing.T) {
	b := build(AxisLayout(),
		RawRow{Date: "01-05-2024", Narration: "A", Credit: "10.00", Ambiguous: true},
		RawRow{Date: "02-05-2024", Narration: "B", Credit: "20.00"},
		RawRow{Narration: "C", Ambiguous: true},
	)
	txns := b.transactions()
	require.Len(t, txns, 2)
	assert.True(t, txns[0].NeedsReview)
	assert.True(t, txns[1].NeedsReview)
	assert.Equal(t, "B C", txns[1].Narration)
}
