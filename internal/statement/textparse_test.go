package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseText_HDFCKeywords(t *testing.T) {
	l := HDFCLayout()
	text := `01/05/24 01/05/24 SALARY DEPOSIT 50,000.00 95,000.00
02/05/24 ATM CASH WITHDRAWAL 2,000.00 93,000.00
03/05/24 CHQ 000123 NO AMOUNT HINT 1,000.00
`
	txns := parseText(text, &l)
	require.Len(t, txns, 2)

	assert.Equal(t, "SALARY DEPOSIT", txns[0].Narration)
	assert.True(t, amountEq("50000", txns[0].Credit))
	assert.Nil(t, txns[0].Debit)

	assert.Equal(t, "ATM CASH WITHDRAWAL", txns[1].Narration)
	assert.True(t, amountEq("2000", txns[1].Debit))
}

func TestParseText_GluedMarker(t *testing.T) {
	l := AxisLayout()
	txns := parseText("15-06-2024 IMPS/ROOM 12 3,500.00Cr\n", &l)
	require.Len(t, txns, 1)
	assert.Equal(t, "IMPS/ROOM 12", txns[0].Narration)
	assert.True(t, amountEq("3500", txns[0].Credit))
}

func TestParseText_ReferenceIsNotADate(t *testing.T) {
	l := AxisLayout()
	text := "01-05-2024 UPI RENT 1,000.00 Cr\nUPI/12/05/2024/8812 PAYER NOTE\n"
	txns := parseText(text, &l)
	require.Len(t, txns, 1)
	assert.Equal(t, "UPI RENT UPI/12/05/2024/8812 PAYER NOTE", txns[0].Narration)
}

func TestParseText_SummaryEndsContinuation(t *testing.T) {
	l := AxisLayout()
	text := "01-05-2024 UPI RENT 1,000.00 Cr\nOPENING BALANCE 0.00\nTRAILING LINE\n"
	txns := parseText(text, &l)
	require.Len(t, txns, 1)
	assert.Equal(t, "UPI RENT", txns[0].Narration)
}

func TestParseText_BoilerplateEndsTransaction(t *testing.T) {
	l := HDFCYTDLayout()
	text := "01/05/24 NEFT DEPOSIT 1,000.00\nPage No .: 1 Statement of account\nACME CORP\n"
	txns := parseText(text, &l)
	require.Len(t, txns, 1)
	assert.Equal(t, "NEFT DEPOSIT", txns[0].Narration)
}

func TestParseText_DatedSummaryLines(t *testing.T) {
	for _, l := range []Layout{AxisLayout(), HDFCLayout()} {
		t.Run(l.Bank, func(t *testing.T) {
			text := `01-05-2024 OPENING BALANCE 40,231.00 Cr
02-05-2024 UPI RENT 5,000.00 Cr
31-05-2024 CLOSING BALANCE 45,231.00 Cr
`
			txns := parseText(text, &l)
			require.Len(t, txns, 1)
			assert.Equal(t, "UPI RENT", txns[0].Narration)
			assert.True(t, amountEq("5000", txns[0].Credit))
		})
	}
}

func TestParseText_DatedSummaryAfterValueDate(t *testing.T) {
	l := HDFCLayout()
	txns := parseText("31/05/24 31/05/24 CLOSING BALANCE 45,231.00 Cr\n", &l)
	assert.Empty(t, txns)
}

func TestParseText_StripsSummaryTokens(t *testing.T) {
	l := AxisLayout()
	txns := parseText("01-05-2024 UPI RENT 2,000.00 Cr TRANSACTION TOTAL\n", &l)
	require.Len(t, txns, 1)
	assert.Equal(t, "UPI RENT", txns[0].Narration)
	assert.True(t, amountEq("2000", txns[0].Credit))
}

func TestParseText_WholeRupeeAmounts(t *testing.T) {
	l := AxisLayout()
	text := "01-05-2024 RENT FROM TENANT 2,000 Cr\n02-05-2024 UPI RENT Rs 15000 Cr\n03-05-2024 IMPS 4500Dr\n"
	txns := parseText(text, &l)
	require.Len(t, txns, 3)

	assert.Equal(t, "RENT FROM TENANT", txns[0].Narration)
	assert.True(t, amountEq("2000", txns[0].Credit))

	assert.Equal(t, "UPI RENT", txns[1].Narration)
	assert.True(t, amountEq("15000", txns[1].Credit))
	assert.Nil(t, txns[1].Debit)

	assert.Equal(t, "IMPS", txns[2].Narration)
	assert.True(t, amountEq("4500", txns[2].Debit))
}

func TestParseText_BareReferenceIsNotAnAmount(t *testing.T) {
	l := HDFCLayout()
	txns := parseText("01/05/24 CHQ DEPOSIT 000123 1,500.00\n", &l)
	require.Len(t, txns, 1)
	assert.True(t, amountEq("1500", txns[0].Credit))
	assert.Equal(t, "CHQ DEPOSIT 000123", txns[0].Narration)
}

func TestParseText_NoAmountNoRow(t *testing.T) {
	l := AxisLayout()
	assert.Empty(t, parseText("01-05-2024 JUST TEXT\n", &l))
	assert.Empty(t, parseText("", &l))
}
