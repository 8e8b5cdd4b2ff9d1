package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ytdText = `HDFC BANK LIMITED
Page No .: 1 Statement of account
Date Narration Chq./Ref.No. Value Dt Withdrawal Amt. Deposit Amt. Closing Balance
01/04/23 NEFT CR-ACME CORP 0000412345678901 01/04/23 10,000.00 10,000.00
City : MUMBAI
02/04/23 UPI-GROCER-OKAXIS 0000312345678 02/04/23 500.00 9,500.00
PAYMENT FOR VEGETABLES
15/01/24 IMPS-RENT-FLAT 7 0000998877665 15/01/24 12,000.00 21,500.00
STATEMENT SUMMARY :-
Opening Balance Dr Count Cr Count Debits Credits Closing Bal
0.00 1 2 500.00 22,000.00 21,500.00
`

func TestParseYTDText(t *testing.T) {
	l := HDFCYTDLayout()
	txns := parseYTDText(ytdText, &l)
	require.Len(t, txns, 3)

	first := txns[0]
	assert.Equal(t, "2023-04-01", first.Date.String())
	assert.Equal(t, "NEFT CR-ACME CORP", first.Narration)
	assert.Equal(t, "0000412345678901", first.Reference)
	assert.True(t, amountEq("10000", first.Credit))
	assert.True(t, first.NeedsReview, "direction of the first row comes from its narration")

	second := txns[1]
	assert.Equal(t, "UPI-GROCER-OKAXIS PAYMENT FOR VEGETABLES", second.Narration)
	assert.True(t, amountEq("500", second.Debit))
	assert.Nil(t, second.Credit)
	assert.False(t, second.NeedsReview)

	third := txns[2]
	assert.Equal(t, "2024-01-15", third.Date.String())
	assert.Equal(t, "IMPS-RENT-FLAT 7", third.Narration)
	assert.True(t, amountEq("12000", third.Credit))
}

func TestParseYTDText_ThreeAmounts(t *testing.T) {
	l := HDFCYTDLayout()
	txns := parseYTDText("05/06/24 CASH DEP 0.00 2,500.00 12,500.00\n", &l)
	require.Len(t, txns, 1)
	assert.Nil(t, txns[0].Debit)
	assert.True(t, amountEq("2500", txns[0].Credit))
	assert.False(t, txns[0].NeedsReview)
}

func TestParseYTDText_NoKeywordDefaultsToDebit(t *testing.T) {
	l := HDFCYTDLayout()
	txns := parseYTDText("05/06/24 POS AMAZON 05/06/24 799.00 11,701.00\n", &l)
	require.Len(t, txns, 1)
	assert.True(t, amountEq("799", txns[0].Debit))
	assert.True(t, txns[0].NeedsReview)
	assert.Empty(t, txns[0].Reference)
}

func TestParseYTDText_IgnoresNonRows(t *testing.T) {
	l := HDFCYTDLayout()
	assert.Empty(t, parseYTDText("some narration without a row\nmore text\n", &l))
}

func TestParseYTDText_PageHeaderEndsNarration(t *testing.T) {
	l := HDFCYTDLayout()
	text := `Page No .: 1 Statement of account
01/04/23 NEFT CR-ACME CORP 0000412345678901 01/04/23 10,000.00 10,000.00
PVT LTD
Page No .: 2 Statement of account
MR RAJESH KUMAR
12 MG ROAD KORAMANGALA
BANGALORE 560034
Date Narration Chq./Ref.No. Value Dt Withdrawal Amt. Deposit Amt. Closing Balance
02/04/23 UPI-GROCER-OKAXIS 0000312345678 02/04/23 500.00 9,500.00
`
	txns := parseYTDText(text, &l)
	require.Len(t, txns, 2)
	assert.Equal(t, "NEFT CR-ACME CORP PVT LTD", txns[0].Narration)
	assert.Equal(t, "UPI-GROCER-OKAXIS", txns[1].Narration)
	for _, tx := range txns {
		assert.NotContains(t, tx.Narration, "RAJESH")
		assert.NotContains(t, tx.Narration, "KORAMANGALA")
	}
}
