package statement

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalai/rentalai/internal/pdfdoc"
)

var axisMapping = ColumnMapping{Date: 0, Narration: 2, Debit: 3, Credit: 4}

func TestExplodeRow_StackedCells(t *testing.T) {
	row := []string{"01-05-2024\n02-05-2024", "", "RENT FLAT 2\nEB BILL", "\n1,200.00", "12,000.00\n"}
	got := ExplodeRow(row, axisMapping)
	require.Len(t, got, 2)

	assert.Equal(t, RawRow{Date: "01-05-2024", Narration: "RENT FLAT 2", Debit: "", Credit: "12,000.00"}, got[0])
	assert.Equal(t, RawRow{Date: "02-05-2024", Narration: "EB BILL", Debit: "1,200.00", Credit: ""}, got[1])
}

func TestExplodeRow_WrappedNarrationIsNotAmbiguous(t *testing.T) {
	row := []string{"01-05-2024", "", "NEFT FROM\nXYZ CORP", "", "5,000.00"}
	got := ExplodeRow(row, axisMapping)
	require.Len(t, got, 2)
	assert.False(t, got[0].Ambiguous)
	assert.Equal(t, RawRow{Narration: "XYZ CORP"}, got[1])
}

func TestExplodeRow_DisagreeingLineCountsAreAmbiguous(t *testing.T) {
	row := []string{"01-05-2024\n02-05-2024", "", "A\nB\nC", "", "10.00\n20.00"}
	got := ExplodeRow(row, axisMapping)
	require.Len(t, got, 3)
	for _, r := range got {
		assert.True(t, r.Ambiguous)
	}
	assert.Equal(t, "", got[2].Date)
	assert.Equal(t, "C", got[2].Narration)
}

func TestExplodeRow_ShortRowAndMissingColumns(t *testing.T) {
	got := ExplodeRow([]string{"01-05-2024"}, ColumnMapping{Date: 0, Narration: 1, Debit: -1, Credit: 7})
	require.Len(t, got, 1)
	assert.Equal(t, RawRow{Date: "01-05-2024"}, got[0])
}

func TestDocState_CarriesMappingAcrossTables(t *testing.T) {
	l := AxisLayout()
	st := newDocState(&l, zerolog.Nop())

	st.table(1, 0, pdfdoc.Table{
		axisHeader,
		{"01-05-2024", "", "NEFT FROM XYZ", "", "5,000.00", "5,000.00", ""},
	})
	st.table(2, 0, pdfdoc.Table{
		{"03-05-2024", "", "UPI/LODGE/ROOM 4", "", "1,500.00", "6,500.00", ""},
	})

	txns := st.rows.transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, "UPI/LODGE/ROOM 4", txns[1].Narration)
	assert.True(t, amountEq("1500", txns[1].Credit))
}

func TestDocState_SkipsTableBeforeAnyHeader(t *testing.T) {
	l := AxisLayout()
	st := newDocState(&l, zerolog.Nop())
	st.table(1, 0, pdfdoc.Table{{"01-05-2024", "", "NEFT", "", "5,000.00"}})

	assert.Empty(t, st.rows.transactions())
	assert.False(t, st.cells)
}
