package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{NewDate(time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC)), `"2024-03-05"`},
		{Date{}, `null`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data))
	}
}

func TestDateUnmarshal(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2023-12-31"`), &d))
	assert.Equal(t, "2023-12-31", d.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"31/12/2023"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20231231`), &d))
}

func TestTransactionSides(t *testing.T) {
	amt := decimal.NewFromInt(10)

	txn := Transaction{Narration: "ATM"}
	assert.False(t, txn.HasAmount())
	assert.False(t, txn.DoubleSided())

	txn.Debit = &amt
	assert.True(t, txn.HasAmount())
	assert.False(t, txn.DoubleSided())

	txn.Credit = &amt
	assert.True(t, txn.DoubleSided())
}

func TestTransactionJSONShape(t *testing.T) {
	credit := decimal.RequireFromString("5000")
	txn := Transaction{
		Date:       NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		Narration:  "NEFT FROM XYZ CORP",
		Credit:     &credit,
		IncomeType: IncomeOffice,
	}
	data, err := json.Marshal(txn)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "2024-05-01", got["date"])
	assert.Equal(t, "NEFT FROM XYZ CORP", got["narration"])
	assert.Nil(t, got["debit"])
	assert.Equal(t, "office", got["income_type"])
	assert.NotContains(t, got, "needs_review")
	assert.NotContains(t, got, "reference")
}
