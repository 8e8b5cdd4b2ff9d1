package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalai/rentalai/internal/model"
)

func TestString(t *testing.T) {
	tests := []struct {
		p    Period
		want string
	}{
		{Month(2025, 1), "2025-01"},
		{Month(2024, 12), "2024-12"},
		{Year(2023), "2023"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.p.String())
	}
}

func TestDir(t *testing.T) {
	assert.Equal(t, "2025/01", Month(2025, 1).Dir())
	assert.Equal(t, "2025", Year(2025).Dir())
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Period
	}{
		{"2025-01", Month(2025, 1)},
		{"2025-12", Month(2025, 12)},
		{"2024", Year(2024)},
		{" 2024-3 ", Month(2024, 3)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "25-01", "2025-13", "2025-00", "2025-xx"} {
		_, err := Parse(input)
		assert.Error(t, err, input)
	}
}

func TestContains(t *testing.T) {
	may := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	assert.True(t, Month(2024, 5).Contains(may))
	assert.False(t, Month(2024, 6).Contains(may))
	assert.True(t, Year(2024).Contains(may))
	assert.False(t, Year(2023).Contains(may))
}

func on(y, m, d int) model.Date {
	return model.NewDate(time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC))
}

func TestDominant(t *testing.T) {
	txns := []model.Transaction{
		{Date: on(2024, 4, 30)},
		{Date: on(2024, 5, 1)},
		{Date: on(2024, 5, 2)},
		{},
	}
	p, ok := Dominant(txns)
	require.True(t, ok)
	assert.Equal(t, Month(2024, 5), p)
}

func TestDominant_TieGoesToLater(t *testing.T) {
	p, ok := Dominant([]model.Transaction{{Date: on(2024, 5, 31)}, {Date: on(2024, 6, 1)}})
	require.True(t, ok)
	assert.Equal(t, Month(2024, 6), p)
}

func TestDominant_Empty(t *testing.T) {
	_, ok := Dominant(nil)
	assert.False(t, ok)
}
