package statement

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rentalai/rentalai/internal/model"
)

func TestClassifier_EarliestRuleWins(t *testing.T) {
	rules := []IncomeRule{
		{Match: "ACME", Type: model.IncomeOffice},
		{Match: "acme corp", Type: model.IncomeLodge},
	}
	c := NewClassifier(rules, model.IncomeLodge)
	assert.Equal(t, model.IncomeOffice, c.Classify("NEFT CR-ACME CORP PVT LTD"))

	reversed := NewClassifier([]IncomeRule{rules[1], rules[0]}, model.IncomeLodge)
	assert.Equal(t, model.IncomeLodge, reversed.Classify("NEFT CR-ACME CORP PVT LTD"))
	assert.Equal(t, model.IncomeOffice, reversed.Classify("IMPS ACME INDIA"))
}

func TestClassifier_Fallback(t *testing.T) {
	c := NewClassifier([]IncomeRule{{Match: "infosys", Type: model.IncomeOffice}}, model.IncomeLodge)
	assert.Equal(t, model.IncomeLodge, c.Classify("UPI/ROOM 4/GUEST"))

	empty := NewClassifier(nil, model.IncomeLodge)
	assert.Equal(t, model.IncomeLodge, empty.Classify("anything"))
}

func TestClassifier_IgnoresBlankAndDuplicateRules(t *testing.T) {
	c := NewClassifier([]IncomeRule{
		{Match: "  ", Type: model.IncomeOffice},
		{Match: "wipro", Type: model.IncomeOffice},
		{Match: "WIPRO", Type: model.IncomeLodge},
	}, "")
	assert.Equal(t, model.IncomeOffice, c.Classify("NEFT WIPRO LTD"))
	assert.Equal(t, model.IncomeType(""), c.Classify("OTHER"))
}

func TestClassifier_ApplyOnlyTagsCredits(t *testing.T) {
	txns := []model.Transaction{
		{Narration: "NEFT WIPRO", Credit: ptr("100")},
		{Narration: "NEFT WIPRO", Debit: ptr("100")},
	}
	NewClassifier([]IncomeRule{{Match: "wipro", Type: model.IncomeOffice}}, model.IncomeLodge).Apply(txns)
	assert.Equal(t, model.IncomeOffice, txns[0].IncomeType)
	assert.Empty(t, txns[1].IncomeType)
}

func TestClassifier_ConcurrentClassify(t *testing.T) {
	c := NewClassifier([]IncomeRule{
		{Match: "acme", Type: model.IncomeOffice},
		{Match: "room", Type: model.IncomeLodge},
	}, "")

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				if i%2 == 0 {
					assert.Equal(t, model.IncomeOffice, c.Classify("NEFT ACME CORP"))
				} else {
					assert.Equal(t, model.IncomeLodge, c.Classify("UPI/ROOM 4"))
				}
			}
		}()
	}
	wg.Wait()
}
