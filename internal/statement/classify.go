package statement

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/rentalai/rentalai/internal/model"
)

// IncomeRule tags credits whose narration contains Match.
type IncomeRule struct {
	Match string           `yaml:"match"`
	Type  model.IncomeType `yaml:"type"`
}

// Classifier assigns an income type to credits. Rules are matched
// case-insensitively in one pass; when several match, the earliest rule
// wins. Credits matching no rule get the fallback type.
type Classifier struct {
	matcher  *ahocorasick.Matcher
	types    []model.IncomeType // by pattern index
	fallback model.IncomeType
}

// NewClassifier builds a classifier from ordered rules. Rules with an empty
// pattern are ignored; a repeated pattern keeps its first type.
func NewClassifier(rules []IncomeRule, fallback model.IncomeType) *Classifier {
	c := &Classifier{fallback: fallback}

	seen := map[string]bool{}
	var patterns [][]byte
	for _, r := range rules {
		p := strings.ToLower(strings.TrimSpace(r.Match))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		patterns = append(patterns, []byte(p))
		c.types = append(c.types, r.Type)
	}
	if len(patterns) > 0 {
		c.matcher = ahocorasick.NewMatcher(patterns)
	}
	return c
}

// Classify returns the income type for a credit with this narration.
func (c *Classifier) Classify(narration string) model.IncomeType {
	if c.matcher == nil {
		return c.fallback
	}
	hits := c.matcher.MatchThreadSafe([]byte(strings.ToLower(narration)))
	best := -1
	for _, i := range hits {
		if i >= 0 && i < len(c.types) && (best < 0 || i < best) {
			best = i
		}
	}
	if best < 0 {
		return c.fallback
	}
	return c.types[best]
}

// Apply tags every credit in txns. Debits are left untouched.
func (c *Classifier) Apply(txns []model.Transaction) {
	for i := range txns {
		if txns[i].Credit == nil {
			continue
		}
		txns[i].IncomeType = c.Classify(txns[i].Narration)
	}
}
