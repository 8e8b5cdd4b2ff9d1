package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// markerRe matches currency markers and bank sign annotations.
var markerRe = regexp.MustCompile(`(?i)₹|inr|rs\.?|cr\.?|dr\.?`)

// mojibakeRupee is "₹" decoded as cp1252. It must go before NFKC folds the
// trailing superscript one into a digit.
const mojibakeRupee = "â‚¹"

var numericRe = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)$`)

// ParseAmount parses a locale-formatted currency cell such as "1,234.50",
// "₹ 2,000", "Rs. 500 Cr" or "(500.00)". Parenthesized values are negative.
// It reports false for empty or unparseable input.
func ParseAmount(cell string) (decimal.Decimal, bool) {
	s := CleanText(strings.ReplaceAll(cell, mojibakeRupee, ""))
	if s == "" {
		return decimal.Decimal{}, false
	}
	s = markerRe.ReplaceAllString(s, "")
	s = strings.NewReplacer(",", "", " ", "").Replace(s)

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	} else if len(s) > 1 && strings.HasSuffix(s, "-") && !strings.HasPrefix(s, "-") {
		neg = true
		s = s[:len(s)-1]
	}
	if !numericRe.MatchString(s) {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(strings.TrimSuffix(s, "."))
	if err != nil {
		return decimal.Decimal{}, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// AmountPtr parses cell and returns nil when it holds no amount.
func AmountPtr(cell string) *decimal.Decimal {
	d, ok := ParseAmount(cell)
	if !ok {
		return nil
	}
	return &d
}
