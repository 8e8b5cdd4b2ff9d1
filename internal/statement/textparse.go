package statement

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentalai/rentalai/internal/model"
	"github.com/rentalai/rentalai/internal/normalize"
)

// signMarkers and currencyMarkers are dropped from narration once amounts are
// recovered.
var (
	signMarkers     = []string{"cr", "dr"}
	currencyMarkers = []string{"rs", "inr", "₹"}
)

// textBuffer collects the lines of one transaction in the text fallback.
type textBuffer struct {
	date  time.Time
	lines [][]string
}

// parseText reconstructs transactions from whole-document text. A line whose
// first token is a date starts a transaction; other lines continue it. A
// buffered transaction is kept only if it has a date, a narration and an
// amount recovered from its keywords. Money tokens and Cr/Dr markers are
// left out of the narration.
func parseText(text string, l *Layout) []model.Transaction {
	var out []model.Transaction
	var buf *textBuffer

	flush := func() {
		if buf == nil {
			return
		}
		if t, ok := buf.transaction(l); ok {
			out = append(out, t)
		}
		buf = nil
	}

	for _, line := range normalize.Lines(text) {
		s := normalize.CleanText(line)
		if s == "" {
			continue
		}
		if normalize.HasPrefixFold(s, l.Summary) {
			flush()
			continue
		}
		if normalize.HasPrefixFold(s, l.Boilerplate) {
			flush()
			continue
		}

		tokens := strings.Fields(s)
		if d, ok := normalize.ParseDateToken(tokens[0]); ok {
			flush()
			rest := tokens[1:]
			// value date column
			if len(rest) > 0 {
				if _, ok := normalize.ParseDateToken(rest[0]); ok {
					rest = rest[1:]
				}
			}
			// dated opening and closing balance lines
			if normalize.HasPrefixFold(strings.Join(rest, " "), l.Summary) {
				continue
			}
			buf = &textBuffer{date: d, lines: [][]string{rest}}
			continue
		}
		if buf != nil {
			buf.lines = append(buf.lines, tokens)
		}
	}
	flush()
	return out
}

func (b *textBuffer) transaction(l *Layout) (model.Transaction, bool) {
	var credit, debit *decimal.Decimal
	used := map[[2]int]bool{}
	for i, tokens := range b.lines {
		if credit == nil {
			if d, j, ok := keywordAmount(tokens, l.CreditKeywords, "cr"); ok {
				credit = &d
				used[[2]int{i, j}] = true
			}
		}
		if debit == nil {
			if d, j, ok := keywordAmount(tokens, l.DebitKeywords, "dr"); ok {
				debit = &d
				used[[2]int{i, j}] = true
			}
		}
	}
	if credit == nil && debit == nil {
		return model.Transaction{}, false
	}

	var words []string
	for i, tokens := range b.lines {
		for j, tok := range tokens {
			if used[[2]int{i, j}] || isKeyword(tok, signMarkers) || isKeyword(tok, currencyMarkers) {
				continue
			}
			if _, ok := textAmount(tok); ok {
				continue
			}
			words = append(words, tok)
		}
	}
	narration := strings.Join(words, " ")
	if l.StripSummaryTokens {
		narration = normalize.CutAtFirst(narration, l.Summary)
	}
	narration = normalize.CleanText(narration)
	if narration == "" {
		return model.Transaction{}, false
	}
	return model.Transaction{
		Date:      model.NewDate(b.date),
		Narration: narration,
		Debit:     debit,
		Credit:    credit,
	}, true
}

// keywordAmount finds the amount a keyword on this line points at and returns
// its token index. An amount glued to the marker ("500.00Cr", "15000Cr") wins
// outright; otherwise a keyword token selects its neighbouring amount, falling
// back to the last money-shaped amount on the line. Whole-rupee figures
// without separators count only glued to or just before a marker.
func keywordAmount(tokens []string, keywords []string, marker string) (decimal.Decimal, int, bool) {
	for i, tok := range tokens {
		low := strings.ToLower(tok)
		if strings.HasSuffix(low, marker) && len(low) > len(marker) {
			if d, ok := markedAmount(tok); ok {
				return d, i, true
			}
		}
	}

	for i, tok := range tokens {
		if !isKeyword(tok, keywords) {
			continue
		}
		if i > 0 {
			if d, ok := markedAmount(tokens[i-1]); ok {
				return d, i - 1, true
			}
		}
		if i+1 < len(tokens) {
			if d, ok := textAmount(tokens[i+1]); ok {
				return d, i + 1, true
			}
		}
		for j := len(tokens) - 1; j >= 0; j-- {
			if d, ok := textAmount(tokens[j]); ok {
				return d, j, true
			}
		}
	}
	return decimal.Decimal{}, -1, false
}

func isKeyword(tok string, keywords []string) bool {
	w := strings.ToLower(strings.Trim(tok, ".:,()[]"))
	for _, k := range keywords {
		if w == k {
			return true
		}
	}
	return false
}

// textAmount accepts only tokens written as money, with a decimal point or
// thousands separators, so cheque and reference numbers are not read as
// amounts.
func textAmount(tok string) (decimal.Decimal, bool) {
	if !strings.ContainsAny(tok, ".,") {
		return decimal.Decimal{}, false
	}
	return markedAmount(tok)
}

// markedAmount parses any non-zero figure, including bare digits such as
// "15000". Callers use it only where a marker vouches for the token.
func markedAmount(tok string) (decimal.Decimal, bool) {
	if !strings.ContainsAny(tok, "0123456789") {
		return decimal.Decimal{}, false
	}
	d, ok := normalize.ParseAmount(tok)
	if !ok || d.IsZero() {
		return decimal.Decimal{}, false
	}
	return d.Abs(), true
}
