package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rentalai/rentalai/internal/model"
	"github.com/rentalai/rentalai/internal/normalize"
)

// ytdRowRe matches one HDFC statement line as laid out in page text:
//
//	date narration [ref] [value-date] amount [amount] balance
var ytdRowRe = regexp.MustCompile(
	`^(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})\s+(.*?)(?:\s+(\d{6,}))?(?:\s+\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})?\s+((?:[\d,]+\.\d{1,2}\s+){1,2}[\d,]+\.\d{1,2})$`,
)

// parseYTDText reads HDFC statements row by row from page text. With three
// trailing amounts the columns are withdrawal, deposit and balance; with two
// the single amount's direction follows the running balance. Lines that do
// not start a row continue the narration of the previous one until a summary
// or boilerplate line intervenes.
func parseYTDText(text string, l *Layout) []model.Transaction {
	var out []model.Transaction
	last := -1
	var balance *decimal.Decimal

	for _, line := range normalize.Lines(text) {
		s := normalize.CleanText(line)
		if s == "" {
			continue
		}
		if normalize.HasPrefixFold(s, l.Summary) {
			last = -1
			continue
		}
		if normalize.HasPrefixFold(s, l.Boilerplate) {
			// the letterhead that follows a page marker is not narration
			last = -1
			continue
		}

		t, bal, ok := matchYTDRow(s, balance, l)
		if !ok {
			if last >= 0 {
				out[last].Narration = joinNarration(out[last].Narration, s)
			}
			continue
		}
		balance = bal
		if !t.HasAmount() {
			last = -1
			continue
		}
		out = append(out, t)
		last = len(out) - 1
	}
	return out
}

func matchYTDRow(s string, prev *decimal.Decimal, l *Layout) (model.Transaction, *decimal.Decimal, bool) {
	m := ytdRowRe.FindStringSubmatch(s)
	if m == nil {
		return model.Transaction{}, nil, false
	}
	date, ok := normalize.ParseDateToken(m[1])
	if !ok {
		return model.Transaction{}, nil, false
	}

	var amounts []decimal.Decimal
	for _, f := range strings.Fields(m[4]) {
		d, ok := normalize.ParseAmount(f)
		if !ok {
			return model.Transaction{}, nil, false
		}
		amounts = append(amounts, d)
	}
	bal := amounts[len(amounts)-1]

	t := model.Transaction{
		Date:      model.NewDate(date),
		Narration: normalize.CleanText(m[2]),
		Reference: m[3],
	}
	if len(amounts) == 3 {
		t.Debit = nonZero(amounts[0])
		t.Credit = nonZero(amounts[1])
		return t, &bal, true
	}

	amt := nonZero(amounts[0])
	switch {
	case amt == nil:
	case prev != nil && bal.GreaterThan(*prev):
		t.Credit = amt
	case prev != nil && bal.LessThan(*prev):
		t.Debit = amt
	case isCreditNarration(t.Narration, l):
		t.Credit = amt
		t.NeedsReview = true
	default:
		t.Debit = amt
		t.NeedsReview = true
	}
	return t, &bal, true
}

func isCreditNarration(narration string, l *Layout) bool {
	for _, tok := range strings.FieldsFunc(narration, func(r rune) bool {
		return r == ' ' || r == '-' || r == '/'
	}) {
		if isKeyword(tok, l.CreditKeywords) {
			return true
		}
	}
	return false
}

func nonZero(d decimal.Decimal) *decimal.Decimal {
	if d.IsZero() {
		return nil
	}
	d = d.Abs()
	return &d
}
