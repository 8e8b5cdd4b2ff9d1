package statement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentalai/rentalai/internal/model"
	"github.com/rentalai/rentalai/internal/normalize"
)

// rowBuilder turns raw rows into transactions for one document. It remembers
// the last seen date and the last emitted transaction so dateless rows can be
// dated or merged.
type rowBuilder struct {
	layout   *Layout
	out      []model.Transaction
	last     int
	lastDate time.Time
	hasDate  bool
}

func newRowBuilder(l *Layout) *rowBuilder {
	return &rowBuilder{layout: l, last: -1}
}

func (b *rowBuilder) add(r RawRow) {
	narration := normalize.CleanText(r.Narration)
	debit := sideAmount(r.Debit)
	credit := sideAmount(r.Credit)
	hasAmount := debit != nil || credit != nil

	if narration != "" && normalize.HasPrefixFold(narration, b.layout.Summary) {
		b.last = -1
		return
	}
	if !hasAmount && normalize.HasPrefixFold(narration, b.layout.Boilerplate) {
		b.last = -1
		return
	}
	if b.layout.StripSummaryTokens {
		narration = normalize.CutAtFirst(narration, b.layout.Summary)
	}

	date, ok := normalize.ParseDate(r.Date)
	if ok {
		b.lastDate, b.hasDate = date, true
	}
	if narration == "" && !hasAmount {
		return
	}

	review := r.Ambiguous
	if !ok {
		if !hasAmount {
			b.continueLast(narration, r.Ambiguous)
			return
		}
		if !b.hasDate {
			return
		}
		date = b.lastDate
		review = review || !b.layout.CarryDate
	}

	b.out = append(b.out, model.Transaction{
		Date:        model.NewDate(date),
		Narration:   narration,
		Debit:       debit,
		Credit:      credit,
		NeedsReview: review,
	})
	b.last = len(b.out) - 1
}

// continueLast appends wrapped narration to the last emitted transaction.
func (b *rowBuilder) continueLast(narration string, ambiguous bool) {
	if b.last < 0 {
		return
	}
	t := &b.out[b.last]
	t.Narration = joinNarration(t.Narration, narration)
	t.NeedsReview = t.NeedsReview || ambiguous
}

func (b *rowBuilder) transactions() []model.Transaction {
	return b.out
}

func joinNarration(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

// sideAmount parses a debit or credit cell. Zero and unparseable cells count
// as empty; the sign is dropped since the column carries the direction.
func sideAmount(cell string) *decimal.Decimal {
	d, ok := normalize.ParseAmount(cell)
	if !ok || d.IsZero() {
		return nil
	}
	d = d.Abs()
	return &d
}
