package statement

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rentalai/rentalai/internal/normalize"
	"github.com/rentalai/rentalai/internal/pdfdoc"
)

type fakePage struct {
	num      int
	tables   []pdfdoc.Table
	text     string
	tableErr error
}

func (p fakePage) Number() int { return p.num }

func (p fakePage) Tables() ([]pdfdoc.Table, error) { return p.tables, p.tableErr }

func (p fakePage) Text() (string, error) { return p.text, nil }

type fakeDoc struct{ pages []pdfdoc.Page }

func (d fakeDoc) Pages() ([]pdfdoc.Page, error) { return d.pages, nil }

func (fakeDoc) Close() error { return nil }

// fakeOpener serves the same pages for every Open and counts calls.
type fakeOpener struct {
	pages []pdfdoc.Page
	err   error
	opens atomic.Int32
}

func (o *fakeOpener) Open(string, string) (pdfdoc.Document, error) {
	o.opens.Add(1)
	if o.err != nil {
		return nil, o.err
	}
	return fakeDoc{pages: o.pages}, nil
}

func tablePages(tables ...pdfdoc.Table) *fakeOpener {
	o := &fakeOpener{}
	for i, t := range tables {
		o.pages = append(o.pages, fakePage{num: i + 1, tables: []pdfdoc.Table{t}})
	}
	return o
}

func textPages(texts ...string) *fakeOpener {
	o := &fakeOpener{}
	for i, t := range texts {
		o.pages = append(o.pages, fakePage{num: i + 1, text: t})
	}
	return o
}

type panicOpener struct{}

func (panicOpener) Open(string, string) (pdfdoc.Document, error) {
	panic("xref table corrupt")
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func amountEq(want string, got *decimal.Decimal) bool {
	return got != nil && got.Equal(dec(want))
}

var axisHeader = []string{"Tran Date", "Chq No", "Particulars", "Debit", "Credit", "Balance", "Init. Br"}

var hdfcHeader = []string{"Date", "Narration", "Chq./Ref.No.", "Value Dt", "Withdrawal Amt.", "Deposit Amt.", "Closing Balance"}

func ptr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, ok := normalize.ParseDate(s)
	require.True(t, ok, s)
	return d
}
