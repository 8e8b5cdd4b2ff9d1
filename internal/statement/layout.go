// Package statement turns bank statement PDFs into transactions. A Layout
// configures one shared engine per bank: header synonyms, summary and
// boilerplate phrases, and the ordered extraction strategies to try.
package statement

// Strategy names, in the order a Layout lists them.
const (
	StrategyTable   = "table"
	StrategyText    = "text"
	StrategyYTDText = "ytd-text"
)

// HeaderSynonyms lists the lowered header fragments that identify each
// semantic column.
type HeaderSynonyms struct {
	Date      []string `yaml:"date"`
	Narration []string `yaml:"narration"`
	Debit     []string `yaml:"debit"`
	Credit    []string `yaml:"credit"`
}

// Layout is the per-bank configuration of the engine.
type Layout struct {
	Bank    string
	Headers HeaderSynonyms
	// HeaderWindow is how many leading rows of a table are searched for the
	// header.
	HeaderWindow int
	// Summary phrases drop a row (and end continuation) when a narration
	// starts with one of them.
	Summary []string
	// Boilerplate phrases drop amount-less rows and text lines. They mark page
	// furniture, so they also end continuation.
	Boilerplate []string
	// StripSummaryTokens cuts narration at the first summary phrase.
	StripSummaryTokens bool
	// CarryDate dates amount-bearing rows without a date cell with the last
	// seen date. Without it such rows still take the last date but are
	// flagged for review.
	CarryDate bool
	// MergeSameDate folds an amount-less row into the previous one when both
	// carry the same date.
	MergeSameDate      bool
	Classify           bool
	DropEmptyNarration bool
	CreditKeywords     []string
	DebitKeywords      []string
	Strategies         []string
}

const defaultHeaderWindow = 4

var (
	crDrCredit = []string{"cr", "credit"}
	crDrDebit  = []string{"dr", "debit"}
)

// AxisLayout configures Axis Bank statements.
func AxisLayout() Layout {
	return Layout{
		Bank: "axis",
		Headers: HeaderSynonyms{
			Date:      []string{"tran date", "date"},
			Narration: []string{"particulars"},
			Debit:     []string{"debit"},
			Credit:    []string{"credit"},
		},
		HeaderWindow:       defaultHeaderWindow,
		Summary:            []string{"transaction total", "closing balance", "opening balance"},
		StripSummaryTokens: true,
		MergeSameDate:      true,
		Classify:           true,
		DropEmptyNarration: true,
		CreditKeywords:     crDrCredit,
		DebitKeywords:      crDrDebit,
		Strategies:         []string{StrategyTable, StrategyText},
	}
}

var hdfcSummary = []string{"closing balance", "opening balance", "total"}

func hdfcHeaders() HeaderSynonyms {
	return HeaderSynonyms{
		Date:      []string{"date"},
		Narration: []string{"narration", "details"},
		Debit:     []string{"withdrawal"},
		Credit:    []string{"deposit"},
	}
}

// HDFCLayout configures HDFC monthly statements.
func HDFCLayout() Layout {
	return Layout{
		Bank:           "hdfc",
		Headers:        hdfcHeaders(),
		HeaderWindow:   defaultHeaderWindow,
		Summary:        hdfcSummary,
		CarryDate:      true,
		Classify:       true,
		CreditKeywords: append([]string{"deposit"}, crDrCredit...),
		DebitKeywords:  append([]string{"withdrawal"}, crDrDebit...),
		Strategies:     []string{StrategyTable, StrategyText},
	}
}

// hdfcBoilerplate is the letterhead, address and account metadata printed
// around HDFC year-to-date statement tables.
var hdfcBoilerplate = []string{
	"hdfc bank limited",
	"hdfc bank ltd",
	"page no",
	"statement of account",
	"account branch",
	"address :",
	"city :",
	"state :",
	"phone no",
	"email :",
	"cust id",
	"customer id",
	"account no",
	"a/c open date",
	"account status",
	"account type",
	"rtgs/neft ifsc",
	"micr :",
	"branch code",
	"product code",
	"nomination",
	"joint holders",
	"od limit",
	"currency :",
	"from :",
	"to :",
	"generated on",
	"generated by",
	"requesting branch code",
	"*closing balance includes",
	"contents of this statement",
	"this is a computer generated",
	"registered office address",
	"gstin",
	"statement summary",
	"dr count",
	"cr count",
	"date narration",
}

// HDFCYTDLayout configures HDFC year-to-date statements, which may span
// several years.
func HDFCYTDLayout() Layout {
	l := HDFCLayout()
	l.Bank = "hdfc-ytd"
	l.Boilerplate = hdfcBoilerplate
	l.Classify = false
	l.Strategies = []string{StrategyYTDText, StrategyTable, StrategyText}
	return l
}

// GenericLayout accepts the union of every known header synonym. It is the
// fallback when a bank driver yields nothing.
func GenericLayout() Layout {
	return Layout{
		Bank: "generic",
		Headers: HeaderSynonyms{
			Date:      []string{"transaction date", "tran date", "txn date", "date"},
			Narration: []string{"particular", "narration", "description", "details", "remarks"},
			Debit:     []string{"debit", "withdrawal"},
			Credit:    []string{"credit", "deposit"},
		},
		HeaderWindow:   defaultHeaderWindow,
		Summary:        []string{"transaction total", "closing balance", "opening balance", "total"},
		CarryDate:      true,
		CreditKeywords: []string{"cr", "credit", "deposit"},
		DebitKeywords:  []string{"dr", "debit", "withdrawal"},
		Strategies:     []string{StrategyTable, StrategyText},
	}
}

// Layouts returns every built-in layout keyed by bank name.
func Layouts() map[string]Layout {
	out := map[string]Layout{}
	for _, l := range []Layout{AxisLayout(), HDFCLayout(), HDFCYTDLayout(), GenericLayout()} {
		out[l.Bank] = l
	}
	return out
}

func (l Layout) window() int {
	if l.HeaderWindow <= 0 {
		return defaultHeaderWindow
	}
	return l.HeaderWindow
}
