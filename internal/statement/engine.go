package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentalai/rentalai/internal/model"
	"github.com/rentalai/rentalai/internal/pdfdoc"
)

// StageFailure records why one strategy produced nothing.
type StageFailure struct {
	Stage string
	Err   error
}

func (f StageFailure) Error() string { return f.Stage + ": " + f.Err.Error() }

func (f StageFailure) Unwrap() error { return f.Err }

// Report is the full outcome of a parse.
type Report struct {
	Bank         string
	Transactions []model.Transaction
	// Strategy is the strategy that produced Transactions, empty if none did.
	Strategy string
	// TextFound is set when the document had any extractable content, so an
	// empty result means "no transactions" rather than "could not read".
	TextFound bool
	Failures  []StageFailure
}

// Unreadable reports whether nothing at all could be read from the document,
// typically a wrong password or a file that is not a statement PDF.
func (r Report) Unreadable() bool {
	return len(r.Transactions) == 0 && !r.TextFound
}

// Engine parses statements of one layout. It is safe for concurrent use.
type Engine struct {
	layout     Layout
	opener     pdfdoc.Opener
	texts      []pdfdoc.TextSource
	classifier *Classifier
	log        zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithOpener replaces the PDF opener.
func WithOpener(o pdfdoc.Opener) Option {
	return func(e *Engine) { e.opener = o }
}

// WithTextSources sets the ordered whole-document text sources. The default
// reads the text layer through the engine's opener.
func WithTextSources(sources ...pdfdoc.TextSource) Option {
	return func(e *Engine) { e.texts = sources }
}

// WithIncomeRules sets the income classification rules. Credits matching no
// rule are tagged lodge.
func WithIncomeRules(rules []IncomeRule) Option {
	return func(e *Engine) { e.classifier = NewClassifier(rules, model.IncomeLodge) }
}

// WithClassifier sets the income classifier directly.
func WithClassifier(c *Classifier) Option {
	return func(e *Engine) { e.classifier = c }
}

// NewEngine returns an engine for layout.
func NewEngine(layout Layout, opts ...Option) *Engine {
	e := &Engine{layout: layout, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.opener == nil {
		e.opener = pdfdoc.NewLayoutOpener()
	}
	if e.texts == nil {
		e.texts = []pdfdoc.TextSource{pdfdoc.DirectText{Opener: e.opener}}
	}
	if e.classifier == nil {
		e.classifier = NewClassifier(nil, model.IncomeLodge)
	}
	e.log = e.log.With().Str("bank", layout.Bank).Logger()
	return e
}

// Layout returns the engine's layout.
func (e *Engine) Layout() Layout { return e.layout }

// Bank returns the layout's bank name.
func (e *Engine) Bank() string { return e.layout.Bank }

// Parse extracts transactions from the PDF at path. Strategies run in layout
// order and the first one yielding rows wins. Parse never fails: every
// problem is recorded in Report.Failures.
func (e *Engine) Parse(ctx context.Context, path, password string) Report {
	start := time.Now()
	log := e.log.With().Str("path", path).Logger()
	src := &source{path: path, password: password, opener: e.opener, texts: e.texts, log: log}
	rep := Report{Bank: e.layout.Bank}

	for _, name := range e.layout.Strategies {
		if err := ctx.Err(); err != nil {
			rep.Failures = append(rep.Failures, StageFailure{Stage: name, Err: err})
			break
		}
		res := e.runStrategy(ctx, name, src)
		if res.err != nil {
			log.Warn().Err(res.err).Str("strategy", name).Msg("strategy failed")
			rep.Failures = append(rep.Failures, StageFailure{Stage: name, Err: res.err})
			continue
		}
		rows := e.finish(res.rows)
		if len(rows) == 0 {
			log.Debug().Str("strategy", name).Msg("strategy found no rows")
			rep.Failures = append(rep.Failures, StageFailure{Stage: name, Err: ErrNoRows})
			continue
		}
		rep.Transactions = rows
		rep.Strategy = name
		break
	}

	rep.TextFound = src.textFound || len(rep.Transactions) > 0
	if rep.Transactions == nil {
		rep.Transactions = []model.Transaction{}
	}
	log.Info().
		Str("strategy", rep.Strategy).
		Int("rows", len(rep.Transactions)).
		Bool("text_found", rep.TextFound).
		Dur("took", time.Since(start)).
		Msg("statement parsed")
	return rep
}

func (e *Engine) runStrategy(ctx context.Context, name string, src *source) (res result) {
	defer func() {
		if p := recover(); p != nil {
			res = failure(fmt.Errorf("%w: %v", pdfdoc.ErrUnreadable, p))
		}
	}()
	st, err := strategyFor(name)
	if err != nil {
		return failure(err)
	}
	return st.run(ctx, src, &e.layout)
}

// finish applies the layout's post-filters and classification.
func (e *Engine) finish(rows []model.Transaction) []model.Transaction {
	if e.layout.MergeSameDate {
		rows = mergeSameDate(rows)
	}
	out := make([]model.Transaction, 0, len(rows))
	for _, t := range rows {
		if t.DoubleSided() {
			e.log.Debug().Str("narration", t.Narration).Msg("dropping double-sided row")
			continue
		}
		if e.layout.DropEmptyNarration && t.Narration == "" {
			continue
		}
		out = append(out, t)
	}
	if e.layout.Classify {
		e.classifier.Apply(out)
	}
	return out
}

// mergeSameDate folds a row without amounts into the previous row when both
// share a date.
func mergeSameDate(rows []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, t := range rows {
		if n := len(out); n > 0 && !t.HasAmount() && t.Narration != "" && t.Date.Equal(out[n-1].Date.Time) {
			out[n-1].Narration = joinNarration(out[n-1].Narration, t.Narration)
			out[n-1].NeedsReview = out[n-1].NeedsReview || t.NeedsReview
			continue
		}
		out = append(out, t)
	}
	return out
}
