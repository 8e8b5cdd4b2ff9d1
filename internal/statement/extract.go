package statement

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rentalai/rentalai/internal/normalize"
	"github.com/rentalai/rentalai/internal/pdfdoc"
)

// RawRow is one candidate row before normalization.
type RawRow struct {
	Date      string
	Narration string
	Debit     string
	Credit    string
	// Ambiguous is set when the row came out of stacked cells whose line
	// counts disagree, so the alignment is a guess.
	Ambiguous bool
}

func (r RawRow) empty() bool {
	return normalize.CleanText(r.Date+r.Narration+r.Debit+r.Credit) == ""
}

// ExplodeRow splits a table row whose mapped cells hold several stacked lines
// into one RawRow per line index. Lines are aligned from the top and shorter
// cells are padded with empty strings.
func ExplodeRow(row []string, m ColumnMapping) []RawRow {
	cols := [4][]string{
		normalize.Lines(cellAt(row, m.Date)),
		normalize.Lines(cellAt(row, m.Narration)),
		normalize.Lines(cellAt(row, m.Debit)),
		normalize.Lines(cellAt(row, m.Credit)),
	}

	n, multi := 1, 0
	ambiguous := false
	for _, c := range cols {
		if len(c) > n {
			n = len(c)
		}
		if len(c) > 1 {
			if multi != 0 && multi != len(c) {
				ambiguous = true
			}
			multi = len(c)
		}
	}

	out := make([]RawRow, n)
	for i := range out {
		out[i] = RawRow{
			Date:      lineAt(cols[0], i),
			Narration: lineAt(cols[1], i),
			Debit:     lineAt(cols[2], i),
			Credit:    lineAt(cols[3], i),
			Ambiguous: ambiguous,
		}
	}
	return out
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

// docState is the per-document state of the table walk. The mapping found on
// one table carries over to header-less continuation tables.
type docState struct {
	layout  *Layout
	mapping ColumnMapping
	rows    *rowBuilder
	log     zerolog.Logger
	cells   bool // any non-empty cell seen
}

func newDocState(l *Layout, log zerolog.Logger) *docState {
	return &docState{layout: l, mapping: NoMapping, rows: newRowBuilder(l), log: log}
}

// table feeds one extracted table through the header search. A table is
// either introduced by its own header, continues under the mapping carried
// from an earlier table, or is skipped.
func (s *docState) table(page, idx int, tbl pdfdoc.Table) {
	body := [][]string(tbl)
	if m, at, ok := DetectHeader(body, s.layout.Headers, s.layout.window()); ok {
		s.mapping = m
		body = body[at+1:]
	} else if !s.mapping.Valid() {
		s.log.Debug().Int("page", page).Int("table", idx).Msg("skipping table without header")
		return
	}

	for _, row := range body {
		for _, raw := range ExplodeRow(row, s.mapping) {
			if raw.empty() {
				continue
			}
			s.cells = true
			s.rows.add(raw)
		}
	}
	s.log.Debug().Int("page", page).Int("table", idx).Int("rows", len(body)).Msg("table processed")
}

// walkTables opens the document and runs every table of every page through
// st. Per-page extraction errors are logged and the page is skipped.
func walkTables(ctx context.Context, src *source, st *docState) error {
	doc, err := src.opener.Open(src.path, src.password)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}
	defer doc.Close()

	pages, err := doc.Pages()
	if err != nil {
		return fmt.Errorf("listing pages: %w", err)
	}
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		tables, err := p.Tables()
		if err != nil {
			st.log.Warn().Err(err).Int("page", p.Number()).Msg("table extraction failed")
			continue
		}
		for i, tbl := range tables {
			st.table(p.Number(), i, tbl)
		}
	}
	return nil
}
