package pdfdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// word lays s out one glyph per rune, 5pt wide at 10pt font size.
func word(s string, x, y float64) []Glyph {
	gs := make([]Glyph, 0, len(s))
	for _, r := range s {
		gs = append(gs, Glyph{X: x, Y: y, W: 5, FontSize: 10, S: string(r)})
		x += 5
	}
	return gs
}

func page(parts ...[]Glyph) []Glyph {
	var out []Glyph
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func statementGlyphs() []Glyph {
	return page(
		word("Statement of account", 50, 750),
		word("Date", 50, 700),
		word("Narration", 120, 700),
		word("Debit", 300, 700),
		word("Credit", 380, 700),
		word("01/04/2024", 50, 690),
		word("NEFT FROM XYZ", 120, 690.5),
		word("5000.00", 380, 690),
		word("CORP", 120, 680),
	)
}

func TestBuildLines_GroupsByRowAndSplitsColumns(t *testing.T) {
	lines := buildLines(statementGlyphs(), DefaultLayoutConfig())
	require.Len(t, lines, 4)

	assert.Equal(t, "Statement of account", lines[0].String())
	require.Len(t, lines[1].Chunks, 4)
	assert.Equal(t, "Narration", lines[1].Chunks[1].Text)

	require.Len(t, lines[2].Chunks, 3)
	assert.Equal(t, "01/04/2024", lines[2].Chunks[0].Text)
	assert.Equal(t, "NEFT FROM XYZ", lines[2].Chunks[1].Text)
	assert.Equal(t, "5000.00", lines[2].Chunks[2].Text)

	assert.Equal(t, "CORP", lines[3].String())
}

func TestBuildLines_InsertsSpaceOnSmallGap(t *testing.T) {
	glyphs := page(word("NEFT", 100, 500), word("CR", 123, 500))
	lines := buildLines(glyphs, DefaultLayoutConfig())
	require.Len(t, lines, 1)
	require.Len(t, lines[0].Chunks, 1)
	assert.Equal(t, "NEFT CR", lines[0].Chunks[0].Text)
}

func TestBuildLines_Empty(t *testing.T) {
	assert.Nil(t, buildLines(nil, DefaultLayoutConfig()))
	assert.Nil(t, buildLines([]Glyph{{S: "\n"}}, DefaultLayoutConfig()))
}

func TestBuildTables_AlignsCellsToBands(t *testing.T) {
	lines := buildLines(statementGlyphs(), DefaultLayoutConfig())
	tables := buildTables(lines, DefaultLayoutConfig())
	require.Len(t, tables, 1)

	tbl := tables[0]
	require.Len(t, tbl, 3)
	assert.Equal(t, []string{"Date", "Narration", "Debit", "Credit"}, tbl[0])
	assert.Equal(t, []string{"01/04/2024", "NEFT FROM XYZ", "", "5000.00"}, tbl[1])
	assert.Equal(t, []string{"", "CORP", "", ""}, tbl[2])
}

func TestBuildTables_NoTableWithoutWideLine(t *testing.T) {
	glyphs := page(word("Dear customer", 50, 700), word("Thank you", 50, 690))
	lines := buildLines(glyphs, DefaultLayoutConfig())
	assert.Nil(t, buildTables(lines, DefaultLayoutConfig()))
}

func TestMergeBands(t *testing.T) {
	got := mergeBands([]band{{50, 70}, {120, 165}, {50, 100}, {160, 185}}, 1)
	assert.Equal(t, []band{{50, 100}, {120, 185}}, got)
}

func TestBandFor_NearestWhenOutside(t *testing.T) {
	bands := []band{{50, 100}, {120, 185}, {380, 415}}
	assert.Equal(t, 1, bandFor(bands, 150))
	assert.Equal(t, 2, bandFor(bands, 360))
	assert.Equal(t, 0, bandFor(bands, 10))
}

func TestLinesText(t *testing.T) {
	lines := buildLines(statementGlyphs(), DefaultLayoutConfig())
	text := linesText(lines)
	assert.Equal(t, "Statement of account\nDate Narration Debit Credit\n01/04/2024 NEFT FROM XYZ 5000.00\nCORP\n", text)
}
