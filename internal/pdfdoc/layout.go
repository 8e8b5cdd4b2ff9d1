package pdfdoc

import (
	"math"
	"sort"
	"strings"
)

// LayoutConfig tunes how positioned glyphs are regrouped into lines and
// table cells. Gap ratios are relative to the glyph's font size.
type LayoutConfig struct {
	RowTolerance    float64 // max Y difference (points) for glyphs on one line
	SpaceRatio      float64 // gap above which a space is inserted
	ColumnGapRatio  float64 // gap above which a new cell starts
	MinTableColumns int     // chunks a line needs to open a table
	BandTolerance   float64 // slack (points) when merging column bands
}

// DefaultLayoutConfig returns settings that fit Indian bank statements
// rendered at 7 to 10pt.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		RowTolerance:    2.5,
		SpaceRatio:      0.15,
		ColumnGapRatio:  1.5,
		MinTableColumns: 3,
		BandTolerance:   1.0,
	}
}

// fallbackFontSize is used when a glyph reports a degenerate font size, as
// happens when the text matrix carries the scale instead.
const fallbackFontSize = 8.0

// Glyph is a positioned run of text as reported by the PDF library.
type Glyph struct {
	X, Y     float64
	W        float64
	FontSize float64
	S        string
}

type chunk struct {
	X0, X1 float64
	Text   string
}

func (c chunk) center() float64 { return (c.X0 + c.X1) / 2 }

type textLine struct {
	Y      float64
	Chunks []chunk
}

func (l textLine) String() string {
	parts := make([]string, len(l.Chunks))
	for i, c := range l.Chunks {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}

// buildLines groups glyphs into top-to-bottom lines and splits each line into
// chunks wherever the horizontal gap is wide enough to be a column gutter.
func buildLines(glyphs []Glyph, cfg LayoutConfig) []textLine {
	gs := make([]Glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S == "" || g.S == "\n" {
			continue
		}
		gs = append(gs, g)
	}
	if len(gs) == 0 {
		return nil
	}
	// PDF user space has Y growing upwards.
	sort.SliceStable(gs, func(i, j int) bool { return gs[i].Y > gs[j].Y })

	var groups [][]Glyph
	var cur []Glyph
	curY := gs[0].Y
	for _, g := range gs {
		if len(cur) > 0 && math.Abs(g.Y-curY) > cfg.RowTolerance {
			groups = append(groups, cur)
			cur = nil
		}
		if len(cur) == 0 {
			curY = g.Y
		}
		cur = append(cur, g)
	}
	groups = append(groups, cur)

	lines := make([]textLine, 0, len(groups))
	for _, grp := range groups {
		if l, ok := chunkLine(grp, cfg); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

func chunkLine(gs []Glyph, cfg LayoutConfig) (textLine, bool) {
	sort.SliceStable(gs, func(i, j int) bool { return gs[i].X < gs[j].X })

	var chunks []chunk
	var b strings.Builder
	var cur chunk
	open := false
	pendingSpace := false
	prevEnd := 0.0

	flush := func() {
		if open {
			cur.Text = strings.TrimSpace(b.String())
			if cur.Text != "" {
				chunks = append(chunks, cur)
			}
		}
		b.Reset()
		open = false
	}

	for _, g := range gs {
		if strings.TrimSpace(g.S) == "" {
			pendingSpace = true
			continue
		}
		fs := g.FontSize
		if fs < 4 {
			fs = fallbackFontSize
		}
		gap := g.X - prevEnd
		switch {
		case !open:
			cur = chunk{X0: g.X}
			open = true
		case gap > cfg.ColumnGapRatio*fs:
			flush()
			cur = chunk{X0: g.X}
			open = true
		case gap > cfg.SpaceRatio*fs || pendingSpace:
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		pendingSpace = false
		end := g.X + g.W
		if end > cur.X1 {
			cur.X1 = end
		}
		prevEnd = math.Max(prevEnd, end)
	}
	flush()

	if len(chunks) == 0 {
		return textLine{}, false
	}
	return textLine{Y: gs[0].Y, Chunks: chunks}, true
}

type band struct{ X0, X1 float64 }

// buildTables turns the lines of one page into at most one grid. Preamble
// lines above the first line with MinTableColumns chunks are left out; the
// remaining lines are mapped onto column bands formed by the union of chunk
// extents on multi-chunk lines.
func buildTables(lines []textLine, cfg LayoutConfig) []Table {
	start := -1
	for i, l := range lines {
		if len(l.Chunks) >= cfg.MinTableColumns {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	body := lines[start:]

	var spans []band
	for _, l := range body {
		if len(l.Chunks) < 2 {
			continue
		}
		for _, c := range l.Chunks {
			spans = append(spans, band{c.X0, c.X1})
		}
	}
	bands := mergeBands(spans, cfg.BandTolerance)
	if len(bands) < 2 {
		return nil
	}

	var tbl Table
	for _, l := range body {
		row := make([]string, len(bands))
		for _, c := range l.Chunks {
			i := bandFor(bands, c.center())
			if row[i] != "" {
				row[i] += " "
			}
			row[i] += c.Text
		}
		tbl = append(tbl, row)
	}
	return []Table{tbl}
}

func mergeBands(spans []band, tol float64) []band {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].X0 < spans[j].X0 })
	merged := []band{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.X0 <= last.X1+tol {
			if s.X1 > last.X1 {
				last.X1 = s.X1
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func bandFor(bands []band, x float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, b := range bands {
		if x >= b.X0 && x <= b.X1 {
			return i
		}
		d := math.Min(math.Abs(x-b.X0), math.Abs(x-b.X1))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func linesText(lines []textLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}
