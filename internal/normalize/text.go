// Package normalize turns PDF-extracted cell text into canonical amounts,
// dates and narration strings.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText applies NFKC (folding non-breaking spaces and compatibility
// forms), collapses runs of whitespace to one space and trims.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// Lines splits a multi-line cell into its physical lines without trimming
// empty ones, so positions stay aligned with sibling cells.
func Lines(cell string) []string {
	if cell == "" {
		return nil
	}
	cell = strings.ReplaceAll(cell, "\r\n", "\n")
	return strings.Split(strings.TrimRight(cell, "\n"), "\n")
}

// HasPrefixFold reports whether s starts with any of prefixes, ignoring case.
func HasPrefixFold(s string, prefixes []string) bool {
	low := strings.ToLower(s)
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(low, p) {
			return true
		}
	}
	return false
}

// ContainsFold reports whether s contains any of tokens, ignoring case.
func ContainsFold(s string, tokens []string) bool {
	low := strings.ToLower(s)
	for _, tok := range tokens {
		if tok != "" && strings.Contains(low, tok) {
			return true
		}
	}
	return false
}

// CutAtFirst returns s up to the earliest case-insensitive occurrence of any
// token, whitespace-normalized.
func CutAtFirst(s string, tokens []string) string {
	low := strings.ToLower(s)
	cut := len(s)
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if i := strings.Index(low, tok); i >= 0 && i < cut {
			cut = i
		}
	}
	return CleanText(s[:cut])
}
