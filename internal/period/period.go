package period

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rentalai/rentalai/internal/model"
)

// Period is a calendar month, or a whole year when Month is zero.
type Period struct {
	Year  int
	Month int
}

// Month returns the period for one calendar month.
func Month(year, month int) Period { return Period{Year: year, Month: month} }

// Year returns the period for a whole calendar year.
func Year(year int) Period { return Period{Year: year} }

// IsYear reports whether p covers a whole year.
func (p Period) IsYear() bool { return p.Month == 0 }

// String returns "2025-01" for a month or "2025" for a year.
func (p Period) String() string {
	if p.IsYear() {
		return fmt.Sprintf("%04d", p.Year)
	}
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Dir returns the relative directory for p, "2025/01" or "2025".
func (p Period) Dir() string {
	if p.IsYear() {
		return fmt.Sprintf("%04d", p.Year)
	}
	return filepath.Join(fmt.Sprintf("%04d", p.Year), fmt.Sprintf("%02d", p.Month))
}

// Contains reports whether t falls inside p.
func (p Period) Contains(t time.Time) bool {
	if t.Year() != p.Year {
		return false
	}
	return p.IsYear() || int(t.Month()) == p.Month
}

// Parse parses "2025-01" or "2025".
func Parse(s string) (Period, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)

	year, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return Period{}, fmt.Errorf("invalid year in period %q", s)
	}
	if len(parts) == 1 {
		return Year(year), nil
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("invalid month in period %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("month out of range in period %q", s)
	}
	return Month(year, month), nil
}

// Dominant returns the month most transactions fall in. Ties go to the
// later month. It reports false when no transaction is dated.
func Dominant(txns []model.Transaction) (Period, bool) {
	counts := map[Period]int{}
	for _, t := range txns {
		if t.Date.IsZero() {
			continue
		}
		counts[Month(t.Date.Year(), int(t.Date.Month()))]++
	}

	var best Period
	bestN := 0
	for p, n := range counts {
		if n > bestN || (n == bestN && p.after(best)) {
			best, bestN = p, n
		}
	}
	return best, bestN > 0
}

func (p Period) after(q Period) bool {
	if p.Year != q.Year {
		return p.Year > q.Year
	}
	return p.Month > q.Month
}
