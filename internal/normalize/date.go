package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const monthAlt = `jan|feb|mar|apr|may|jun|jul|aug|sept|sep|oct|nov|dec`

var (
	isoDateRe      = regexp.MustCompile(`\b(\d{4})[/.\-](\d{1,2})[/.\-](\d{1,2})\b`)
	numericDateRe  = regexp.MustCompile(`\b(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4}|\d{2})\b`)
	dayMonthDateRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?[\s/.\-,]*(` + monthAlt + `)[a-z]*\.?[\s/.\-,]*(\d{4}|\d{2})\b`)
	monthDayDateRe = regexp.MustCompile(`(?i)\b(` + monthAlt + `)[a-z]*\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4}|\d{2})\b`)
	dateShapeRe    = regexp.MustCompile(`(?i)\d+\s*[/\-]\s*\d+|\b(?:` + monthAlt + `)[a-z]*\b`)
)

var monthNumbers = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"sept": time.September, "oct": time.October, "nov": time.November,
	"dec": time.December,
}

// ParseDate finds a date anywhere in cell and returns it as a UTC calendar
// date. Numeric two-field ambiguity is resolved day-first ("05/03/2024" is
// 5 March). It reports false for empty or unparseable input.
func ParseDate(cell string) (t time.Time, ok bool) {
	s := CleanText(cell)
	if s == "" {
		return time.Time{}, false
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		if t, ok := buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return t, true
		}
	}
	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		day, month := atoi(m[1]), atoi(m[2])
		if month > 12 && day <= 12 {
			day, month = month, day
		}
		if t, ok := buildDate(expandYear(m[3]), month, day); ok {
			return t, true
		}
	}
	if m := dayMonthDateRe.FindStringSubmatch(s); m != nil {
		if t, ok := buildDate(expandYear(m[3]), int(monthNumbers[strings.ToLower(m[2])]), atoi(m[1])); ok {
			return t, true
		}
	}
	if m := monthDayDateRe.FindStringSubmatch(s); m != nil {
		if t, ok := buildDate(expandYear(m[3]), int(monthNumbers[strings.ToLower(m[1])]), atoi(m[2])); ok {
			return t, true
		}
	}
	return parseLoose(s)
}

// ParseDateToken is the strict form used to detect line starts: the whole
// token must be a date, so reference numbers such as "UPI/12/05/2024/8812"
// do not open a transaction.
func ParseDateToken(token string) (time.Time, bool) {
	token = strings.TrimRight(CleanText(token), ",;:")
	if token == "" {
		return time.Time{}, false
	}
	for _, re := range []*regexp.Regexp{isoDateRe, numericDateRe, dayMonthDateRe} {
		if loc := re.FindStringIndex(token); loc != nil && loc[0] == 0 && loc[1] == len(token) {
			return ParseDate(token)
		}
	}
	return time.Time{}, false
}

// parseLoose hands date-shaped leftovers to dateparse. Bare digit runs are
// refused because dateparse reads them as unix timestamps.
func parseLoose(s string) (t time.Time, ok bool) {
	if len(s) > 40 || !dateShapeRe.MatchString(s) {
		return time.Time{}, false
	}
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()
	parsed, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false))
	if err != nil || parsed.Year() < 1900 || parsed.Year() > 2200 {
		return time.Time{}, false
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
}

func buildDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func expandYear(s string) int {
	y := atoi(s)
	if len(s) == 2 {
		if y < 70 {
			return 2000 + y
		}
		return 1900 + y
	}
	return y
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
