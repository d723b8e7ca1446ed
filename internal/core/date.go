package core

import (
	"strings"
	"time"
)

// DateLayout is the canonical textual form of a calendar date.
const DateLayout = "2006-01-02"

// Accepted textual date forms: ISO and US month-first. Single-digit month and
// day are tolerated in both.
var dateLayouts = []string{"2006-1-2", "1/2/2006"}

// Day-first form, accepted only by the sheet importer.
const dayFirstLayout = "2/1/2006"

// ParseDate parses s as YYYY-MM-DD or MM/DD/YYYY. Any other form reports false.
func ParseDate(s string) (Date, bool) {
	return parseWith(s, dateLayouts)
}

// ParseDateLenient also accepts DD/MM/YYYY after the month-first form fails.
func ParseDateLenient(s string) (Date, bool) {
	return parseWith(s, append(dateLayouts[:len(dateLayouts):len(dateLayouts)], dayFirstLayout))
}

func parseWith(s string, layouts []string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}
	return Date{}, false
}

// DaysBetween returns the number of whole calendar days from a to b.
// The result is negative when b precedes a.
func DaysBetween(a, b Date) int {
	return int(DateOf(b.Time).Sub(DateOf(a.Time).Time).Hours() / 24)
}
