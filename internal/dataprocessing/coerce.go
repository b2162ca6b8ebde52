package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ParseNumber coerces raw text into a float. Currency symbols, thousands
// separators, percent signs and whitespace are stripped before parsing.
// Absent, unparseable or non-finite input yields 0; the function never
// errors.
func ParseNumber(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '$' || r == ',' || r == '%':
			return -1
		case unicode.IsSpace(r):
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// dateLayouts are the general ISO/locale forms tried before the delimiter
// heuristics kick in.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate coerces raw text into a calendar date. The cascade is:
//
//  1. the general layouts above;
//  2. slash-delimited MM/DD/YYYY, month and day both required and non-zero;
//  3. dash- or dot-delimited 3-part dates, disambiguated by magnitude: a
//     first component above 12 is a day, otherwise a month; the third
//     component is always the year.
//
// The magnitude rule cannot tell 03-04-2015 (March 4) from a day-first
// April 3 and is kept as-is for compatibility with existing datasets.
// Absent or unparseable input yields nil, never an error.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}

	if parts := strings.Split(s, "/"); len(parts) == 3 {
		month, okM := dateComponent(parts[0])
		day, okD := dateComponent(parts[1])
		year, okY := dateComponent(parts[2])
		if okM && okD && okY && month > 0 && day > 0 {
			return makeDate(year, month, day)
		}
	}

	delim := "-"
	if strings.Count(s, ".") == 2 {
		delim = "."
	}
	if parts := strings.Split(s, delim); len(parts) == 3 {
		first, okF := dateComponent(parts[0])
		second, okS := dateComponent(parts[1])
		year, okY := dateComponent(parts[2])
		if okF && okS && okY {
			month, day := first, second
			if first > 12 {
				month, day = second, first
			}
			return makeDate(year, month, day)
		}
	}

	return nil
}

func dateComponent(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// makeDate validates the component ranges and rejects dates that do not
// round-trip through the calendar (e.g. February 30).
func makeDate(year, month, day int) *time.Time {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return nil
	}
	return &t
}
