package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Field normalization functions
//
// These are total: every input produces a usable value. Failures degrade
// to zero values instead of errors because downstream aggregation relies
// on zero-filling rather than row rejection.

var (
	yyyymmddPattern = regexp.MustCompile(`^\d{8}$`)
	monthDayPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})`)
	trailingDotZero = regexp.MustCompile(`\.0$`)
)

// Layouts tried by the general-purpose fallback of parseDateToken, most
// common export formats first.
var fallbackDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006.1.2",
}

// parseDateToken converts a free-text cell into a calendar date. It tries,
// in order: an 8-digit YYYYMMDD token, an M/D prefix (year taken from
// defaultYear, or the current year when defaultYear is 0), and finally the
// fallback layouts. The zero time means "no date"; empty and "nan" cells
// short-circuit to it.
func parseDateToken(s string, defaultYear int) time.Time {
	if defaultYear == 0 {
		defaultYear = time.Now().Year()
	}

	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return time.Time{}
	}

	if yyyymmddPattern.MatchString(s) {
		if t, err := time.Parse("20060102", s); err == nil {
			return t
		}
	}

	if m := monthDayPattern.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if t, ok := civilDate(defaultYear, month, day); ok {
			return t
		}
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	return time.Time{}
}

// civilDate builds a date and reports whether the combination is a real
// calendar day. time.Date normalizes out-of-range values (Feb 30 becomes
// Mar 2), so the components are checked after construction.
func civilDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// cleanDepartment renders any department cell as a zero-padded 3-digit
// code. Fractional noise is truncated; anything that cannot be coerced to
// a number becomes "000". Never fails.
func cleanDepartment(v string) string {
	s := strings.TrimSpace(v)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "000"
	}
	return fmt.Sprintf("%03d", int(f))
}

// cleanJAN strips the leading apostrophes spreadsheet tools insert to
// force text mode on numeric-looking codes, and the trailing ".0" left by
// numeric coercion.
func cleanJAN(v string) string {
	s := strings.TrimSpace(v)
	s = strings.TrimLeft(s, "'")
	return trailingDotZero.ReplaceAllString(s, "")
}

// coerceNumber parses a numeric cell, mapping anything unparseable
// (including NaN and infinities) to 0.
func coerceNumber(v string) float64 {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// cleanPromotion maps null-like promotion cells to the empty string,
// which downstream means "no promotion".
func cleanPromotion(v string) string {
	switch strings.TrimSpace(v) {
	case "", "nan", "None":
		return ""
	}
	return v
}
