package record

import (
	"strconv"
	"strings"
	"time"
)

// TwoDigitYearPivot defines how 2-digit years are interpreted. Parsed
// years more than this many years in the future are pushed back a century.
var TwoDigitYearPivot = 20

// Date layouts split by year format for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
		"2006-01-02 15:04:05", "2006-01-02T15:04:05",
	}
)

// CleanCell normalizes a raw worksheet cell: trims whitespace and strips
// a leading BOM left behind by some exports.
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.TrimSpace(s)
}

// CleanHeader normalizes a header cell for name matching. Headers are
// matched case-insensitively.
func CleanHeader(s string) string {
	return strings.ToLower(CleanCell(s))
}

// ToDate parses a raw cell as a calendar date. Empty or unparseable
// values yield an absent Date, never a raw string.
func ToDate(s string) Date {
	s = CleanCell(s)
	if s == "" {
		return Date{}
	}

	// 4-digit year layouts first, they are unambiguous.
	for _, layout := range fourDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return Date{Time: t, Valid: true}
		}
	}

	// 2-digit year layouts with pivot adjustment. Go maps 00-68 to
	// 2000-2068 and 69-99 to 1969-1999; apply a consistent pivot instead.
	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return Date{Time: t, Valid: true}
		}
	}

	return Date{}
}

// ToInt parses a raw cell as a non-negative integer. Empty, unparseable,
// and negative values yield an absent Int. Integral floats ("7.0", the
// shape spreadsheet APIs hand back for numeric cells) are accepted.
func ToInt(s string) Int {
	s = CleanCell(s)
	if s == "" {
		return Int{}
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if i < 0 {
			return Int{}
		}
		return Int{Int64: i, Valid: true}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != float64(int64(f)) {
		return Int{}
	}
	return Int{Int64: int64(f), Valid: true}
}
