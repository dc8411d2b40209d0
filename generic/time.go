package generic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// DATE - Calendar day abstraction (every reference table is keyed by days)
// =============================================================================

// Date is a calendar day in UTC. The time-of-day part is always zero.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{Time: d.Time.AddDate(0, n, 0)} }
func (d Date) AddYears(n int) Date  { return Date{Time: d.Time.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) IsZero() bool      { return d.Time.IsZero() }

// FirstOfMonth normalizes the date to day 1 of its month.
func (d Date) FirstOfMonth() Date { return StartOfMonth(d.Year(), d.Month()) }

// LastOfMonth returns the last day of the date's month.
func (d Date) LastOfMonth() Date { return EndOfMonth(d.Year(), d.Month()) }

// DaysInMonth returns 28..31 for the date's month.
func (d Date) DaysInMonth() int { return d.LastOfMonth().Day() }

// String renders the ISO form used by the API and the SQLite store.
func (d Date) String() string { return d.Time.Format("2006-01-02") }

// Display renders the DD/MM/YYYY form used in court documents.
func (d Date) Display() string { return d.Time.Format("02/01/2006") }

// =============================================================================
// TIME UTILITIES
// =============================================================================
// Note: Period type is defined in period.go

func DaysBetween(from, to Date) int { return int(to.Time.Sub(from.Time).Hours() / 24) }

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

func EndOfMonth(year int, month time.Month) Date {
	return Date{Time: time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
}

func MinDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

func MaxDate(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// =============================================================================
// PARSING - Reference files mix several date notations
// =============================================================================

var dayLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

var monthLayouts = []string{
	"01/2006",
	"2006-01",
	"2006/01",
	"01-2006",
}

var monthNames = map[string]time.Month{
	"enero": time.January, "febrero": time.February, "marzo": time.March,
	"abril": time.April, "mayo": time.May, "junio": time.June,
	"julio": time.July, "agosto": time.August, "septiembre": time.September,
	"setiembre": time.September, "octubre": time.October, "noviembre": time.November,
	"diciembre": time.December,
	"january":   time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
	"ene": time.January, "abr": time.April, "ago": time.August, "set": time.September,
	"dic": time.December, "jan": time.January, "apr": time.April, "aug": time.August,
	"dec": time.December,
}

// ParseMonth resolves a month given as a number, a Spanish or English name,
// or a three-letter abbreviation of either.
func ParseMonth(s string) (time.Month, bool) {
	s = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ".")))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	if m, ok := monthNames[s]; ok {
		return m, true
	}
	if len(s) >= 3 {
		if m, ok := monthNames[s[:3]]; ok {
			return m, true
		}
		for name, m := range monthNames {
			if len(name) > 3 && strings.HasPrefix(name, s[:3]) {
				return m, true
			}
		}
	}
	return 0, false
}

// ParseDate accepts the day, month-year and "Month YYYY" notations found in
// the reference files. Month-only notations normalize to day 1.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return StartOfMonth(t.Year(), t.Month()), nil
		}
	}
	// "Enero 2024", "Jan 2024"
	if fields := strings.Fields(s); len(fields) == 2 {
		if m, ok := ParseMonth(fields[0]); ok {
			if y, err := strconv.Atoi(fields[1]); err == nil && y >= 1900 && y <= 2100 {
				return StartOfMonth(y, m), nil
			}
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// MustParseDate is ParseDate for literals known to be valid (tests, presets).
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
