package generic

// =============================================================================
// PERIOD - The query range every calculation runs over
// =============================================================================

// Period is an inclusive range of calendar days [Start, End].
//
// Examples:
//   - Indexation window: PMI date .. final date
//   - Rate validity: 2024-01-01 .. 2024-01-31
type Period struct {
	Start Date
	End   Date
}

func NewPeriod(start, end Date) Period {
	return Period{Start: start, End: end}
}

// Contains returns true if the date is within the period [Start, End]
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days counts the days in the period, both ends included.
// An inverted period has no days.
func (p Period) Days() int {
	n := DaysBetween(p.Start, p.End) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Overlap returns the intersection of two periods and whether it has at
// least one day.
func (p Period) Overlap(other Period) (Period, bool) {
	o := Period{Start: MaxDate(p.Start, other.Start), End: MinDate(p.End, other.End)}
	return o, !o.End.Before(o.Start)
}

// Months normalizes both ends to day 1 of their month. Monthly series are
// matched against this range.
func (p Period) Months() Period {
	return Period{Start: p.Start.FirstOfMonth(), End: p.End.FirstOfMonth()}
}

// Validate rejects periods whose end precedes their start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
