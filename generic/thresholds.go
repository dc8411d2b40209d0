package generic

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// THRESHOLD TABLE - Values in force from a date (legal minimums, JUS value)
// =============================================================================

// Threshold is a value in force from From until To. A nil To means the
// value is still in force.
type Threshold struct {
	From     Date
	To       *Date
	Value    decimal.Decimal
	Citation string // resolution or agreement establishing the value
	Link     string
}

// IsOpen reports whether the threshold has no end date.
func (t Threshold) IsOpen() bool { return t.To == nil }

// Covers reports whether d falls within the threshold's validity window.
func (t Threshold) Covers(d Date) bool {
	if d.Before(t.From) {
		return false
	}
	return t.To == nil || d.BeforeOrEqual(*t.To)
}

// ThresholdTable holds thresholds ordered by start date.
type ThresholdTable struct {
	Name string
	Rows []Threshold
}

func NewThresholdTable(name string, rows []Threshold) *ThresholdTable {
	r := make([]Threshold, len(rows))
	copy(r, rows)
	sort.SliceStable(r, func(i, j int) bool { return r[i].From.Before(r[j].From) })
	return &ThresholdTable{Name: name, Rows: r}
}

func (t *ThresholdTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *ThresholdTable) Latest() (Threshold, bool) {
	if t.Len() == 0 {
		return Threshold{}, false
	}
	return t.Rows[len(t.Rows)-1], true
}

// Lookup returns the closed interval containing d. Failing that, the most
// recent open-ended row starting on or before d is used. The bool is false
// when neither exists.
func (t *ThresholdTable) Lookup(d Date) (Threshold, bool) {
	if t.Len() == 0 {
		return Threshold{}, false
	}
	var candidate Threshold
	found := false
	for _, r := range t.Rows {
		if r.IsOpen() {
			if d.AfterOrEqual(r.From) {
				candidate, found = r, true
			}
			continue
		}
		if r.Covers(d) {
			return r, true
		}
	}
	return candidate, found
}

// LookupClamped is Lookup that never misses on a non-empty table: a date
// before every row clamps to the earliest row, anything else to the latest.
func (t *ThresholdTable) LookupClamped(d Date) (Threshold, bool) {
	if r, ok := t.Lookup(d); ok {
		return r, true
	}
	if t.Len() == 0 {
		return Threshold{}, false
	}
	if d.Before(t.Rows[0].From) {
		return t.Rows[0], true
	}
	return t.Rows[len(t.Rows)-1], true
}
