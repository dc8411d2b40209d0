package generic

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RATE TABLE - Monthly rates valid between two dates (Tasa Activa BNA)
// =============================================================================

// RateInterval is a monthly percentage rate valid over [From, To].
type RateInterval struct {
	From Date
	To   Date
	Rate decimal.Decimal // percent per 30 days
}

func (r RateInterval) Period() Period { return Period{Start: r.From, End: r.To} }

// RateTable holds rate intervals ordered by start date.
//
// Intervals are expected to be disjoint. Overlapping intervals are not
// merged: each contributes for its own overlap with the query range.
type RateTable struct {
	Name      string
	Intervals []RateInterval
}

func NewRateTable(name string, intervals []RateInterval) *RateTable {
	iv := make([]RateInterval, len(intervals))
	copy(iv, intervals)
	sort.SliceStable(iv, func(i, j int) bool { return iv[i].From.Before(iv[j].From) })
	return &RateTable{Name: name, Intervals: iv}
}

func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Intervals)
}

func (t *RateTable) Latest() (RateInterval, bool) {
	if t.Len() == 0 {
		return RateInterval{}, false
	}
	return t.Intervals[len(t.Intervals)-1], true
}

// Contribution is one interval's share of an accumulation.
type Contribution struct {
	Interval RateInterval
	Overlap  Period
	Days     int
	Percent  decimal.Decimal // Rate * Days / 30
}

// Contributions lists every interval overlapping p with its prorated share.
func (t *RateTable) Contributions(p Period) []Contribution {
	if t.Len() == 0 {
		return nil
	}
	var out []Contribution
	for _, iv := range t.Intervals {
		o, ok := p.Overlap(iv.Period())
		if !ok {
			continue
		}
		days := o.Days()
		out = append(out, Contribution{
			Interval: iv,
			Overlap:  o,
			Days:     days,
			Percent:  iv.Rate.Mul(decimal.NewFromInt(int64(days))).Div(Thirty),
		})
	}
	return out
}

// Accumulate returns the summed percentage over p:
// sum(rate * overlap_days / 30) for every overlapping interval.
func (t *RateTable) Accumulate(p Period) decimal.Decimal {
	total := decimal.Zero
	for _, c := range t.Contributions(p) {
		total = total.Add(c.Percent)
	}
	return total
}
