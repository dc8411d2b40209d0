package generic

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SERIES - Dated values (wage index, monthly inflation, average wage)
// =============================================================================

// Point is one (date, value) observation.
type Point struct {
	At    Date
	Value decimal.Decimal
}

// Series is an ordered sequence of points, oldest first.
//
// Reference files list the newest period first; NewSeries sorts on
// construction so lookups never depend on file order.
type Series struct {
	Name   string
	Points []Point
}

// NewSeries copies and sorts the points by date. Points sharing a date keep
// their input order.
func NewSeries(name string, points []Point) *Series {
	pts := make([]Point, len(points))
	copy(pts, points)
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].At.Before(pts[j].At) })
	return &Series{Name: name, Points: pts}
}

func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

func (s *Series) Earliest() (Point, bool) {
	if s.Len() == 0 {
		return Point{}, false
	}
	return s.Points[0], true
}

func (s *Series) Latest() (Point, bool) {
	if s.Len() == 0 {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// ValueAt returns the latest point dated on or before d. When d predates
// every point the earliest point is returned (clamp, not interpolate).
// The bool is false only for an empty series.
func (s *Series) ValueAt(d Date) (Point, bool) {
	if s.Len() == 0 {
		return Point{}, false
	}
	// First index strictly after d; the one before it is the nearest prior.
	i := sort.Search(len(s.Points), func(i int) bool { return s.Points[i].At.After(d) })
	if i == 0 {
		return s.Points[0], true
	}
	return s.Points[i-1], true
}

// ExactMonth returns the point falling in the month of m. Unlike ValueAt it
// does not clamp: a month missing from the series is reported as missing.
func (s *Series) ExactMonth(m Date) (Point, bool) {
	if s.Len() == 0 {
		return Point{}, false
	}
	first := m.FirstOfMonth()
	var found Point
	ok := false
	for _, p := range s.Points {
		if p.At.FirstOfMonth().Equal(first) {
			found, ok = p, true
		}
	}
	return found, ok
}

// Ratio is the adjustment coefficient ValueAt(to) / ValueAt(from).
// A missing or zero base yields 1 (no adjustment).
func (s *Series) Ratio(from, to Date) decimal.Decimal {
	base, ok := s.ValueAt(from)
	if !ok || !base.Value.IsPositive() {
		return decimal.NewFromInt(1)
	}
	final, _ := s.ValueAt(to)
	return final.Value.Div(base.Value)
}

// factorPlaces bounds the running product of monthly factors.
const factorPlaces = 16

// CompoundFactor multiplies (1 + change/100) over every point whose month
// falls within the period's months, both ends included. No matching point
// yields 1.
func (s *Series) CompoundFactor(p Period) decimal.Decimal {
	factor := decimal.NewFromInt(1)
	if s.Len() == 0 {
		return factor
	}
	months := p.Months()
	for _, pt := range s.Points {
		if !months.Contains(pt.At.FirstOfMonth()) {
			continue
		}
		factor = factor.Mul(decimal.NewFromInt(1).Add(Pct(pt.Value))).Round(factorPlaces)
	}
	return factor
}

// CompoundChange reports the accumulated percentage change over the period:
// (CompoundFactor - 1) * 100. No matching point yields 0.
func (s *Series) CompoundChange(p Period) decimal.Decimal {
	return s.CompoundFactor(p).Sub(decimal.NewFromInt(1)).Mul(Hundred)
}
