/*
Package wagebase computes the monthly base income (Ingreso Base Mensual, IBM)
of Ley 24.557 Art. 12 inc. 1.

PURPOSE:
  The IBM is the average of the salaries earned in the twelve months before
  the first disabling manifestation (PMI), each one updated to the PMI month
  by the variation of the RIPTE wage index.

CALCULATION:
  variation = (RIPTE(PMI month) - RIPTE(month)) / RIPTE(month)
  updated   = salary * (1 + variation)
  IBM       = sum(updated) / months with salary > 0

  Index lookups are exact per month: a month missing from RIPTE leaves its
  salary unchanged instead of borrowing a neighbouring index.

SEE ALSO:
  - generic/series.go: ExactMonth
  - injury/injury.go: Consumes the IBM
  - report/wagebase.go: Text breakdown
*/
package wagebase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/format"
	"github.com/warp/settlement-engine/generic"
)

// DefaultMonthCount is the number of months averaged by default.
const DefaultMonthCount = 12

// Salary is the amount earned in one calendar month.
type Salary struct {
	Month  generic.Date // any day of the month
	Amount decimal.Decimal
}

// Input is one IBM request. An empty Salaries list yields the default
// twelve months with no salary.
type Input struct {
	PMI      generic.Date
	Salaries []Salary
}

// DefaultMonths returns the first day of each of the twelve months before
// the PMI month, oldest first.
func DefaultMonths(pmi generic.Date) []generic.Date {
	start := pmi.FirstOfMonth()
	months := make([]generic.Date, 0, DefaultMonthCount)
	for i := DefaultMonthCount; i >= 1; i-- {
		months = append(months, start.AddMonths(-i))
	}
	return months
}

// Validate checks the PMI and that every salary is non-negative, unique per
// month and not after the PMI month.
func (in Input) Validate() error {
	if in.PMI.IsZero() {
		return generic.Invalid("pmi", "is required")
	}
	seen := make(map[generic.Date]bool, len(in.Salaries))
	for _, s := range in.Salaries {
		if s.Month.IsZero() {
			return generic.Invalid("salaries", "month is required")
		}
		m := s.Month.FirstOfMonth()
		if s.Amount.IsNegative() {
			return generic.Invalid("salaries", "salary for %s cannot be negative", m)
		}
		if m.After(in.PMI.FirstOfMonth()) {
			return generic.Invalid("salaries", "month %s is after the PMI", m)
		}
		if seen[m] {
			return generic.Invalid("salaries", "month %s appears twice", m)
		}
		seen[m] = true
	}
	return nil
}

// =============================================================================
// RESULT
// =============================================================================

// Line is one month of the breakdown.
type Line struct {
	Month        generic.Date
	Salary       decimal.Decimal
	Index        decimal.Decimal
	HasIndex     bool
	Variation    decimal.Decimal // fraction, 0.2 means +20%
	HasVariation bool
	Updated      decimal.Decimal
	Days         int
	Included     bool // salary > 0
}

// Result is a computed IBM.
type Result struct {
	PMI          generic.Date
	PMIIndex     decimal.Decimal
	HasPMIIndex  bool
	Lines        []Line
	Count        int
	TotalSalary  decimal.Decimal
	TotalUpdated decimal.Decimal
	TotalDays    int
	IBM          decimal.Decimal
	Words        string
}

// IBMAmount returns the IBM in pesos.
func (r *Result) IBMAmount() generic.Amount {
	return generic.Pesos(r.IBM)
}

// Included returns the lines that count toward the average.
func (r *Result) Included() []Line {
	var out []Line
	for _, l := range r.Lines {
		if l.Included {
			out = append(out, l)
		}
	}
	return out
}

// =============================================================================
// CALCULATION
// =============================================================================

// Calculate updates every salary to the PMI month and averages them.
func Calculate(ripte *generic.Series, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if ripte == nil {
		ripte = generic.NewSeries(generic.TableRIPTE, nil)
	}

	salaries := in.Salaries
	if len(salaries) == 0 {
		for _, m := range DefaultMonths(in.PMI) {
			salaries = append(salaries, Salary{Month: m, Amount: decimal.Zero})
		}
	}
	sorted := make([]Salary, len(salaries))
	copy(sorted, salaries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Month.Before(sorted[j].Month) })

	r := &Result{
		PMI:          in.PMI,
		TotalSalary:  decimal.Zero,
		TotalUpdated: decimal.Zero,
		IBM:          decimal.Zero,
	}
	pmiPoint, ok := ripte.ExactMonth(in.PMI)
	r.PMIIndex, r.HasPMIIndex = pmiPoint.Value, ok

	for _, s := range sorted {
		l := line(ripte, r, s)
		if l.Included {
			r.Count++
			r.TotalSalary = r.TotalSalary.Add(l.Salary)
			r.TotalUpdated = r.TotalUpdated.Add(l.Updated)
			r.TotalDays += l.Days
		}
		r.Lines = append(r.Lines, l)
	}

	if r.Count > 0 {
		r.IBM = generic.Round(r.TotalUpdated.Div(decimal.NewFromInt(int64(r.Count))))
	}
	r.Words = format.Words(r.IBM)
	return r, nil
}

func line(ripte *generic.Series, r *Result, s Salary) Line {
	m := s.Month.FirstOfMonth()
	l := Line{
		Month:    m,
		Salary:   s.Amount,
		Updated:  s.Amount,
		Days:     m.DaysInMonth(),
		Included: s.Amount.IsPositive(),
	}
	if p, ok := ripte.ExactMonth(m); ok {
		l.Index, l.HasIndex = p.Value, true
	}
	if l.HasIndex && r.HasPMIIndex && !l.Index.IsZero() {
		l.Variation = r.PMIIndex.Sub(l.Index).Div(l.Index)
		l.HasVariation = true
	}
	if l.HasVariation && l.Included {
		l.Updated = generic.Round(s.Amount.Mul(decimal.NewFromInt(1).Add(l.Variation)))
	}
	return l
}
