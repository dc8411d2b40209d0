/*
Package injury computes the workers' compensation indemnity of Ley 24.557
(Art. 14 inc. 2 a) and brings it forward to the settlement date.

PURPOSE:
  A worker suffering a permanent partial disability is owed a lump sum
  computed from the monthly base income (IBM), age and disability
  percentage. The lump sum is compared with the legal minimum in force at
  the date of the first disabling manifestation (PMI) and then updated to
  the payment date.

FORMULA:
  capital    = IBM * 53 * (65 / age) * (disability / 100)
  floor part = floor(PMI) * disability / 100
  capital    = max(capital, floor part)
  base       = capital + 20% additional (Art. 3 Ley 26.773, optional)

UPDATE:
  RIPTE:       base * RIPTE(final) / RIPTE(PMI), plus 3% a year prorated by days
  Tasa Activa: base * (1 + accumulated rate / 100)
  IPC:         accumulated inflation, reported for reference only

  The most favourable of RIPTE and Tasa Activa is flagged. Ties favour RIPTE.

SEE ALSO:
  - indexation/update.go: The update methods shared with other calculators
  - generic/thresholds.go: Floor lookup
*/
package injury

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/generic"
	"github.com/warp/settlement-engine/indexation"
)

// =============================================================================
// CONSTANTS
// =============================================================================

var (
	// PureRate is the yearly pure interest applied on top of RIPTE, percent.
	PureRate = decimal.NewFromInt(3)

	// AdditionalRate is the Art. 3 Ley 26.773 additional, as a multiplier.
	AdditionalRate = decimal.RequireFromString("0.20")

	formulaFactor = decimal.NewFromInt(53)
	retirementAge = decimal.NewFromInt(65)
)

const (
	MinAge = 18
	MaxAge = 100

	infoNoFloor      = "No se encontró piso mínimo para la fecha"
	infoFloorExceeds = "Supera piso mínimo %s"
	infoFloorApplies = "Se aplica piso mínimo %s"
)

// =============================================================================
// INPUT
// =============================================================================

// Input is one indemnity claim.
type Input struct {
	PMI        generic.Date // first disabling manifestation
	Final      generic.Date // settlement date
	IBM        decimal.Decimal
	Age        int
	Disability decimal.Decimal // percent, (0, 100]
	Additional bool            // include the 20% additional
}

// Validate checks the input domain.
func (in Input) Validate() error {
	if in.PMI.IsZero() || in.Final.IsZero() {
		return generic.Invalid("dates", "pmi and final dates are required")
	}
	if in.Final.Before(in.PMI) {
		return generic.Invalid("dates", "final date (%s) is before PMI (%s)", in.Final, in.PMI)
	}
	if in.Age < MinAge || in.Age > MaxAge {
		return generic.Invalid("age", "must be between %d and %d, got %d", MinAge, MaxAge, in.Age)
	}
	if !in.Disability.IsPositive() || in.Disability.GreaterThan(generic.Hundred) {
		return generic.Invalid("disability", "must be greater than 0 and at most 100")
	}
	if in.IBM.IsNegative() {
		return generic.Invalid("ibm", "cannot be negative")
	}
	return nil
}

// =============================================================================
// RESULT
// =============================================================================

// Floor is the outcome of comparing the formula with the legal minimum.
type Floor struct {
	Found        bool
	Amount       decimal.Decimal // full floor in force at PMI
	Proportional decimal.Decimal // floor * disability / 100
	Citation     string
	Link         string
	Applied      bool
	Info         string
}

// Result is a computed indemnity.
type Result struct {
	Input      Input
	Formula    decimal.Decimal
	Floor      Floor
	Capital    decimal.Decimal // formula or floor, whichever applies
	Additional decimal.Decimal
	Base       decimal.Decimal

	RIPTE            indexation.RIPTEUpdate
	ActiveRate       indexation.RateUpdate
	InflationPercent decimal.Decimal

	Favourable indexation.Method
}

// FavourableTotal returns the total of the most favourable method.
func (r *Result) FavourableTotal() decimal.Decimal {
	if r.Favourable == indexation.MethodActiveRate {
		return r.ActiveRate.Total
	}
	return r.RIPTE.Total
}

// =============================================================================
// CALCULATION
// =============================================================================

// Calculate computes the indemnity against the given reference tables.
// Missing tables never fail: no floor applies, coefficients are neutral.
func Calculate(tables *generic.Tables, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	tables = tables.Normalize()

	r := &Result{Input: in}
	r.Formula = Formula(in.IBM, in.Age, in.Disability)
	r.Floor = checkFloor(tables.Floors, in.PMI, in.Disability, r.Formula)

	r.Capital = r.Formula
	if r.Floor.Applied {
		r.Capital = r.Floor.Proportional
	}
	r.Additional = decimal.Zero
	if in.Additional {
		r.Additional = generic.Round(r.Capital.Mul(AdditionalRate))
	}
	r.Base = generic.Round(r.Capital.Add(r.Additional))

	r.RIPTE = indexation.ByRIPTE(tables.RIPTE, r.Base, in.PMI, in.Final, PureRate, indexation.Annual)
	r.ActiveRate = indexation.ByActiveRate(tables.ActiveRate, r.Base, in.PMI, in.Final)
	r.InflationPercent = tables.IPC.CompoundChange(generic.NewPeriod(in.PMI, in.Final))

	r.Favourable = indexation.MethodRIPTE
	if r.ActiveRate.Total.GreaterThan(r.RIPTE.Total) {
		r.Favourable = indexation.MethodActiveRate
	}
	return r, nil
}

// Formula is IBM * 53 * 65/age * disability/100, rounded to cents.
// The division happens last so 65/age loses no precision.
func Formula(ibm decimal.Decimal, age int, disability decimal.Decimal) decimal.Decimal {
	if age <= 0 {
		return decimal.Zero
	}
	num := ibm.Mul(formulaFactor).Mul(retirementAge).Mul(disability)
	den := decimal.NewFromInt(int64(age)).Mul(generic.Hundred)
	return generic.Round(num.Div(den))
}

func checkFloor(floors *generic.ThresholdTable, pmi generic.Date, disability, formula decimal.Decimal) Floor {
	row, ok := floors.Lookup(pmi)
	if !ok {
		return Floor{Amount: decimal.Zero, Proportional: decimal.Zero, Info: infoNoFloor}
	}
	f := Floor{
		Found:        true,
		Amount:       row.Value,
		Proportional: generic.Round(row.Value.Mul(generic.Pct(disability))),
		Citation:     row.Citation,
		Link:         row.Link,
	}
	if formula.GreaterThanOrEqual(f.Proportional) {
		f.Info = fmt.Sprintf(infoFloorExceeds, row.Citation)
	} else {
		f.Applied = true
		f.Info = fmt.Sprintf(infoFloorApplies, row.Citation)
	}
	return f
}
