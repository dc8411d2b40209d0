/*
Package generic provides the reference-table engine behind every calculator.

PURPOSE:
  This package contains domain-agnostic types and algorithms for looking up
  values in small, dated reference tables. Whether the table is a wage index,
  a bank lending rate or a legal minimum, the same primitives answer "what
  value applies on this date" and "how much accumulates over this range".

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A decimal quantity with a unit (pesos, JUS, percent, index points)
  - Pct: Percentages are stored as written (3.5 means 3.5%)
  - Round: The accounting rounding rule applied to every reported line item

DESIGN PRINCIPLES:
  1. Purity: Every computation is a function of (table, dates, amounts)
  2. Precision: Uses decimal.Decimal; floats never reach a reported sum
  3. Totality: Missing data clamps or falls back to a neutral value, never panics
  4. Line-item rounding: Round each reported figure, not only the grand total

USAGE:
  coef := tables.RIPTE.Ratio(pmi, final)
  updated := generic.Round(base.Mul(coef))

SEE ALSO:
  - series.go: Nearest-prior lookup and compound accumulation
  - rates.go: Interval-overlap accumulation
  - thresholds.go: Validity-window lookups
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// ROUNDING
// =============================================================================

// CentPlaces is the precision of every currency line item.
const CentPlaces int32 = 2

// Round rounds to cents, half away from zero (10.125 -> 10.13, 10.124 -> 10.12).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentPlaces)
}

// Common constants
var (
	Hundred    = decimal.NewFromInt(100)
	Thirty     = decimal.NewFromInt(30)
	DaysInYear = decimal.NewFromInt(365)
	Twelve     = decimal.NewFromInt(12)
)

// Pct converts a percentage into a multiplier (3.5 -> 0.035).
func Pct(p decimal.Decimal) decimal.Decimal {
	return p.Div(Hundred)
}

// SumRounded adds line items after rounding each one.
func SumRounded(items ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(Round(it))
	}
	return total
}

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

// Amount is a decimal quantity tagged with what it counts.
type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

// Unit identifies what an Amount counts.
type Unit string

const (
	UnitPesos   Unit = "pesos"
	UnitJUS     Unit = "jus"
	UnitPercent Unit = "percent"
	UnitIndex   Unit = "index"
)

func Pesos(v decimal.Decimal) Amount    { return Amount{Value: v, Unit: UnitPesos} }
func JUSUnits(v decimal.Decimal) Amount { return Amount{Value: v, Unit: UnitJUS} }
func Percent(v decimal.Decimal) Amount  { return Amount{Value: v, Unit: UnitPercent} }
func IndexPoints(v decimal.Decimal) Amount {
	return Amount{Value: v, Unit: UnitIndex}
}

// Arithmetic keeps the receiver's unit.
func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Unit: a.Unit} }
func (a Amount) Round() Amount                { return Amount{Value: Round(a.Value), Unit: a.Unit} }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) IsPositive() bool             { return a.Value.IsPositive() }
func (a Amount) GreaterThan(b Amount) bool    { return a.Value.GreaterThan(b.Value) }
