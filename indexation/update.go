/*
Package indexation updates peso amounts across time with the three official
methods used in labor claims.

PURPOSE:
  A claim computed at one date (the accident, the dismissal) is paid at a
  later date. The amount is brought forward with a wage index (RIPTE), a
  bank lending rate (Tasa Activa BNA) or consumer inflation (IPC), usually
  plus a pure interest rate. Courts compare the methods and apply the most
  favourable one.

METHODS:
  RIPTE:        amount * RIPTE(to) / RIPTE(from), plus pure interest
  Tasa Activa:  amount * (1 + sum(rate * overlap_days / 30) / 100)
  IPC:          amount * prod(1 + monthly_change / 100), plus pure interest

PURE INTEREST:
  Two flavours exist. The standalone update calculator applies the rate
  once, flat (Flat). Injury and severance apply it per year, prorated by
  elapsed days (Annual).

ROUNDING:
  Each reported figure (updated amount, interest, total) is rounded with
  generic.Round. Coefficients and percentages are never rounded.

SEE ALSO:
  - generic/series.go: Ratio and CompoundFactor
  - generic/rates.go: Interval-overlap accumulation
  - indexation.go: The update calculator
*/
package indexation

import (
	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// INTEREST MODE
// =============================================================================

// InterestMode says how a pure interest rate applies over the period.
type InterestMode string

const (
	// Flat applies the rate once, whatever the length of the period.
	Flat InterestMode = "flat"
	// Annual prorates the rate by elapsed days over a 365-day year.
	Annual InterestMode = "annual"
)

// =============================================================================
// RIPTE
// =============================================================================

// RIPTEUpdate is an amount brought forward by the wage index.
type RIPTEUpdate struct {
	Base         decimal.Decimal
	IndexFrom    generic.Point
	IndexTo      generic.Point
	Coefficient  decimal.Decimal
	Updated      decimal.Decimal
	InterestRate decimal.Decimal // percent
	Mode         InterestMode
	Days         int // elapsed days, used by Annual
	Interest     decimal.Decimal
	Total        decimal.Decimal
}

// ByRIPTE applies the RIPTE coefficient between from and to, then pure
// interest on the updated amount. An empty index leaves the amount as is.
func ByRIPTE(ripte *generic.Series, base decimal.Decimal, from, to generic.Date, rate decimal.Decimal, mode InterestMode) RIPTEUpdate {
	u := RIPTEUpdate{
		Base:         base,
		Coefficient:  ripte.Ratio(from, to),
		InterestRate: rate,
		Mode:         mode,
		Days:         generic.DaysBetween(from, to),
	}
	u.IndexFrom, _ = ripte.ValueAt(from)
	u.IndexTo, _ = ripte.ValueAt(to)

	u.Updated = generic.Round(base.Mul(u.Coefficient))
	u.Interest = generic.Round(interest(u.Updated, rate, mode, u.Days))
	u.Total = generic.Round(u.Updated.Add(u.Interest))
	return u
}

func interest(amount, rate decimal.Decimal, mode InterestMode, days int) decimal.Decimal {
	i := amount.Mul(generic.Pct(rate))
	if mode == Annual {
		if days <= 0 {
			return decimal.Zero
		}
		i = i.Mul(decimal.NewFromInt(int64(days))).Div(generic.DaysInYear)
	}
	return i
}

// =============================================================================
// TASA ACTIVA
// =============================================================================

// RateUpdate is an amount brought forward by the accumulated lending rate.
type RateUpdate struct {
	Base          decimal.Decimal
	Percent       decimal.Decimal // accumulated, not rounded
	Contributions []generic.Contribution
	Interest      decimal.Decimal
	Total         decimal.Decimal
}

// ByActiveRate accumulates the rate over [from, to], both days included.
func ByActiveRate(rates *generic.RateTable, base decimal.Decimal, from, to generic.Date) RateUpdate {
	p := generic.NewPeriod(from, to)
	u := RateUpdate{
		Base:          base,
		Contributions: rates.Contributions(p),
	}
	u.Percent = decimal.Zero
	for _, c := range u.Contributions {
		u.Percent = u.Percent.Add(c.Percent)
	}
	u.Total = generic.Round(base.Mul(decimal.NewFromInt(1).Add(generic.Pct(u.Percent))))
	u.Interest = u.Total.Sub(generic.Round(base))
	return u
}

// =============================================================================
// IPC
// =============================================================================

// IPCUpdate is an amount brought forward by accumulated inflation.
type IPCUpdate struct {
	Base         decimal.Decimal
	Factor       decimal.Decimal
	Percent      decimal.Decimal // (Factor - 1) * 100
	Updated      decimal.Decimal
	InterestRate decimal.Decimal
	Interest     decimal.Decimal
	Total        decimal.Decimal
}

// ByIPC compounds the monthly changes of every month from the month of
// from to the month of to, then applies flat pure interest.
func ByIPC(ipc *generic.Series, base decimal.Decimal, from, to generic.Date, rate decimal.Decimal) IPCUpdate {
	p := generic.NewPeriod(from, to)
	u := IPCUpdate{
		Base:         base,
		Factor:       ipc.CompoundFactor(p),
		InterestRate: rate,
	}
	u.Percent = u.Factor.Sub(decimal.NewFromInt(1)).Mul(generic.Hundred)
	u.Updated = generic.Round(base.Mul(u.Factor))
	u.Interest = generic.Round(interest(u.Updated, rate, Flat, 0))
	u.Total = generic.Round(u.Updated.Add(u.Interest))
	return u
}
