package fees

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// CONSTANTS
// =============================================================================

var (
	// CapPercent is the Ley 24.432 limit on first-instance fees.
	CapPercent = decimal.NewFromInt(25)

	// WarningPercent is the usage above which the sheet warns.
	WarningPercent = decimal.NewFromInt(20)

	// MaxRowPercent bounds each row's share of the case amount.
	MaxRowPercent = decimal.NewFromInt(25)

	// DefendantShare is defendant counsel's fee relative to plaintiff counsel.
	DefendantShare = decimal.RequireFromString("0.70")

	// VATRate is the value added tax, as a multiplier.
	VATRate = decimal.RequireFromString("0.21")

	two = decimal.NewFromInt(2)
)

// MaxExperts is the number of expert rows on the sheet.
const MaxExperts = 4

// Contribution rates accepted for a row, percent.
const (
	ContributionLow     = 5
	ContributionDefault = 10
)

// Role identifies a row of the sheet.
type Role string

const (
	RolePlaintiff Role = "actora"
	RoleExpert    Role = "auxiliar"
	RoleDefendant Role = "demandada"
)

// Status summarises cap usage.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

// StatusFor classifies a used percentage: ok up to 20, warning up to 25,
// exceeded above.
func StatusFor(used decimal.Decimal) Status {
	switch {
	case used.GreaterThan(CapPercent):
		return StatusExceeded
	case used.GreaterThan(WarningPercent):
		return StatusWarning
	default:
		return StatusOK
	}
}

// =============================================================================
// INPUT
// =============================================================================

// Charges are the additions applied on top of a fee.
type Charges struct {
	VAT          bool
	Contribution int // percent, 5 or 10; zero means 10
}

func (c Charges) rate() int {
	if c.Contribution == 0 {
		return ContributionDefault
	}
	return c.Contribution
}

// Fee is one professional's share of the case amount.
type Fee struct {
	Percent decimal.Decimal
	Charges
}

// RegulationInput is one fee regulation sheet.
type RegulationInput struct {
	Amount    decimal.Decimal
	Date      generic.Date
	Plaintiff Fee
	Experts   []Fee
	Defendant Charges
}

// Validate checks the sheet.
func (in RegulationInput) Validate() error {
	if !in.Amount.IsPositive() {
		return generic.Invalid("amount", "must be greater than zero")
	}
	if in.Date.IsZero() {
		return generic.Invalid("date", "is required")
	}
	if len(in.Experts) > MaxExperts {
		return generic.Invalid("experts", "at most %d experts, got %d", MaxExperts, len(in.Experts))
	}
	if err := checkFee("plaintiff", in.Plaintiff); err != nil {
		return err
	}
	for i, e := range in.Experts {
		if err := checkFee(fmt.Sprintf("experts[%d]", i), e); err != nil {
			return err
		}
	}
	return checkCharges("defendant", in.Defendant)
}

func checkFee(field string, f Fee) error {
	if f.Percent.IsNegative() || f.Percent.GreaterThan(MaxRowPercent) {
		return generic.Invalid(field, "percent must be between 0 and %s", MaxRowPercent)
	}
	return checkCharges(field, f.Charges)
}

func checkCharges(field string, c Charges) error {
	switch c.rate() {
	case ContributionLow, ContributionDefault:
		return nil
	}
	return generic.Invalid(field, "contribution must be %d or %d, got %d", ContributionLow, ContributionDefault, c.Contribution)
}

// =============================================================================
// RESULT
// =============================================================================

// Row is one computed line of the sheet.
type Row struct {
	Role          Role
	Number        int // expert number, 1-based
	Percent       decimal.Decimal
	Pesos         decimal.Decimal
	JUS           decimal.Decimal
	VAT           decimal.Decimal
	Contribution  int
	Contributions decimal.Decimal
	Total         decimal.Decimal
}

// Regulation is a computed sheet.
type Regulation struct {
	Input     RegulationInput
	Agreement Agreement
	Rows      []Row // plaintiff first, then experts
	Defendant Row

	Used        decimal.Decimal // sum of row totals, defendant excluded
	UsedPercent decimal.Decimal
	TotalJUS    decimal.Decimal
	Cap         decimal.Decimal
	Available   decimal.Decimal // negative when exceeded
	CapJUS      decimal.Decimal
	Status      Status

	MinimumFee       decimal.Decimal // latest RIPTE average wage / 2
	MinimumFeePeriod generic.Date
	HasMinimumFee    bool
}

// =============================================================================
// CALCULATION
// =============================================================================

// Regulate computes the sheet. An empty JUS table leaves JUS columns at
// zero rather than failing.
func Regulate(tables *generic.Tables, in RegulationInput) (*Regulation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	tables = tables.Normalize()

	r := &Regulation{Input: in, TotalJUS: decimal.Zero, Used: decimal.Zero}
	if a, ok := tables.JUS.LookupClamped(in.Date); ok {
		r.Agreement = agreementOf(a)
	}
	jusValue := r.Agreement.Value

	plaintiff := row(RolePlaintiff, 0, generic.Round(generic.Pct(in.Plaintiff.Percent).Mul(in.Amount)), in.Plaintiff.Percent, in.Plaintiff.Charges, jusValue)
	r.Rows = append(r.Rows, plaintiff)
	for i, e := range in.Experts {
		pesos := generic.Round(generic.Pct(e.Percent).Mul(in.Amount))
		r.Rows = append(r.Rows, row(RoleExpert, i+1, pesos, e.Percent, e.Charges, jusValue))
	}

	defPesos := generic.Round(plaintiff.Pesos.Mul(DefendantShare))
	defPct := generic.Round(defPesos.Div(in.Amount).Mul(generic.Hundred))
	r.Defendant = row(RoleDefendant, 0, defPesos, defPct, in.Defendant, jusValue)

	for _, rw := range r.Rows {
		r.Used = r.Used.Add(rw.Total)
		r.TotalJUS = r.TotalJUS.Add(rw.JUS)
	}
	r.UsedPercent = r.Used.Div(in.Amount).Mul(generic.Hundred)
	r.Cap = generic.Round(in.Amount.Mul(generic.Pct(CapPercent)))
	r.Available = r.Cap.Sub(r.Used)
	r.CapJUS = perJUS(r.Cap, jusValue)
	r.Status = StatusFor(r.UsedPercent)

	if p, ok := tables.RIPTEAmount.Latest(); ok {
		r.MinimumFee = generic.Round(p.Value.Div(two))
		r.MinimumFeePeriod = p.At
		r.HasMinimumFee = true
	}
	return r, nil
}

func row(role Role, n int, pesos, pct decimal.Decimal, c Charges, jusValue decimal.Decimal) Row {
	rw := Row{
		Role:         role,
		Number:       n,
		Percent:      pct,
		Pesos:        pesos,
		JUS:          perJUS(pesos, jusValue),
		VAT:          decimal.Zero,
		Contribution: c.rate(),
	}
	if c.VAT {
		rw.VAT = generic.Round(pesos.Mul(VATRate))
	}
	rw.Contributions = generic.Round(pesos.Mul(decimal.NewFromInt(int64(rw.Contribution))).Div(generic.Hundred))
	rw.Total = pesos.Add(rw.VAT).Add(rw.Contributions)
	return rw
}

func perJUS(pesos, jusValue decimal.Decimal) decimal.Decimal {
	if !jusValue.IsPositive() {
		return decimal.Zero
	}
	return generic.Round(pesos.Div(jusValue))
}
