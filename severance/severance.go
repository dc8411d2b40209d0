/*
Package severance computes the dismissal settlement of the Ley de Contrato de
Trabajo (Ley 20.744) and brings it forward to the payment date.

PURPOSE:
  A worker dismissed without cause is owed seniority pay (Art. 245), notice
  substitute (Art. 232), the rest of the dismissal month (Art. 233),
  proportional thirteenth salary (SAC) and unused vacation. Each item is
  rounded to cents and the total is the sum of the rounded items.

SENIORITY:
  Calendar difference between hire and dismissal. A negative day
  difference borrows a month; a fraction above three months counts as a
  whole year (Art. 245: "fracción mayor de tres meses").

UPDATE:
  From dismissal to settlement with RIPTE plus 3% a year, Tasa Activa and
  accumulated IPC, the same way injury claims are updated.

SEE ALSO:
  - injury/injury.go: Same update rules
  - indexation/update.go: Update methods
*/
package severance

import (
	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/generic"
	"github.com/warp/settlement-engine/indexation"
)

var (
	// PureRate is the yearly pure interest applied on top of RIPTE, percent.
	PureRate = decimal.NewFromInt(3)

	vacationDayDivisor = decimal.NewFromInt(25)
)

// noticeThresholdYears is the seniority from which notice doubles.
const noticeThresholdYears = 5

// =============================================================================
// INPUT
// =============================================================================

// Input is one dismissal.
type Input struct {
	Hire        generic.Date
	Dismissal   generic.Date
	Settlement  generic.Date
	Salary      decimal.Decimal // best normal and habitual monthly salary
	NoticeGiven bool
}

// Validate checks hire <= dismissal <= settlement and a non-negative salary.
func (in Input) Validate() error {
	if in.Hire.IsZero() || in.Dismissal.IsZero() || in.Settlement.IsZero() {
		return generic.Invalid("dates", "hire, dismissal and settlement dates are required")
	}
	if in.Dismissal.Before(in.Hire) {
		return generic.Invalid("dates", "dismissal (%s) is before hire (%s)", in.Dismissal, in.Hire)
	}
	if in.Settlement.Before(in.Dismissal) {
		return generic.Invalid("dates", "settlement (%s) is before dismissal (%s)", in.Settlement, in.Dismissal)
	}
	if in.Salary.IsNegative() {
		return generic.Invalid("salary", "cannot be negative")
	}
	return nil
}

// =============================================================================
// SENIORITY
// =============================================================================

// Seniority returns the computable years and leftover months of service.
func Seniority(hire, dismissal generic.Date) (years, months int) {
	years = dismissal.Year() - hire.Year()
	months = int(dismissal.Month()) - int(hire.Month())
	if dismissal.Day()-hire.Day() < 0 {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}
	if months > 3 {
		years++
		months = 0
	}
	return years, months
}

// VacationDays is the yearly vacation entitlement (Art. 150).
func VacationDays(years int) int {
	switch {
	case years < 5:
		return 14
	case years < 10:
		return 21
	case years < 20:
		return 28
	default:
		return 35
	}
}

// =============================================================================
// RESULT
// =============================================================================

// Semester names the SAC half-year the dismissal falls in.
type Semester int

const (
	FirstSemester  Semester = 1
	SecondSemester Semester = 2
)

// Item is one settlement line.
type Item struct {
	Concept string
	Amount  decimal.Decimal
}

// Result is a computed settlement.
type Result struct {
	Input  Input
	Years  int
	Months int

	Seniority       decimal.Decimal // Art. 245
	NoticeSalaries  int
	Notice          decimal.Decimal
	NoticeSAC       decimal.Decimal
	DaysWorked      int
	DaysWorkedPay   decimal.Decimal
	IntegrationDays int
	Integration     decimal.Decimal
	IntegrationSAC  decimal.Decimal
	Semester        Semester
	SACDays         int
	ProportionalSAC decimal.Decimal
	VacationDays    int
	Vacation        decimal.Decimal
	VacationSAC     decimal.Decimal
	Total           decimal.Decimal

	RIPTE            indexation.RIPTEUpdate
	ActiveRate       indexation.RateUpdate
	InflationPercent decimal.Decimal
}

// Items lists the settlement lines in document order. Lines that do not
// apply (notice given, dismissal on the last day of the month) are omitted.
func (r *Result) Items() []Item {
	var items []Item
	items = append(items, Item{"Antigüedad Art. 245", r.Seniority})
	if r.Notice.IsPositive() {
		items = append(items,
			Item{"Sustitutiva de Preaviso", r.Notice},
			Item{"SAC Preaviso", r.NoticeSAC})
	}
	items = append(items, Item{"Días Trabajados del Mes", r.DaysWorkedPay})
	if r.Integration.IsPositive() {
		items = append(items,
			Item{"Integración mes de Despido", r.Integration},
			Item{"SAC Integración", r.IntegrationSAC})
	}
	return append(items,
		Item{"SAC Proporcional", r.ProportionalSAC},
		Item{"Vacaciones no Gozadas", r.Vacation},
		Item{"SAC Vacaciones", r.VacationSAC})
}

// =============================================================================
// CALCULATION
// =============================================================================

// Calculate computes the settlement and its update to the settlement date.
func Calculate(tables *generic.Tables, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	tables = tables.Normalize()

	r := &Result{Input: in}
	r.Years, r.Months = Seniority(in.Hire, in.Dismissal)
	salary := in.Salary

	r.Seniority = generic.Round(salary.Mul(decimal.NewFromInt(int64(r.Years))))

	r.Notice, r.NoticeSAC = decimal.Zero, decimal.Zero
	if !in.NoticeGiven {
		r.NoticeSalaries = 1
		if r.Years >= noticeThresholdYears {
			r.NoticeSalaries = 2
		}
		notice := salary.Mul(decimal.NewFromInt(int64(r.NoticeSalaries)))
		r.Notice = generic.Round(notice)
		r.NoticeSAC = generic.Round(notice.Div(generic.Twelve))
	}

	dim := in.Dismissal.DaysInMonth()
	daily := salary.Div(decimal.NewFromInt(int64(dim)))
	r.DaysWorked = in.Dismissal.Day()
	r.DaysWorkedPay = generic.Round(daily.Mul(decimal.NewFromInt(int64(r.DaysWorked))))

	r.Integration, r.IntegrationSAC = decimal.Zero, decimal.Zero
	if r.DaysWorked != dim {
		r.IntegrationDays = dim - r.DaysWorked
		integration := daily.Mul(decimal.NewFromInt(int64(r.IntegrationDays)))
		r.Integration = generic.Round(integration)
		r.IntegrationSAC = generic.Round(integration.Div(generic.Twelve))
	}

	semesterStart := generic.NewDate(in.Dismissal.Year(), 1, 1)
	r.Semester = FirstSemester
	if in.Dismissal.Month() > 6 {
		semesterStart = generic.NewDate(in.Dismissal.Year(), 7, 1)
		r.Semester = SecondSemester
	}
	r.SACDays = generic.DaysBetween(semesterStart, in.Dismissal)
	r.ProportionalSAC = generic.Round(salary.Div(generic.DaysInYear).Mul(decimal.NewFromInt(int64(r.SACDays))))

	r.VacationDays = VacationDays(r.Years)
	vacation := salary.Div(vacationDayDivisor).Mul(decimal.NewFromInt(int64(r.VacationDays)))
	r.Vacation = generic.Round(vacation)
	r.VacationSAC = generic.Round(vacation.Div(generic.Twelve))

	r.Total = generic.SumRounded(
		r.Seniority, r.Notice, r.NoticeSAC,
		r.DaysWorkedPay, r.Integration, r.IntegrationSAC,
		r.ProportionalSAC, r.Vacation, r.VacationSAC,
	)

	r.RIPTE = indexation.ByRIPTE(tables.RIPTE, r.Total, in.Dismissal, in.Settlement, PureRate, indexation.Annual)
	r.ActiveRate = indexation.ByActiveRate(tables.ActiveRate, r.Total, in.Dismissal, in.Settlement)
	r.InflationPercent = tables.IPC.CompoundChange(generic.NewPeriod(in.Dismissal, in.Settlement))
	return r, nil
}
