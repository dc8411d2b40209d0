package fees_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/settlement-engine/fees"
	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func num(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func d(y int, m time.Month, day int) generic.Date {
	return generic.NewDate(y, m, day)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, num(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func jusTable() *generic.ThresholdTable {
	nov := d(2023, time.November, 30)
	feb := d(2024, time.February, 29)
	return generic.NewThresholdTable(generic.TableJUS, []generic.Threshold{
		{From: d(2023, time.June, 1), To: &nov, Value: num("20000"), Citation: "Acuerdo 3000"},
		{From: d(2023, time.December, 1), To: &feb, Value: num("30000"), Citation: "Acuerdo 3050"},
		{From: d(2024, time.March, 1), Value: num("40000"), Citation: "Acuerdo 3100"},
	})
}

func tables() *generic.Tables {
	t := generic.EmptyTables()
	t.JUS = jusTable()
	t.RIPTEAmount = generic.NewSeries(generic.TableRIPTEAmount, []generic.Point{
		{At: d(2024, time.May, 1), Value: num("1100000")},
		{At: d(2024, time.June, 1), Value: num("1170000")},
	})
	return t
}

// =============================================================================
// JUS CONVERSION
// =============================================================================

func TestConvertToJUS(t *testing.T) {
	// GIVEN: $100.000 regulated on 15 Jan 2024 (JUS = $30.000)
	// WHEN: Converting and valuing again on 1 May 2024 (JUS = $40.000)
	// THEN: 3,33 JUS, worth $133.333,33 today

	c, err := fees.ConvertToJUS(jusTable(), num("100000"), d(2024, time.January, 15), d(2024, time.May, 1))
	require.NoError(t, err)

	assertDec(t, "30000", c.At.Value, "value at date")
	assert.Equal(t, "Acuerdo 3050", c.At.Citation)
	assert.Equal(t, "29/02/2024", c.At.Until())
	assertDec(t, "3.33", c.JUS, "jus")
	assertDec(t, "40000", c.Current.Value, "current value")
	assert.Equal(t, fees.OpenEnded, c.Current.Until())
	assertDec(t, "133333.33", c.Updated, "updated")
	assert.Equal(t, generic.UnitJUS, c.InJUS().Unit)
	assert.Equal(t, generic.UnitPesos, c.UpdatedPesos().Unit)
	assertDec(t, "3.33", c.InJUS().Value, "jus amount")
}

func TestConvertToJUS_BeforeAllAgreements_UsesOldest(t *testing.T) {
	c, err := fees.ConvertToJUS(jusTable(), num("50000"), d(2020, time.January, 1), generic.Date{})
	require.NoError(t, err)

	assert.Equal(t, "Acuerdo 3000", c.At.Citation)
	assertDec(t, "2.5", c.JUS, "jus")
	assert.Equal(t, c.Date, c.AsOf)
	assertDec(t, "50000", c.Updated, "updated")
}

func TestConvertToJUS_Errors(t *testing.T) {
	_, err := fees.ConvertToJUS(jusTable(), decimal.Zero, d(2024, time.January, 1), generic.Date{})
	assert.ErrorIs(t, err, generic.ErrInvalidInput)

	_, err = fees.ConvertToJUS(generic.NewThresholdTable(generic.TableJUS, nil), num("1"), d(2024, time.January, 1), generic.Date{})
	assert.ErrorIs(t, err, generic.ErrEmptyTable)
	assert.True(t, generic.IsNotFound(err))
}

// =============================================================================
// REGULATION
// =============================================================================

func baseSheet() fees.RegulationInput {
	return fees.RegulationInput{
		Amount:    num("10000000"),
		Date:      d(2024, time.April, 1),
		Plaintiff: fees.Fee{Percent: num("15")},
		Experts: []fees.Fee{
			{Percent: num("5"), Charges: fees.Charges{VAT: true, Contribution: 5}},
		},
	}
}

func TestRegulate(t *testing.T) {
	// GIVEN: $10.000.000 case, plaintiff 15%, one expert 5% with VAT
	// WHEN: Regulating
	// THEN: Rows carry VAT and contributions; usage counts row totals

	reg, err := fees.Regulate(tables(), baseSheet())
	require.NoError(t, err)

	assert.Equal(t, "Acuerdo 3100", reg.Agreement.Citation)
	require.Len(t, reg.Rows, 2)

	p := reg.Rows[0]
	assert.Equal(t, fees.RolePlaintiff, p.Role)
	assertDec(t, "1500000", p.Pesos, "plaintiff pesos")
	assertDec(t, "37.5", p.JUS, "plaintiff jus")
	assertDec(t, "0", p.VAT, "plaintiff vat")
	assert.Equal(t, 10, p.Contribution)
	assertDec(t, "150000", p.Contributions, "plaintiff contributions")
	assertDec(t, "1650000", p.Total, "plaintiff total")

	e := reg.Rows[1]
	assert.Equal(t, fees.RoleExpert, e.Role)
	assert.Equal(t, 1, e.Number)
	assertDec(t, "500000", e.Pesos, "expert pesos")
	assertDec(t, "105000", e.VAT, "expert vat")
	assertDec(t, "25000", e.Contributions, "expert contributions")
	assertDec(t, "630000", e.Total, "expert total")

	assertDec(t, "1050000", reg.Defendant.Pesos, "defendant pesos")
	assertDec(t, "10.5", reg.Defendant.Percent, "defendant percent")
	assertDec(t, "26.25", reg.Defendant.JUS, "defendant jus")
	assertDec(t, "1155000", reg.Defendant.Total, "defendant total")

	assertDec(t, "2280000", reg.Used, "used")
	assertDec(t, "22.8", reg.UsedPercent, "used percent")
	assertDec(t, "50", reg.TotalJUS, "total jus")
	assertDec(t, "2500000", reg.Cap, "cap")
	assertDec(t, "220000", reg.Available, "available")
	assertDec(t, "62.5", reg.CapJUS, "cap jus")
	assert.Equal(t, fees.StatusWarning, reg.Status)

	assert.True(t, reg.HasMinimumFee)
	assertDec(t, "585000", reg.MinimumFee, "minimum fee")
	assert.Equal(t, d(2024, time.June, 1), reg.MinimumFeePeriod)
}

func TestRegulate_Exceeded(t *testing.T) {
	in := baseSheet()
	in.Plaintiff.Percent = num("25")
	in.Experts = []fees.Fee{{Percent: num("1")}}

	reg, err := fees.Regulate(tables(), in)
	require.NoError(t, err)

	// (2.500.000 + 100.000) * 1.10
	assertDec(t, "2860000", reg.Used, "used")
	assert.Equal(t, fees.StatusExceeded, reg.Status)
	assertDec(t, "-360000", reg.Available, "available")
}

func TestRegulate_EmptyJUSTable_ZeroJUSColumns(t *testing.T) {
	reg, err := fees.Regulate(generic.EmptyTables(), baseSheet())
	require.NoError(t, err)

	assertDec(t, "0", reg.Rows[0].JUS, "jus")
	assertDec(t, "0", reg.CapJUS, "cap jus")
	assert.False(t, reg.HasMinimumFee)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fees.StatusOK, fees.StatusFor(num("11")))
	assert.Equal(t, fees.StatusOK, fees.StatusFor(num("20")))
	assert.Equal(t, fees.StatusWarning, fees.StatusFor(num("20.01")))
	assert.Equal(t, fees.StatusWarning, fees.StatusFor(num("25")))
	assert.Equal(t, fees.StatusExceeded, fees.StatusFor(num("25.01")))
}

func TestRegulationInput_Validate(t *testing.T) {
	cases := map[string]func(*fees.RegulationInput){
		"zero amount":        func(in *fees.RegulationInput) { in.Amount = decimal.Zero },
		"missing date":       func(in *fees.RegulationInput) { in.Date = generic.Date{} },
		"row above 25":       func(in *fees.RegulationInput) { in.Plaintiff.Percent = num("25.5") },
		"negative expert":    func(in *fees.RegulationInput) { in.Experts[0].Percent = num("-1") },
		"bad contribution":   func(in *fees.RegulationInput) { in.Plaintiff.Contribution = 7 },
		"bad defendant rate": func(in *fees.RegulationInput) { in.Defendant.Contribution = 3 },
		"five experts": func(in *fees.RegulationInput) {
			in.Experts = make([]fees.Fee, 5)
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := baseSheet()
			mutate(&in)

			_, err := fees.Regulate(tables(), in)

			assert.ErrorIs(t, err, generic.ErrInvalidInput)
		})
	}
}
