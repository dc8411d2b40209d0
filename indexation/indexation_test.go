package indexation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/settlement-engine/generic"
	"github.com/warp/settlement-engine/indexation"
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

// q1Tables: RIPTE 1000/1100/1250, Tasa 3.982/3/3, IPC 10% monthly, Q1 2024.
func q1Tables() *generic.Tables {
	t := generic.EmptyTables()
	t.RIPTE = generic.NewSeries(generic.TableRIPTE, []generic.Point{
		{At: d(2024, time.January, 1), Value: num("1000")},
		{At: d(2024, time.February, 1), Value: num("1100")},
		{At: d(2024, time.March, 1), Value: num("1250")},
	})
	t.ActiveRate = generic.NewRateTable(generic.TableActiveRate, []generic.RateInterval{
		{From: d(2024, time.January, 1), To: d(2024, time.January, 31), Rate: num("3.982")},
		{From: d(2024, time.February, 1), To: d(2024, time.February, 29), Rate: num("3")},
		{From: d(2024, time.March, 1), To: d(2024, time.March, 31), Rate: num("3")},
	})
	t.IPC = generic.NewSeries(generic.TableIPC, []generic.Point{
		{At: d(2024, time.January, 1), Value: num("10")},
		{At: d(2024, time.February, 1), Value: num("10")},
		{At: d(2024, time.March, 1), Value: num("10")},
	})
	return t
}

func q1Input() indexation.Input {
	return indexation.Input{
		Amount:    num("100000"),
		From:      d(2024, time.January, 15),
		To:        d(2024, time.March, 20),
		RIPTERate: num("3"),
		IPCRate:   num("2"),
	}
}

// =============================================================================
// CALCULATE
// =============================================================================

func TestCalculate_AllMethods(t *testing.T) {
	// GIVEN: $100.000 from 2024-01-15 to 2024-03-20
	// WHEN: Updating by every method
	// THEN: RIPTE 1.25 + 3% flat, Tasa 17/29/20 days, IPC 1.1^3 + 2% flat

	res, err := indexation.Calculate(q1Tables(), q1Input())
	require.NoError(t, err)

	assertDec(t, "1.25", res.RIPTE.Coefficient, "ripte coefficient")
	assertDec(t, "125000", res.RIPTE.Updated, "ripte updated")
	assertDec(t, "3750", res.RIPTE.Interest, "ripte interest")
	assertDec(t, "128750", res.RIPTE.Total, "ripte total")

	require.Len(t, res.ActiveRate.Contributions, 3)
	assert.Equal(t, 17, res.ActiveRate.Contributions[0].Days)
	assert.Equal(t, 29, res.ActiveRate.Contributions[1].Days)
	assert.Equal(t, 20, res.ActiveRate.Contributions[2].Days)
	assert.Equal(t, "7.1565", res.ActiveRate.Percent.StringFixed(4))
	assertDec(t, "107156.47", res.ActiveRate.Total, "tasa total")
	assertDec(t, "7156.47", res.ActiveRate.Interest, "tasa interest")

	assertDec(t, "1.331", res.IPC.Factor, "ipc factor")
	assertDec(t, "33.1", res.IPC.Percent, "ipc percent")
	assertDec(t, "133100", res.IPC.Updated, "ipc updated")
	assertDec(t, "2662", res.IPC.Interest, "ipc interest")
	assertDec(t, "135762", res.IPC.Total, "ipc total")

	method, total := res.Highest()
	assert.Equal(t, indexation.MethodIPC, method)
	assertDec(t, "135762", total, "highest")
}

func TestCalculate_EmptyTables_LeaveAmountUnchanged(t *testing.T) {
	// GIVEN: No reference data at all
	// WHEN: Updating
	// THEN: Neutral coefficients; only the pure rates add interest

	res, err := indexation.Calculate(generic.EmptyTables(), q1Input())
	require.NoError(t, err)

	assertDec(t, "1", res.RIPTE.Coefficient, "coefficient")
	assertDec(t, "100000", res.RIPTE.Updated, "ripte updated")
	assertDec(t, "100000", res.ActiveRate.Total, "tasa total")
	assertDec(t, "0", res.IPC.Percent, "ipc percent")
	assertDec(t, "102000", res.IPC.Total, "ipc total")
}

func TestCalculate_NilTablesAreEmpty(t *testing.T) {
	_, err := indexation.Calculate(nil, q1Input())
	assert.NoError(t, err)
}

func TestInput_Validate(t *testing.T) {
	cases := map[string]func(*indexation.Input){
		"zero amount":     func(in *indexation.Input) { in.Amount = decimal.Zero },
		"same dates":      func(in *indexation.Input) { in.To = in.From },
		"inverted dates":  func(in *indexation.Input) { in.From, in.To = in.To, in.From },
		"rate above six":  func(in *indexation.Input) { in.RIPTERate = num("6.01") },
		"negative rate":   func(in *indexation.Input) { in.IPCRate = num("-1") },
		"missing to date": func(in *indexation.Input) { in.To = generic.Date{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := q1Input()
			mutate(&in)

			_, err := indexation.Calculate(q1Tables(), in)

			assert.ErrorIs(t, err, generic.ErrInvalidInput)
		})
	}
}

// =============================================================================
// ANNUAL INTEREST
// =============================================================================

func TestByRIPTE_AnnualInterest_ProratesByDays(t *testing.T) {
	// GIVEN: Coefficient 1 and 3% per year over 73 days
	// WHEN: Applying annual pure interest
	// THEN: 100000 * 0.03 * 73 / 365 = 600

	ripte := generic.NewSeries(generic.TableRIPTE, []generic.Point{
		{At: d(2024, time.January, 1), Value: num("1000")},
	})

	u := indexation.ByRIPTE(ripte, num("100000"), d(2024, time.January, 1), d(2024, time.March, 14), num("3"), indexation.Annual)

	assert.Equal(t, 73, u.Days)
	assertDec(t, "100000", u.Updated, "updated")
	assertDec(t, "600", u.Interest, "interest")
	assertDec(t, "100600", u.Total, "total")
}

func TestByRIPTE_AnnualInterest_SameDay_IsZero(t *testing.T) {
	u := indexation.ByRIPTE(generic.NewSeries("ripte", nil), num("100"), d(2024, time.January, 1), d(2024, time.January, 1), num("3"), indexation.Annual)

	assert.True(t, u.Interest.IsZero())
}
