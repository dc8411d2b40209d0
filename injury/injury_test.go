package injury_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/settlement-engine/generic"
	"github.com/warp/settlement-engine/indexation"
	"github.com/warp/settlement-engine/injury"
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

func testTables() *generic.Tables {
	t := generic.EmptyTables()
	t.RIPTE = generic.NewSeries(generic.TableRIPTE, []generic.Point{
		{At: d(2024, time.March, 1), Value: num("1000")},
		{At: d(2024, time.June, 1), Value: num("1200")},
	})
	t.ActiveRate = generic.NewRateTable(generic.TableActiveRate, []generic.RateInterval{
		{From: d(2024, time.March, 1), To: d(2024, time.June, 30), Rate: num("3")},
	})
	t.IPC = generic.NewSeries(generic.TableIPC, []generic.Point{
		{At: d(2024, time.April, 1), Value: num("5")},
		{At: d(2024, time.May, 1), Value: num("5")},
	})
	end := d(2024, time.February, 29)
	t.Floors = generic.NewThresholdTable(generic.TableFloors, []generic.Threshold{
		{From: d(2023, time.September, 1), To: &end, Value: num("20000000"), Citation: "Res. SRT 51/2023"},
		{From: d(2024, time.March, 1), Value: num("30000000"), Citation: "Res. SRT 5/2024"},
	})
	return t
}

func baseInput() injury.Input {
	return injury.Input{
		PMI:        d(2024, time.March, 10),
		Final:      d(2024, time.June, 20),
		IBM:        num("100000"),
		Age:        40,
		Disability: num("10"),
		Additional: true,
	}
}

// =============================================================================
// FORMULA AND FLOOR
// =============================================================================

func TestFormula(t *testing.T) {
	// 100000 * 53 * 65/40 * 10/100 = 861250
	assertDec(t, "861250", injury.Formula(num("100000"), 40, num("10")), "formula")

	// 65/30 is periodic: the division happens last.
	// 150000 * 53 * 65 * 7.5 / 3000 = 1291875
	assertDec(t, "1291875", injury.Formula(num("150000"), 30, num("7.5")), "formula")
}

func TestCalculate_FloorApplies(t *testing.T) {
	// GIVEN: A formula (861.250) below 10% of the 30M floor
	// WHEN: Calculating
	// THEN: The proportional floor replaces the formula, 20% is added

	res, err := injury.Calculate(testTables(), baseInput())
	require.NoError(t, err)

	assertDec(t, "861250", res.Formula, "formula")
	assert.True(t, res.Floor.Found)
	assert.True(t, res.Floor.Applied)
	assertDec(t, "30000000", res.Floor.Amount, "floor")
	assertDec(t, "3000000", res.Floor.Proportional, "proportional")
	assert.Equal(t, "Se aplica piso mínimo Res. SRT 5/2024", res.Floor.Info)

	assertDec(t, "3000000", res.Capital, "capital")
	assertDec(t, "600000", res.Additional, "additional")
	assertDec(t, "3600000", res.Base, "base")
}

func TestCalculate_FormulaExceedsFloor(t *testing.T) {
	in := baseInput()
	in.IBM = num("1000000")
	in.Additional = false

	res, err := injury.Calculate(testTables(), in)
	require.NoError(t, err)

	assert.False(t, res.Floor.Applied)
	assert.Equal(t, "Supera piso mínimo Res. SRT 5/2024", res.Floor.Info)
	assertDec(t, "8612500", res.Capital, "capital")
	assertDec(t, "0", res.Additional, "additional")
	assertDec(t, "8612500", res.Base, "base")
}

func TestCalculate_ClosedFloorInterval(t *testing.T) {
	// GIVEN: PMI inside the closed 2023-09..2024-02 interval
	in := baseInput()
	in.PMI = d(2023, time.December, 1)

	res, err := injury.Calculate(testTables(), in)
	require.NoError(t, err)

	assert.Equal(t, "Res. SRT 51/2023", res.Floor.Citation)
	assertDec(t, "2000000", res.Floor.Proportional, "proportional")
}

func TestCalculate_NoFloorForDate(t *testing.T) {
	// GIVEN: PMI before every floor row
	in := baseInput()
	in.PMI = d(2022, time.January, 10)

	res, err := injury.Calculate(testTables(), in)
	require.NoError(t, err)

	assert.False(t, res.Floor.Found)
	assert.False(t, res.Floor.Applied)
	assert.Equal(t, "No se encontró piso mínimo para la fecha", res.Floor.Info)
	assertDec(t, "861250", res.Capital, "capital")
}

// =============================================================================
// UPDATE
// =============================================================================

func TestCalculate_Updates(t *testing.T) {
	// GIVEN: Base 3.600.000, RIPTE 1000 -> 1200, 102 elapsed days
	// WHEN: Updating to the final date
	// THEN: RIPTE + 3% yearly beats 3% monthly over 103 days

	res, err := injury.Calculate(testTables(), baseInput())
	require.NoError(t, err)

	assertDec(t, "1.2", res.RIPTE.Coefficient, "coefficient")
	assertDec(t, "4320000", res.RIPTE.Updated, "updated")
	assert.Equal(t, 102, res.RIPTE.Days)
	// 4320000 * 0.03 * 102 / 365 = 36216.986...
	assertDec(t, "36216.99", res.RIPTE.Interest, "interest")
	assertDec(t, "4356216.99", res.RIPTE.Total, "ripte total")

	assertDec(t, "10.3", res.ActiveRate.Percent, "tasa percent")
	assertDec(t, "3970800", res.ActiveRate.Total, "tasa total")

	assertDec(t, "10.25", res.InflationPercent, "inflation")

	assert.Equal(t, indexation.MethodRIPTE, res.Favourable)
	assertDec(t, "4356216.99", res.FavourableTotal(), "favourable")
}

func TestCalculate_ActiveRateFavourable(t *testing.T) {
	tables := testTables()
	tables.RIPTE = generic.NewSeries(generic.TableRIPTE, nil)

	res, err := injury.Calculate(tables, baseInput())
	require.NoError(t, err)

	assert.Equal(t, indexation.MethodActiveRate, res.Favourable)
	assertDec(t, "3970800", res.FavourableTotal(), "favourable")
}

func TestCalculate_SameDay(t *testing.T) {
	in := baseInput()
	in.Final = in.PMI

	res, err := injury.Calculate(generic.EmptyTables(), in)
	require.NoError(t, err)

	assertDec(t, "0", res.RIPTE.Interest, "interest")
	assertDec(t, res.Base.String(), res.RIPTE.Total, "total")
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestInput_Validate(t *testing.T) {
	cases := map[string]func(*injury.Input){
		"final before pmi": func(in *injury.Input) { in.Final = d(2024, time.March, 1) },
		"too young":        func(in *injury.Input) { in.Age = 17 },
		"too old":          func(in *injury.Input) { in.Age = 101 },
		"zero disability":  func(in *injury.Input) { in.Disability = decimal.Zero },
		"disability > 100": func(in *injury.Input) { in.Disability = num("100.5") },
		"negative ibm":     func(in *injury.Input) { in.IBM = num("-1") },
		"missing pmi":      func(in *injury.Input) { in.PMI = generic.Date{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := baseInput()
			mutate(&in)

			_, err := injury.Calculate(testTables(), in)

			assert.ErrorIs(t, err, generic.ErrInvalidInput)
		})
	}
}

func TestInput_Validate_Bounds(t *testing.T) {
	in := baseInput()
	in.Age = 18
	in.Disability = num("100")
	in.IBM = decimal.Zero

	assert.NoError(t, in.Validate())
}
