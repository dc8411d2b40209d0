package generic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// ROUNDING
// =============================================================================

func TestRound_HalfUp(t *testing.T) {
	cases := map[string]string{
		"10.125":  "10.13",
		"10.124":  "10.12",
		"0.005":   "0.01",
		"2.675":   "2.68",
		"-10.125": "-10.13",
		"100":     "100.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, generic.Round(dec(in)).StringFixed(2), "Round(%s)", in)
	}
}

func TestSumRounded_RoundsEachItem(t *testing.T) {
	// 0.005 + 0.005 rounds per line to 0.01 + 0.01, not Round(0.01)
	got := generic.SumRounded(dec("0.005"), dec("0.005"))

	assertDecimal(t, "0.02", got)
}

func TestAmount_Arithmetic(t *testing.T) {
	a := generic.Pesos(dec("100.10"))
	b := generic.Pesos(dec("0.015"))

	sum := a.Add(b).Round()

	assert.Equal(t, generic.UnitPesos, sum.Unit)
	assertDecimal(t, "100.12", sum.Value)
	assert.True(t, sum.GreaterThan(a))
	assert.True(t, a.Sub(a).IsZero())
}

// =============================================================================
// DATES
// =============================================================================

func TestParseDate_Layouts(t *testing.T) {
	cases := map[string]generic.Date{
		"2024-01-15":          date(2024, time.January, 15),
		"15/01/2024":          date(2024, time.January, 15),
		"15-01-2024":          date(2024, time.January, 15),
		"2024/01/15":          date(2024, time.January, 15),
		"2024-01-15 10:30:00": date(2024, time.January, 15),
		"01/2024":             date(2024, time.January, 1),
		"2024-03":             date(2024, time.March, 1),
		"Enero 2024":          date(2024, time.January, 1),
		"Sep 2023":            date(2023, time.September, 1),
		" 29/02/2024 ":        date(2024, time.February, 29),
	}
	for in, want := range cases {
		got, err := generic.ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%q: want %s, got %s", in, want, got)
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, in := range []string{"", "xx/01/2022", "31/02/2024", "not a date"} {
		_, err := generic.ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestParseMonth(t *testing.T) {
	cases := map[string]time.Month{
		"Enero":      time.January,
		"septiembre": time.September,
		"Setiembre":  time.September,
		"AGO":        time.August,
		"dic.":       time.December,
		"Jan":        time.January,
		"7":          time.July,
	}
	for in, want := range cases {
		got, ok := generic.ParseMonth(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := generic.ParseMonth("13")
	assert.False(t, ok)
	_, ok = generic.ParseMonth("Trece")
	assert.False(t, ok)
}

func TestDate_MonthHelpers(t *testing.T) {
	d := date(2024, time.February, 17)

	assert.True(t, d.FirstOfMonth().Equal(date(2024, time.February, 1)))
	assert.True(t, d.LastOfMonth().Equal(date(2024, time.February, 29)))
	assert.Equal(t, 29, d.DaysInMonth())
	assert.Equal(t, "2024-02-17", d.String())
	assert.Equal(t, "17/02/2024", d.Display())
}

// =============================================================================
// PERIODS
// =============================================================================

func TestPeriod_Days_Inclusive(t *testing.T) {
	p := generic.NewPeriod(date(2024, time.January, 1), date(2024, time.January, 31))
	assert.Equal(t, 31, p.Days())

	single := generic.NewPeriod(date(2024, time.January, 1), date(2024, time.January, 1))
	assert.Equal(t, 1, single.Days())

	inverted := generic.NewPeriod(date(2024, time.January, 10), date(2024, time.January, 1))
	assert.Equal(t, 0, inverted.Days())
}

func TestPeriod_Overlap(t *testing.T) {
	a := generic.NewPeriod(date(2024, time.January, 10), date(2024, time.February, 10))
	b := generic.NewPeriod(date(2024, time.February, 1), date(2024, time.February, 29))

	o, ok := a.Overlap(b)
	require.True(t, ok)
	assert.Equal(t, 10, o.Days())

	_, ok = a.Overlap(generic.NewPeriod(date(2024, time.March, 1), date(2024, time.March, 2)))
	assert.False(t, ok)
}

func TestPeriod_Validate(t *testing.T) {
	ok := generic.NewPeriod(date(2024, time.January, 1), date(2024, time.January, 1))
	assert.NoError(t, ok.Validate())

	bad := generic.NewPeriod(date(2024, time.January, 2), date(2024, time.January, 1))
	err := bad.Validate()
	assert.True(t, errors.Is(err, generic.ErrInvalidPeriod))
	assert.True(t, generic.IsClientError(err))
}

func TestValidationError_UnwrapsToInvalidInput(t *testing.T) {
	err := generic.Invalid("age", "must be between %d and %d", 18, 100)

	assert.ErrorIs(t, err, generic.ErrInvalidInput)
	assert.EqualError(t, err, "invalid age: must be between 18 and 100")

	var ve *generic.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "age", ve.Field)
}
