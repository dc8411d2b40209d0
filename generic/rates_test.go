package generic_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/settlement-engine/generic"
)

func january2024(rate string) *generic.RateTable {
	return generic.NewRateTable("tasa", []generic.RateInterval{
		{From: date(2024, time.January, 1), To: date(2024, time.January, 31), Rate: dec(rate)},
	})
}

// =============================================================================
// INTERVAL-OVERLAP ACCUMULATION
// =============================================================================

func TestRateTable_SingleRow_ProratesByThirtyDayMonth(t *testing.T) {
	// GIVEN: {rate=3.982, 2024-01-01..2024-01-31}
	// WHEN: Accumulating over N days fully inside January
	// THEN: 3.982 * N / 30

	table := january2024("3.982")

	for _, n := range []int{1, 10, 15, 30, 31} {
		p := generic.NewPeriod(date(2024, time.January, 1), date(2024, time.January, n))
		want := dec("3.982").Mul(decimal.NewFromInt(int64(n))).Div(decimal.NewFromInt(30))

		got := table.Accumulate(p)

		assert.True(t, want.Equal(got), "N=%d: want %s, got %s", n, want, got)
	}
}

func TestRateTable_FifteenDays_IsHalfTheMonthlyRate(t *testing.T) {
	table := january2024("3.982")

	got := table.Accumulate(generic.NewPeriod(date(2024, time.January, 10), date(2024, time.January, 24)))

	assertDecimal(t, "1.991", got)
}

func TestRateTable_QuerySpanningIntervals_SumsEachOverlap(t *testing.T) {
	// GIVEN: Disjoint Jan (3%) and Feb (6%) intervals
	// WHEN: Querying Jan 22 .. Feb 5
	// THEN: 3*10/30 + 6*5/30 = 1 + 1 = 2

	table := generic.NewRateTable("tasa", []generic.RateInterval{
		{From: date(2024, time.February, 1), To: date(2024, time.February, 29), Rate: dec("6")},
		{From: date(2024, time.January, 1), To: date(2024, time.January, 31), Rate: dec("3")},
	})

	p := generic.NewPeriod(date(2024, time.January, 22), date(2024, time.February, 5))
	contribs := table.Contributions(p)

	require.Len(t, contribs, 2)
	assert.Equal(t, 10, contribs[0].Days)
	assert.Equal(t, 5, contribs[1].Days)
	assertDecimal(t, "2", table.Accumulate(p))
}

func TestRateTable_NoOverlap_ContributesNothing(t *testing.T) {
	table := january2024("3.982")

	got := table.Accumulate(generic.NewPeriod(date(2024, time.March, 1), date(2024, time.March, 31)))

	assert.True(t, got.IsZero())
	assert.Empty(t, table.Contributions(generic.NewPeriod(date(2024, time.March, 1), date(2024, time.March, 31))))
}

func TestRateTable_OverlappingIntervals_DoubleCount(t *testing.T) {
	// GIVEN: Two intervals that both cover Jan 1..10
	// WHEN: Accumulating over those ten days
	// THEN: Each contributes for its own overlap; nothing is merged

	table := generic.NewRateTable("tasa", []generic.RateInterval{
		{From: date(2024, time.January, 1), To: date(2024, time.January, 31), Rate: dec("3")},
		{From: date(2024, time.January, 1), To: date(2024, time.January, 10), Rate: dec("3")},
	})

	got := table.Accumulate(generic.NewPeriod(date(2024, time.January, 1), date(2024, time.January, 10)))

	assertDecimal(t, "2", got)
}

func TestRateTable_DisjointIntervals_EachDayCountedOnce(t *testing.T) {
	// GIVEN: Consecutive monthly intervals at 3% each
	// WHEN: Accumulating over the whole of Q1 2024 (91 days)
	// THEN: 3 * 91 / 30, each day counted in exactly one interval

	table := generic.NewRateTable("tasa", []generic.RateInterval{
		{From: date(2024, time.January, 1), To: date(2024, time.January, 31), Rate: dec("3")},
		{From: date(2024, time.February, 1), To: date(2024, time.February, 29), Rate: dec("3")},
		{From: date(2024, time.March, 1), To: date(2024, time.March, 31), Rate: dec("3")},
	})

	p := generic.NewPeriod(date(2024, time.January, 1), date(2024, time.March, 31))
	total := 0
	for _, c := range table.Contributions(p) {
		total += c.Days
	}

	assert.Equal(t, p.Days(), total)
	assertDecimal(t, "9.1", table.Accumulate(p))
}

func TestRateTable_Empty(t *testing.T) {
	var table *generic.RateTable

	assert.True(t, table.Accumulate(generic.NewPeriod(date(2024, time.January, 1), date(2024, time.January, 31))).IsZero())
	_, ok := table.Latest()
	assert.False(t, ok)
}
