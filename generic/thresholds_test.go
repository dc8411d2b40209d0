package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/settlement-engine/generic"
)

func floorsTable() *generic.ThresholdTable {
	feb29 := date(2024, time.February, 29)
	aug31 := date(2023, time.August, 31)
	return generic.NewThresholdTable("pisos", []generic.Threshold{
		{From: date(2024, time.March, 1), Value: dec("30000000"), Citation: "Res. 5/2024"},
		{From: date(2023, time.September, 1), To: &feb29, Value: dec("20000000"), Citation: "Res. 51/2023"},
		{From: date(2023, time.March, 1), To: &aug31, Value: dec("15000000"), Citation: "Res. 14/2023"},
	})
}

func TestThresholdTable_Lookup_ContainingInterval(t *testing.T) {
	table := floorsTable()

	got, ok := table.Lookup(date(2023, time.December, 15))

	require.True(t, ok)
	assert.Equal(t, "Res. 51/2023", got.Citation)
	assertDecimal(t, "20000000", got.Value)
}

func TestThresholdTable_Lookup_BoundariesAreInclusive(t *testing.T) {
	table := floorsTable()

	start, ok := table.Lookup(date(2023, time.September, 1))
	require.True(t, ok)
	assert.Equal(t, "Res. 51/2023", start.Citation)

	end, ok := table.Lookup(date(2024, time.February, 29))
	require.True(t, ok)
	assert.Equal(t, "Res. 51/2023", end.Citation)
}

func TestThresholdTable_Lookup_FallsBackToOpenEnded(t *testing.T) {
	// GIVEN: The newest row has no end date
	// WHEN: Querying after it starts
	// THEN: The open-ended row applies

	table := floorsTable()

	got, ok := table.Lookup(date(2026, time.January, 1))

	require.True(t, ok)
	assert.True(t, got.IsOpen())
	assert.Equal(t, "Res. 5/2024", got.Citation)
}

func TestThresholdTable_Lookup_BeforeAllRows_NotFound(t *testing.T) {
	table := floorsTable()

	_, ok := table.Lookup(date(2020, time.January, 1))

	assert.False(t, ok)
}

func TestThresholdTable_LookupClamped(t *testing.T) {
	// GIVEN: Only closed intervals, with a gap in 2023
	aug31 := date(2023, time.August, 31)
	dec31 := date(2023, time.December, 31)
	table := generic.NewThresholdTable("jus", []generic.Threshold{
		{From: date(2023, time.June, 1), To: &aug31, Value: dec("100")},
		{From: date(2023, time.October, 1), To: &dec31, Value: dec("200")},
	})

	early, ok := table.LookupClamped(date(2020, time.January, 1))
	require.True(t, ok)
	assertDecimal(t, "100", early.Value)

	late, ok := table.LookupClamped(date(2025, time.January, 1))
	require.True(t, ok)
	assertDecimal(t, "200", late.Value)

	gap, ok := table.LookupClamped(date(2023, time.September, 15))
	require.True(t, ok)
	assertDecimal(t, "200", gap.Value) // a gap clamps to the latest row

	_, ok = generic.NewThresholdTable("jus", nil).LookupClamped(date(2024, time.January, 1))
	assert.False(t, ok)
}
