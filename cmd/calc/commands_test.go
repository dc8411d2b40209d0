package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/settlement-engine/generic"
)

const testData = "../../dataset/testdata"

func runCalc(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data", testData, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestDatasets(t *testing.T) {
	// GIVEN: The sample CSV files
	// WHEN: Listing the latest values
	out, err := runCalc(t, "datasets")

	// THEN: Every table is summarised
	require.NoError(t, err)
	assert.Contains(t, out, "ÚLTIMOS DATOS DISPONIBLES")
	assert.Contains(t, out, "RIPTE:")
	assert.Contains(t, out, "Tasa Activa:")
	assert.Contains(t, out, "Acuerdo 3100")
}

func TestJUS(t *testing.T) {
	// GIVEN: JUS worth $ 40.000 from March 2024
	// WHEN: Converting $ 100.000 in April 2024
	out, err := runCalc(t, "jus", "--amount", "100000", "--date", "2024-04-01")

	// THEN: It is worth 2,50 JUS
	require.NoError(t, err)
	assert.Contains(t, out, "CONVERSIÓN A JUS")
	assert.Contains(t, out, "2,50 JUS")
	assert.Contains(t, out, "$ 100.000,00")
}

func TestInjury_MissingFlag(t *testing.T) {
	_, err := runCalc(t, "injury", "--pmi", "2024-03-10", "--ibm", "850000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestWageBase_BadSalary(t *testing.T) {
	_, err := runCalc(t, "wage-base", "--pmi", "2024-03-15", "--salary", "2024-01")

	var verr *generic.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "salary", verr.Field)
}

func TestImport(t *testing.T) {
	// GIVEN: An empty database file
	db := filepath.Join(t.TempDir(), "settlement.db")

	// WHEN: Importing the CSV files
	out, err := runCalc(t, "--db", db, "import")

	// THEN: Each table is reported
	require.NoError(t, err)
	assert.Contains(t, out, "Importado en "+db)
	assert.Contains(t, out, "ripte:")
	assert.Contains(t, out, "jus:")

	// AND: The calculators read from it
	out, err = runCalc(t, "--db", db, "jus", "--amount", "100000", "--date", "2024-04-01")
	require.NoError(t, err)
	assert.Contains(t, out, "2,50 JUS")
}

func TestImport_RequiresDatabase(t *testing.T) {
	_, err := runCalc(t, "import")

	assert.ErrorContains(t, err, "no database configured")
}

func TestParseSalary(t *testing.T) {
	s, err := parseSalary("2024-01=100.000,50")

	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", s.Month.String())
	assert.True(t, s.Amount.Equal(decimal.RequireFromString("100000.50")))
}

func TestParseExpert(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		percent      string
		vat          bool
		contribution int
		wantErr      bool
	}{
		{name: "percent only", in: "5", percent: "5"},
		{name: "with vat", in: "7.5:vat", percent: "7.5", vat: true},
		{name: "vat and low contribution", in: "3:iva:5", percent: "3", vat: true, contribution: 5},
		{name: "unknown option", in: "3:foo", wantErr: true},
		{name: "bad percent", in: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := parseExpert(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, fee.Percent.Equal(decimal.RequireFromString(tt.percent)))
			assert.Equal(t, tt.vat, fee.VAT)
			assert.Equal(t, tt.contribution, fee.Contribution)
		})
	}
}
