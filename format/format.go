/*
Package format renders amounts the way Argentine court documents write them.

PURPOSE:
  Every figure a calculator reports is shown to a person, usually pasted into
  a ruling or a brief. Thousands are separated with "." and decimals with ",",
  and sums in pesos are also spelled out in words.

EXAMPLES:
  Money(1234567.891)      -> "$ 1.234.567,89"
  Percent(12.3456)        -> "12,35%"
  JUS(1234.5)             -> "1.234,50 JUS"
  Coefficient(1.2345678, 4) -> "1,2346"
  Words(1200.50)          -> "PESOS UN MIL DOSCIENTOS CON 50/100"
  ShortPeriod(2024-01-01) -> "ene.-24"

ROUNDING:
  Values are rounded half away from zero before formatting, the same rule
  generic.Round applies to line items. Formatting never goes through float64.
*/
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// NUMBERS
// =============================================================================

// Number formats d with the given decimal places, "." grouping thousands and
// "," as decimal separator.
func Number(d decimal.Decimal, places int32) string {
	s := d.Round(places).StringFixed(places)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}

	var b strings.Builder
	if neg && strings.Trim(s, "0.") != "" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}

// Money formats pesos: "$ 1.234.567,89".
func Money(d decimal.Decimal) string {
	return "$ " + Number(d, generic.CentPlaces)
}

// Percent formats a percentage with two decimals: "12,34%".
func Percent(d decimal.Decimal) string {
	return Number(d, 2) + "%"
}

// JUS formats an amount of JUS units: "1.234,56 JUS".
func JUS(d decimal.Decimal) string {
	return Number(d, 2) + " JUS"
}

// Amount formats a quantity according to its unit.
func Amount(a generic.Amount) string {
	switch a.Unit {
	case generic.UnitPesos:
		return Money(a.Value)
	case generic.UnitJUS:
		return JUS(a.Value)
	case generic.UnitPercent:
		return Percent(a.Value)
	default:
		return Number(a.Value, 2)
	}
}

// Coefficient formats an adjustment factor with a decimal comma.
func Coefficient(d decimal.Decimal, places int32) string {
	return Number(d, places)
}

// =============================================================================
// DATES
// =============================================================================

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var monthAbbrev = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// MonthName returns the Spanish month name ("Enero").
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// ShortPeriod returns the abbreviated month and two-digit year ("ene.-24").
func ShortPeriod(d generic.Date) string {
	y := d.Year() % 100
	return monthAbbrev[d.Month()-1] + ".-" + twoDigits(y)
}

// Date formats a day as dd/mm/yyyy.
func Date(d generic.Date) string {
	return d.Display()
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
