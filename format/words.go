package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// AMOUNT IN WORDS - "(SON PESOS ... CON NN/100)"
// =============================================================================

var (
	units    = [...]string{"", "UN", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE"}
	teens    = [...]string{"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE", "DIECISÉIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE"}
	tens     = [...]string{"", "", "VEINTE", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA"}
	twenties = [...]string{"", "VEINTIUN", "VEINTIDÓS", "VEINTITRÉS", "VEINTICUATRO", "VEINTICINCO", "VEINTISÉIS", "VEINTISIETE", "VEINTIOCHO", "VEINTINUEVE"}
	hundreds = [...]string{"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS", "QUINIENTOS", "SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS"}
)

const (
	thousand = 1_000
	million  = 1_000_000
	milMill  = 1_000_000_000 // "mil millones"
)

// Words spells out a peso amount: "PESOS UN MIL DOSCIENTOS CON 50/100".
// Zero is "CERO PESOS". Negative amounts are spelled by absolute value.
func Words(d decimal.Decimal) string {
	rounded := generic.Round(d).Abs()
	if rounded.IsZero() {
		return "CERO PESOS"
	}
	whole := rounded.IntPart()
	cents := rounded.Sub(decimal.NewFromInt(whole)).Mul(generic.Hundred).IntPart()

	text := integerWords(whole)
	if whole == 0 {
		text = "CERO"
	}
	return fmt.Sprintf("PESOS %s CON %02d/100", text, cents)
}

func integerWords(n int64) string {
	var parts []string

	if n >= milMill {
		b := n / milMill
		n %= milMill
		if n < million {
			parts = append(parts, integerWords(b)+" MIL MILLONES")
		} else {
			parts = append(parts, integerWords(b)+" MIL", millions(n/million))
			n %= million
		}
	}
	if n >= million {
		parts = append(parts, millions(n/million))
		n %= million
	}
	if n >= thousand {
		parts = append(parts, group(int(n/thousand))+" MIL")
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, group(int(n)))
	}
	return strings.Join(parts, " ")
}

// millions spells 1..999 millions, singular for one.
func millions(m int64) string {
	if m == 1 {
		return "UN MILLÓN"
	}
	return group(int(m)) + " MILLONES"
}

// group spells 1..999.
func group(n int) string {
	switch {
	case n == 0:
		return ""
	case n == 100:
		return "CIEN"
	case n < 10:
		return units[n]
	case n < 20:
		return teens[n-10]
	case n < 30:
		if n == 20 {
			return tens[2]
		}
		return twenties[n-20]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " Y " + units[n%10]
	}
	rest := n % 100
	if rest == 0 {
		return hundreds[n/100]
	}
	return hundreds[n/100] + " " + group(rest)
}
