package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/fees"
	"github.com/warp/settlement-engine/format"
	"github.com/warp/settlement-engine/indexation"
	"github.com/warp/settlement-engine/injury"
	"github.com/warp/settlement-engine/severance"
)

// =============================================================================
// INJURY
// =============================================================================

// Injury renders the Ley 24.557 indemnity and its update.
func Injury(r *injury.Result) string {
	var b strings.Builder
	in := r.Input

	b.WriteString("INDEMNIZACIÓN LEY 24.557\n")
	fmt.Fprintf(&b, "PMI: %s\tFecha final: %s\n", format.Date(in.PMI), format.Date(in.Final))
	fmt.Fprintf(&b, "IBM: %s\tEdad: %d\tIncapacidad: %s\n", format.Money(in.IBM), in.Age, format.Percent(in.Disability))
	b.WriteString(rule("=", width))

	fmt.Fprintf(&b, "Capital fórmula:\t%s\n", format.Money(r.Formula))
	if r.Floor.Found {
		fmt.Fprintf(&b, "Piso mínimo:\t\t%s\n", format.Money(r.Floor.Amount))
		fmt.Fprintf(&b, "Piso proporcional:\t%s\n", format.Money(r.Floor.Proportional))
	}
	fmt.Fprintf(&b, "%s\n", r.Floor.Info)
	if in.Additional {
		fmt.Fprintf(&b, "Adicional 20%%:\t\t%s\n", format.Money(r.Additional))
	}
	fmt.Fprintf(&b, "Capital base:\t\t%s\n\n", format.Money(r.Base))

	writeClaimUpdate(&b, r.RIPTE, r.ActiveRate, r.InflationPercent)

	label := "RIPTE + 3%"
	if r.Favourable == indexation.MethodActiveRate {
		label = "Tasa Activa"
	}
	fmt.Fprintf(&b, "MÁS FAVORABLE (%s):\t%s\n", label, format.Money(r.FavourableTotal()))
	b.WriteString(rule("=", width))
	return b.String()
}

// =============================================================================
// SEVERANCE
// =============================================================================

// Severance renders the Ley 20.744 dismissal settlement and its update.
func Severance(r *severance.Result) string {
	var b strings.Builder
	in := r.Input

	b.WriteString("LIQUIDACIÓN POR DESPIDO\n")
	fmt.Fprintf(&b, "Ingreso: %s\tDespido: %s\tLiquidación: %s\n",
		format.Date(in.Hire), format.Date(in.Dismissal), format.Date(in.Settlement))
	fmt.Fprintf(&b, "Salario: %s\tAntigüedad: %d años y %d meses\n", format.Money(in.Salary), r.Years, r.Months)
	b.WriteString(rule("=", width))

	for _, it := range r.Items() {
		fmt.Fprintf(&b, "%s:\t%s\n", it.Concept, format.Money(it.Amount))
	}
	b.WriteString(rule("-", width))
	fmt.Fprintf(&b, "TOTAL:\t\t%s\n", format.Money(r.Total))
	fmt.Fprintf(&b, "(SON %s)\n\n", format.Words(r.Total))

	writeClaimUpdate(&b, r.RIPTE, r.ActiveRate, r.InflationPercent)
	b.WriteString(rule("=", width))
	return b.String()
}

func writeClaimUpdate(b *strings.Builder, ripte indexation.RIPTEUpdate, rate indexation.RateUpdate, inflation decimal.Decimal) {
	b.WriteString("ACTUALIZACIÓN\n")
	b.WriteString(rule("-", width))
	fmt.Fprintf(b, "Coeficiente RIPTE:\t%s\n", format.Coefficient(ripte.Coefficient, 6))
	fmt.Fprintf(b, "Monto Actualizado RIPTE:\t%s\n", format.Money(ripte.Updated))
	fmt.Fprintf(b, "Interés puro 3%% (%d días):\t%s\n", ripte.Days, format.Money(ripte.Interest))
	fmt.Fprintf(b, "TOTAL RIPTE + 3%%:\t%s\n", format.Money(ripte.Total))
	fmt.Fprintf(b, "Tasa Activa Acumulada:\t%s\n", format.Percent(rate.Percent))
	fmt.Fprintf(b, "TOTAL TASA ACTIVA:\t%s\n", format.Money(rate.Total))
	fmt.Fprintf(b, "Inflación Acumulada:\t%s\n", format.Percent(inflation))
}

// =============================================================================
// FEES
// =============================================================================

// JUSConversion renders a peso to JUS conversion.
func JUSConversion(c *fees.Conversion) string {
	var b strings.Builder
	b.WriteString("CONVERSIÓN A JUS\n")
	b.WriteString(rule("=", width))
	fmt.Fprintf(&b, "Monto:\t\t%s al %s\n", format.Money(c.Amount), format.Date(c.Date))
	fmt.Fprintf(&b, "Valor JUS:\t%s (%s, %s a %s)\n",
		format.Money(c.At.Value), c.At.Citation, format.Date(c.At.From), c.At.Until())
	fmt.Fprintf(&b, "Equivale a:\t%s\n", format.Amount(c.InJUS()))
	fmt.Fprintf(&b, "Valor actual:\t%s al %s (%s)\n", format.Money(c.Current.Value), format.Date(c.AsOf), c.Current.Citation)
	fmt.Fprintf(&b, "Monto actual:\t%s\n", format.Amount(c.UpdatedPesos()))
	b.WriteString(rule("=", width))
	return b.String()
}

// Regulation renders the Ley 24.432 fee sheet.
func Regulation(r *fees.Regulation) string {
	var b strings.Builder
	b.WriteString("REGULACIÓN DE HONORARIOS LEY 24.432\n")
	fmt.Fprintf(&b, "Monto del juicio: %s\tFecha: %s\tJUS: %s (%s)\n",
		format.Money(r.Input.Amount), format.Date(r.Input.Date), format.Money(r.Agreement.Value), r.Agreement.Citation)
	b.WriteString(rule("=", wideWidth))
	b.WriteString("Concepto\t%\tHonorarios\tJUS\tIVA\tAportes\tTotal\n")
	b.WriteString(rule("-", wideWidth))
	for _, rw := range r.Rows {
		writeFeeRow(&b, rw)
	}
	b.WriteString(rule("-", wideWidth))
	writeFeeRow(&b, r.Defendant)
	b.WriteString(rule("=", wideWidth))

	fmt.Fprintf(&b, "Usado:\t\t%s (%s) [%s]\n", format.Money(r.Used), format.Percent(r.UsedPercent), r.Status)
	fmt.Fprintf(&b, "Límite 25%%:\t%s | %s\n", format.Money(r.Cap), format.JUS(r.CapJUS))
	fmt.Fprintf(&b, "Disponible:\t%s\n", format.Money(r.Available))
	if r.HasMinimumFee {
		fmt.Fprintf(&b, "Honorario mínimo de referencia:\t%s (%s)\n", format.Money(r.MinimumFee), format.ShortPeriod(r.MinimumFeePeriod))
	}
	return b.String()
}

func writeFeeRow(b *strings.Builder, rw fees.Row) {
	label := "Rep. Letrada Actora"
	switch rw.Role {
	case fees.RoleExpert:
		label = fmt.Sprintf("Auxiliar %d", rw.Number)
	case fees.RoleDefendant:
		label = "Rep. Letrada Demandada"
	}
	fmt.Fprintf(b, "%s\t%s\t%s\t%s\t%s\t%s (%d%%)\t%s\n",
		label,
		format.Percent(rw.Percent),
		format.Money(rw.Pesos),
		format.Number(rw.JUS, 2),
		format.Money(rw.VAT),
		format.Money(rw.Contributions),
		rw.Contribution,
		format.Money(rw.Total))
}
