package report

import (
	"fmt"
	"strings"

	"github.com/warp/settlement-engine/format"
	"github.com/warp/settlement-engine/wagebase"
)

// notAvailable stands in for a missing index or variation.
const notAvailable = "N/A"

// WageBase renders the IBM breakdown: one tab-separated row per month with
// a salary, totals, the IBM in figures and words, and the formula.
func WageBase(r *wagebase.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Fecha PMI: %s\n\n", format.Date(r.PMI))
	fmt.Fprintf(&b, "Meses con datos: %d\n\n", r.Count)
	b.WriteString("DETALLE DE SALARIOS ACTUALIZADOS:\n\n")
	b.WriteString("Período\tSalario\tRIPTE\tVariación\tActualizado\tDías\n")
	b.WriteString(rule("-", wideWidth))

	for _, l := range r.Included() {
		index, variation := notAvailable, notAvailable
		if l.HasIndex {
			index = format.Number(l.Index, 2)
		}
		if l.HasVariation {
			variation = format.Number(l.Variation, 3)
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%s\t%d\n",
			format.ShortPeriod(l.Month),
			format.Money(l.Salary),
			index,
			variation,
			format.Money(l.Updated),
			l.Days)
	}

	b.WriteString(rule("-", wideWidth))
	fmt.Fprintf(&b, "TOTALES\t%s\t\t\t%s\t%d\n", format.Money(r.TotalSalary), format.Money(r.TotalUpdated), r.TotalDays)
	b.WriteString(rule("=", wideWidth))
	b.WriteString("\n")

	fmt.Fprintf(&b, "IBM (Actualizado): %s\n", format.Amount(r.IBMAmount()))
	fmt.Fprintf(&b, "(SON %s)\n\n", r.Words)
	fmt.Fprintf(&b, "Fórmula: %s / %d = %s\n", format.Money(r.TotalUpdated), r.Count, format.Money(r.IBM))
	b.WriteString(rule("=", wideWidth))

	return b.String()
}
