/*
Package report renders calculation results as plain text.

PURPOSE:
  Lawyers paste the breakdowns into court filings. The text uses tabs
  between label and value so it lands in columns when pasted into a word
  processor, and Argentine number formatting throughout.

LAYOUT:
  Every report opens with a title block, separates sections with a rule
  of dashes and closes with a rule of equals signs.

SEE ALSO:
  - format/format.go: Number, money and date formatting
  - format/words.go: Amount in words
*/
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/format"
	"github.com/warp/settlement-engine/indexation"
)

const (
	width     = 60
	wideWidth = 70
)

func rule(ch string, n int) string {
	return strings.Repeat(ch, n) + "\n"
}

// rateLabel prints a pure rate as entered: 3 -> "3", 2.5 -> "2,5".
func rateLabel(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

// =============================================================================
// INDEXATION
// =============================================================================

// Indexation renders the update breakdown by the three methods.
func Indexation(r *indexation.Result) string {
	var b strings.Builder
	in := r.Input

	b.WriteString("DESGLOSE DE ACTUALIZACIÓN\n")
	fmt.Fprintf(&b, "Período: %s al %s\n", format.Date(in.From), format.Date(in.To))
	fmt.Fprintf(&b, "Monto Original: %s\n", format.Money(in.Amount))
	b.WriteString(rule("=", width))
	b.WriteString("\n")

	ripteRate := rateLabel(r.RIPTE.InterestRate)
	fmt.Fprintf(&b, "RIPTE + %s%% ANUAL\n", ripteRate)
	b.WriteString(rule("-", width))
	fmt.Fprintf(&b, "Monto Base:\t\t%s\n", format.Money(in.Amount))
	fmt.Fprintf(&b, "Coeficiente RIPTE:\t%s\n", format.Coefficient(r.RIPTE.Coefficient, 6))
	fmt.Fprintf(&b, "Monto Actualizado RIPTE:\t%s\n", format.Money(r.RIPTE.Updated))
	fmt.Fprintf(&b, "Tasa Pura %s%%:\t\t%s\n", ripteRate, format.Money(r.RIPTE.Interest))
	fmt.Fprintf(&b, "TOTAL RIPTE:\t\t%s\n\n", format.Money(r.RIPTE.Total))

	b.WriteString("TASA ACTIVA BNA\n")
	b.WriteString(rule("-", width))
	fmt.Fprintf(&b, "Monto Base:\t\t%s\n", format.Money(in.Amount))
	fmt.Fprintf(&b, "Tasa Acumulada:\t\t%s\n", format.Percent(r.ActiveRate.Percent))
	fmt.Fprintf(&b, "Intereses:\t\t%s\n", format.Money(r.ActiveRate.Interest))
	fmt.Fprintf(&b, "TOTAL TASA:\t\t%s\n\n", format.Money(r.ActiveRate.Total))

	ipcRate := rateLabel(r.IPC.InterestRate)
	fmt.Fprintf(&b, "IPC + %s%% ANUAL\n", ipcRate)
	b.WriteString(rule("-", width))
	fmt.Fprintf(&b, "Monto Base:\t\t%s\n", format.Money(in.Amount))
	fmt.Fprintf(&b, "Inflación Acumulada:\t%s\n", format.Percent(r.IPC.Percent))
	fmt.Fprintf(&b, "Monto Actualizado IPC:\t%s\n", format.Money(r.IPC.Updated))
	fmt.Fprintf(&b, "Tasa Pura %s%%:\t\t%s\n", ipcRate, format.Money(r.IPC.Interest))
	fmt.Fprintf(&b, "TOTAL IPC:\t\t%s\n", format.Money(r.IPC.Total))
	b.WriteString(rule("=", width))

	return b.String()
}
