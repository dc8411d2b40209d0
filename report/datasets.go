package report

import (
	"fmt"
	"strings"

	"github.com/warp/settlement-engine/format"
	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// DATASETS
// =============================================================================

var tableLabels = map[string]string{
	generic.TableRIPTE:      "RIPTE",
	generic.TableIPC:        "IPC",
	generic.TableActiveRate: "Tasa Activa",
	generic.TableJUS:        "JUS",
	generic.TableFloors:     "Piso LRT",
}

// Summary renders the latest value of each reference table.
func Summary(latest []generic.LatestValue) string {
	var b strings.Builder
	b.WriteString("ÚLTIMOS DATOS DISPONIBLES\n")
	b.WriteString(rule("=", width))
	if len(latest) == 0 {
		b.WriteString("Sin datos cargados\n")
		return b.String()
	}

	for _, v := range latest {
		label := tableLabels[v.Table]
		switch v.Table {
		case generic.TableRIPTE:
			fmt.Fprintf(&b, "%s:\t\t%s (%s)\n", label, format.Number(v.Value, 2), format.ShortPeriod(v.At))
		case generic.TableIPC:
			fmt.Fprintf(&b, "%s:\t\t%s (%s)\n", label, format.Percent(v.Value), format.ShortPeriod(v.At))
		case generic.TableActiveRate:
			fmt.Fprintf(&b, "%s:\t%s mensual (%s al %s)\n", label, format.Percent(v.Value), format.Date(v.At), format.Date(*v.Until))
		default:
			fmt.Fprintf(&b, "%s:\t%s (%s, desde %s)\n", label, format.Money(v.Value), v.Citation, format.Date(v.At))
		}
	}
	return b.String()
}
