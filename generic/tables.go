package generic

import "github.com/shopspring/decimal"

// =============================================================================
// TABLES - The reference data every calculator reads
// =============================================================================

// Table names, shared by the CSV adapter, the SQLite store and the API.
const (
	TableRIPTE       = "ripte"
	TableRIPTEAmount = "ripte_monto"
	TableIPC         = "ipc"
	TableActiveRate  = "tasa"
	TableFloors      = "pisos"
	TableJUS         = "jus"
)

// Tables bundles the reference tables. Any table may be empty; calculators
// degrade to neutral values rather than fail.
type Tables struct {
	RIPTE       *Series         // RIPTE wage index, monthly
	RIPTEAmount *Series         // RIPTE average wage in pesos, monthly
	IPC         *Series         // consumer price index, monthly % change
	ActiveRate  *RateTable      // Tasa Activa BNA, monthly % per interval
	Floors      *ThresholdTable // Ley 24.557 minimum indemnity amounts
	JUS         *ThresholdTable // JUS unit value for professional fees
}

// EmptyTables returns a bundle with every table present and empty.
func EmptyTables() *Tables {
	return &Tables{
		RIPTE:       NewSeries(TableRIPTE, nil),
		RIPTEAmount: NewSeries(TableRIPTEAmount, nil),
		IPC:         NewSeries(TableIPC, nil),
		ActiveRate:  NewRateTable(TableActiveRate, nil),
		Floors:      NewThresholdTable(TableFloors, nil),
		JUS:         NewThresholdTable(TableJUS, nil),
	}
}

// Normalize replaces nil tables with empty ones.
func (t *Tables) Normalize() *Tables {
	if t == nil {
		return EmptyTables()
	}
	if t.RIPTE == nil {
		t.RIPTE = NewSeries(TableRIPTE, nil)
	}
	if t.RIPTEAmount == nil {
		t.RIPTEAmount = NewSeries(TableRIPTEAmount, nil)
	}
	if t.IPC == nil {
		t.IPC = NewSeries(TableIPC, nil)
	}
	if t.ActiveRate == nil {
		t.ActiveRate = NewRateTable(TableActiveRate, nil)
	}
	if t.Floors == nil {
		t.Floors = NewThresholdTable(TableFloors, nil)
	}
	if t.JUS == nil {
		t.JUS = NewThresholdTable(TableJUS, nil)
	}
	return t
}

// =============================================================================
// SUMMARY - Latest available value of each table
// =============================================================================

// LatestValue describes the newest row of one table.
type LatestValue struct {
	Table    string
	At       Date  // period or validity start
	Until    *Date // validity end, for interval tables
	Value    decimal.Decimal
	Citation string
}

// Summary returns the latest row of every non-empty table, in a fixed order.
func (t *Tables) Summary() []LatestValue {
	t = t.Normalize()
	var out []LatestValue
	if p, ok := t.RIPTE.Latest(); ok {
		out = append(out, LatestValue{Table: TableRIPTE, At: p.At, Value: p.Value})
	}
	if p, ok := t.IPC.Latest(); ok {
		out = append(out, LatestValue{Table: TableIPC, At: p.At, Value: p.Value})
	}
	if r, ok := t.ActiveRate.Latest(); ok {
		until := r.To
		out = append(out, LatestValue{Table: TableActiveRate, At: r.From, Until: &until, Value: r.Rate})
	}
	if j, ok := t.JUS.Latest(); ok {
		out = append(out, LatestValue{Table: TableJUS, At: j.From, Until: j.To, Value: j.Value, Citation: j.Citation})
	}
	if f, ok := t.Floors.Latest(); ok {
		out = append(out, LatestValue{Table: TableFloors, At: f.From, Until: f.To, Value: f.Value, Citation: f.Citation})
	}
	return out
}
