package indexation

import (
	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// UPDATE CALCULATOR
// =============================================================================

// MaxPureRate bounds the pure interest rates accepted by Calculate, percent.
var MaxPureRate = decimal.NewFromInt(6)

// Method names a way of updating an amount.
type Method string

const (
	MethodRIPTE      Method = "ripte"
	MethodActiveRate Method = "tasa_activa"
	MethodIPC        Method = "ipc"
)

// Input is one update request.
type Input struct {
	Amount    decimal.Decimal
	From      generic.Date
	To        generic.Date
	RIPTERate decimal.Decimal // pure rate on top of RIPTE, percent
	IPCRate   decimal.Decimal // pure rate on top of IPC, percent
}

// Validate checks the input domain: a positive amount, From strictly
// before To, pure rates within [0, MaxPureRate].
func (in Input) Validate() error {
	if !in.Amount.IsPositive() {
		return generic.Invalid("amount", "must be greater than zero")
	}
	if in.From.IsZero() || in.To.IsZero() {
		return generic.Invalid("dates", "from and to are required")
	}
	if !in.From.Before(in.To) {
		return generic.Invalid("dates", "from (%s) must be before to (%s)", in.From, in.To)
	}
	if err := checkRate("ripteRate", in.RIPTERate); err != nil {
		return err
	}
	return checkRate("ipcRate", in.IPCRate)
}

func checkRate(field string, r decimal.Decimal) error {
	if r.IsNegative() || r.GreaterThan(MaxPureRate) {
		return generic.Invalid(field, "must be between 0 and %s", MaxPureRate)
	}
	return nil
}

// Result holds the amount updated by each method.
type Result struct {
	Input      Input
	RIPTE      RIPTEUpdate
	ActiveRate RateUpdate
	IPC        IPCUpdate
}

// Calculate updates the amount by RIPTE, Tasa Activa and IPC.
func Calculate(tables *generic.Tables, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	tables = tables.Normalize()

	return &Result{
		Input:      in,
		RIPTE:      ByRIPTE(tables.RIPTE, in.Amount, in.From, in.To, in.RIPTERate, Flat),
		ActiveRate: ByActiveRate(tables.ActiveRate, in.Amount, in.From, in.To),
		IPC:        ByIPC(tables.IPC, in.Amount, in.From, in.To, in.IPCRate),
	}, nil
}

// Highest returns the method yielding the largest total. Ties favour RIPTE,
// then Tasa Activa.
func (r *Result) Highest() (Method, decimal.Decimal) {
	best, total := MethodRIPTE, r.RIPTE.Total
	if r.ActiveRate.Total.GreaterThan(total) {
		best, total = MethodActiveRate, r.ActiveRate.Total
	}
	if r.IPC.Total.GreaterThan(total) {
		best, total = MethodIPC, r.IPC.Total
	}
	return best, total
}
