/*
Package fees converts amounts to JUS and regulates professional fees under
Ley 24.432.

PURPOSE:
  Court fees in the province are expressed in JUS, a unit whose peso value
  is set by the Supreme Court in successive agreements (acuerdos). A fee
  regulated at one date is converted to JUS with the value in force at that
  date and back to pesos with the current value.

  Ley 24.432 caps the fees of first-instance professionals at 25% of the
  case amount. The regulation sheet lists plaintiff counsel and up to four
  experts, adds VAT and social-security contributions, and reports how much
  of the cap is used. Defendant counsel is shown for reference at 70% of
  plaintiff counsel and does not count toward the cap.

LOOKUP:
  Values are looked up with LookupClamped: a date inside an agreement uses
  it, a date before every agreement uses the oldest, any other date uses
  the newest.

SEE ALSO:
  - generic/thresholds.go: LookupClamped
  - regulation.go: Fee regulation sheet
*/
package fees

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/generic"
)

// OpenEnded labels an agreement still in force.
const OpenEnded = "Actualidad"

// Agreement is the JUS value applied to a conversion.
type Agreement struct {
	Value    decimal.Decimal
	Citation string
	From     generic.Date
	To       *generic.Date
}

// Until renders the end of validity, or OpenEnded.
func (a Agreement) Until() string {
	if a.To == nil {
		return OpenEnded
	}
	return a.To.Display()
}

func agreementOf(t generic.Threshold) Agreement {
	return Agreement{Value: t.Value, Citation: t.Citation, From: t.From, To: t.To}
}

// Conversion is an amount expressed in JUS and brought back to pesos at a
// later date.
type Conversion struct {
	Amount   decimal.Decimal
	Date     generic.Date
	AsOf     generic.Date
	At       Agreement // in force at Date
	JUSExact decimal.Decimal
	JUS      decimal.Decimal
	Current  Agreement // in force at AsOf
	Updated  decimal.Decimal
}

// InJUS returns the rounded conversion as an amount of JUS.
func (c *Conversion) InJUS() generic.Amount {
	return generic.JUSUnits(c.JUS)
}

// UpdatedPesos returns the JUS valued at AsOf.
func (c *Conversion) UpdatedPesos() generic.Amount {
	return generic.Pesos(c.Updated)
}

// ConvertToJUS converts amount at date into JUS and values it again at
// asOf. A zero asOf means date.
func ConvertToJUS(jus *generic.ThresholdTable, amount decimal.Decimal, date, asOf generic.Date) (*Conversion, error) {
	if !amount.IsPositive() {
		return nil, generic.Invalid("amount", "must be greater than zero")
	}
	if date.IsZero() {
		return nil, generic.Invalid("date", "is required")
	}
	if asOf.IsZero() {
		asOf = date
	}

	at, ok := jus.LookupClamped(date)
	if !ok || !at.Value.IsPositive() {
		return nil, fmt.Errorf("jus conversion: %w", generic.ErrEmptyTable)
	}
	current, _ := jus.LookupClamped(asOf)

	c := &Conversion{
		Amount:  amount,
		Date:    date,
		AsOf:    asOf,
		At:      agreementOf(at),
		Current: agreementOf(current),
	}
	c.JUSExact = amount.Div(at.Value)
	c.JUS = generic.Round(c.JUSExact)
	c.Updated = generic.Round(c.JUSExact.Mul(current.Value))
	return c, nil
}
