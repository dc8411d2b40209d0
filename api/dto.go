/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:

	Defines the JSON structures for API communication. These types decouple
	the calculators' result structs from the external API contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Calculator results returned to clients
  - *DTO: Nested response parts

NUMBERS AND DATES:

	Decimals are accepted as JSON strings or numbers and returned as strings
	("1234.56") to keep cents exact. Money fields also carry the Argentine
	rendering ("$ 1.234,56"). Dates are YYYY-MM-DD; salary months YYYY-MM.

VALIDATION:

	Request types carry go-playground/validator tags. Two custom rules are
	registered: isodate (YYYY-MM-DD) and yearmonth (YYYY-MM). Decimal fields
	are validated through a custom type function so gt/lte bounds apply.
	Calculators validate again; tags give early, field-named 400s.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/format"
	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// VALIDATION
// =============================================================================

// validate is shared by every handler.
var validate = mustValidator()

// newValidator registers the custom rules the request DTOs use.
func newValidator() (*validator.Validate, error) {
	v := validator.New()
	rules := map[string]validator.Func{
		"isodate":   validateISODate,
		"yearmonth": validateYearMonth,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterTagNameFunc(jsonName)
	return v, nil
}

func mustValidator() *validator.Validate {
	v, err := newValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// jsonName reports fields by their JSON name in validation errors.
func jsonName(f reflect.StructField) string {
	return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateYearMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}

// decimalValue exposes a decimal to numeric validation tags.
func decimalValue(v reflect.Value) interface{} {
	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

// parseDate parses a field already checked by isodate. Empty yields zero.
func parseDate(s string) generic.Date {
	if s == "" {
		return generic.Date{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return generic.Date{}
	}
	return generic.DateOf(t)
}

func parseMonth(s string) generic.Date {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return generic.Date{}
	}
	return generic.DateOf(t)
}

// =============================================================================
// COMMON TYPES
// =============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// MoneyDTO is a peso amount with its display form.
type MoneyDTO struct {
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
}

func money(d decimal.Decimal) MoneyDTO {
	return MoneyDTO{Value: d, Formatted: format.Money(d)}
}

// PercentDTO is a percentage with its display form.
type PercentDTO struct {
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
}

func percent(d decimal.Decimal) PercentDTO {
	return PercentDTO{Value: d, Formatted: format.Percent(d)}
}

func dateString(d generic.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func datePtr(d *generic.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// =============================================================================
// DATASETS
// =============================================================================

// LatestValueDTO is the newest row of one reference table.
type LatestValueDTO struct {
	Table    string          `json:"table"`
	At       string          `json:"at"`
	Until    *string         `json:"until,omitempty"`
	Value    decimal.Decimal `json:"value"`
	Citation string          `json:"citation,omitempty"`
}

// DatasetsResponse lists the latest value of every table.
type DatasetsResponse struct {
	LoadedAt string           `json:"loaded_at"`
	Latest   []LatestValueDTO `json:"latest"`
}

// DatasetRowDTO is one row of any table. Series rows only set At.
type DatasetRowDTO struct {
	At       string           `json:"at"`
	Until    *string          `json:"until,omitempty"`
	Value    decimal.Decimal  `json:"value"`
	Amount   *decimal.Decimal `json:"amount,omitempty"` // RIPTE average wage
	Citation string           `json:"citation,omitempty"`
	Link     string           `json:"link,omitempty"`
}

// DatasetResponse lists the rows of one table, oldest first.
type DatasetResponse struct {
	Table string          `json:"table"`
	Rows  []DatasetRowDTO `json:"rows"`
}

// =============================================================================
// INDEXATION
// =============================================================================

// IndexationRequest is the body of POST /api/calculators/indexation.
type IndexationRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"gt=0"`
	From      string          `json:"from" validate:"required,isodate"`
	To        string          `json:"to" validate:"required,isodate"`
	RIPTERate decimal.Decimal `json:"ripte_rate" validate:"gte=0,lte=6"`
	IPCRate   decimal.Decimal `json:"ipc_rate" validate:"gte=0,lte=6"`
}

// RIPTEDTO is an update by the wage index.
type RIPTEDTO struct {
	Coefficient  decimal.Decimal `json:"coefficient"`
	IndexFrom    decimal.Decimal `json:"index_from"`
	IndexTo      decimal.Decimal `json:"index_to"`
	Updated      MoneyDTO        `json:"updated"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Days         int             `json:"days"`
	Interest     MoneyDTO        `json:"interest"`
	Total        MoneyDTO        `json:"total"`
}

// ActiveRateDTO is an update by the accumulated lending rate.
type ActiveRateDTO struct {
	Percent  PercentDTO `json:"percent"`
	Interest MoneyDTO   `json:"interest"`
	Total    MoneyDTO   `json:"total"`
}

// IPCDTO is an update by accumulated inflation.
type IPCDTO struct {
	Percent      PercentDTO      `json:"percent"`
	Updated      MoneyDTO        `json:"updated"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Interest     MoneyDTO        `json:"interest"`
	Total        MoneyDTO        `json:"total"`
}

// IndexationResponse compares the three update methods.
type IndexationResponse struct {
	Amount     MoneyDTO      `json:"amount"`
	From       string        `json:"from"`
	To         string        `json:"to"`
	RIPTE      RIPTEDTO      `json:"ripte"`
	ActiveRate ActiveRateDTO `json:"tasa_activa"`
	IPC        IPCDTO        `json:"ipc"`
	Highest    string        `json:"highest"`
}

// =============================================================================
// INJURY
// =============================================================================

// InjuryRequest is the body of POST /api/calculators/injury.
type InjuryRequest struct {
	PMIDate    string          `json:"pmi_date" validate:"required,isodate"`
	FinalDate  string          `json:"final_date" validate:"required,isodate"`
	IBM        decimal.Decimal `json:"ibm" validate:"gte=0"`
	Age        int             `json:"age" validate:"gte=18,lte=100"`
	Disability decimal.Decimal `json:"disability" validate:"gt=0,lte=100"`
	Additional bool            `json:"additional"`
}

// FloorDTO reports the minimum indemnity check.
type FloorDTO struct {
	Found        bool     `json:"found"`
	Applied      bool     `json:"applied"`
	Amount       MoneyDTO `json:"amount"`
	Proportional MoneyDTO `json:"proportional"`
	Citation     string   `json:"citation,omitempty"`
	Link         string   `json:"link,omitempty"`
	Info         string   `json:"info"`
}

// InjuryResponse is a computed Ley 24.557 indemnity.
type InjuryResponse struct {
	Formula          MoneyDTO      `json:"formula"`
	Floor            FloorDTO      `json:"floor"`
	Capital          MoneyDTO      `json:"capital"`
	Additional       MoneyDTO      `json:"additional"`
	Base             MoneyDTO      `json:"base"`
	RIPTE            RIPTEDTO      `json:"ripte"`
	ActiveRate       ActiveRateDTO `json:"tasa_activa"`
	InflationPercent PercentDTO    `json:"inflation"`
	Favourable       string        `json:"favourable"`
	FavourableTotal  MoneyDTO      `json:"favourable_total"`
}

// =============================================================================
// SEVERANCE
// =============================================================================

// SeveranceRequest is the body of POST /api/calculators/severance.
type SeveranceRequest struct {
	HireDate       string          `json:"hire_date" validate:"required,isodate"`
	DismissalDate  string          `json:"dismissal_date" validate:"required,isodate"`
	SettlementDate string          `json:"settlement_date" validate:"required,isodate"`
	Salary         decimal.Decimal `json:"salary" validate:"gte=0"`
	NoticeGiven    bool            `json:"notice_given"`
}

// ItemDTO is one settlement line.
type ItemDTO struct {
	Concept string   `json:"concept"`
	Amount  MoneyDTO `json:"amount"`
}

// SeveranceResponse is a computed dismissal settlement.
type SeveranceResponse struct {
	Years            int           `json:"years"`
	Months           int           `json:"months"`
	VacationDays     int           `json:"vacation_days"`
	SACDays          int           `json:"sac_days"`
	Items            []ItemDTO     `json:"items"`
	Total            MoneyDTO      `json:"total"`
	Words            string        `json:"words"`
	RIPTE            RIPTEDTO      `json:"ripte"`
	ActiveRate       ActiveRateDTO `json:"tasa_activa"`
	InflationPercent PercentDTO    `json:"inflation"`
}

// =============================================================================
// WAGE BASE
// =============================================================================

// SalaryDTO is one month's salary.
type SalaryDTO struct {
	Month  string          `json:"month" validate:"required,yearmonth"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
}

// WageBaseRequest is the body of POST /api/calculators/wage-base.
type WageBaseRequest struct {
	PMIDate  string      `json:"pmi_date" validate:"required,isodate"`
	Salaries []SalaryDTO `json:"salaries" validate:"max=36,dive"`
}

// WageBaseLineDTO is one month of the IBM breakdown.
type WageBaseLineDTO struct {
	Month     string           `json:"month"`
	Period    string           `json:"period"`
	Salary    MoneyDTO         `json:"salary"`
	Index     *decimal.Decimal `json:"ripte,omitempty"`
	Variation *decimal.Decimal `json:"variation,omitempty"`
	Updated   MoneyDTO         `json:"updated"`
	Days      int              `json:"days"`
	Included  bool             `json:"included"`
}

// WageBaseResponse is a computed IBM.
type WageBaseResponse struct {
	PMIDate      string            `json:"pmi_date"`
	Lines        []WageBaseLineDTO `json:"lines"`
	Count        int               `json:"count"`
	TotalSalary  MoneyDTO          `json:"total_salary"`
	TotalUpdated MoneyDTO          `json:"total_updated"`
	TotalDays    int               `json:"total_days"`
	IBM          MoneyDTO          `json:"ibm"`
	Words        string            `json:"words"`
}

// =============================================================================
// FEES
// =============================================================================

// JUSRequest is the body of POST /api/calculators/fees/jus.
type JUSRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Date   string          `json:"date" validate:"required,isodate"`
	AsOf   string          `json:"as_of" validate:"omitempty,isodate"`
}

// AgreementDTO is a JUS value and the agreement that set it.
type AgreementDTO struct {
	Value    MoneyDTO `json:"value"`
	Citation string   `json:"citation"`
	From     string   `json:"from"`
	Until    string   `json:"until"`
}

// JUSResponse is a peso to JUS conversion.
type JUSResponse struct {
	Amount  MoneyDTO        `json:"amount"`
	Date    string          `json:"date"`
	AsOf    string          `json:"as_of"`
	At      AgreementDTO    `json:"at"`
	JUS     decimal.Decimal `json:"jus"`
	Current AgreementDTO    `json:"current"`
	Updated MoneyDTO        `json:"updated"`
}

// ChargesDTO selects VAT and the contribution rate.
type ChargesDTO struct {
	VAT          bool `json:"vat"`
	Contribution int  `json:"contribution" validate:"omitempty,oneof=5 10"`
}

// FeeDTO is one professional's share.
type FeeDTO struct {
	Percent      decimal.Decimal `json:"percent" validate:"gte=0,lte=25"`
	VAT          bool            `json:"vat"`
	Contribution int             `json:"contribution" validate:"omitempty,oneof=5 10"`
}

// RegulationRequest is the body of POST /api/calculators/fees/regulation.
type RegulationRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"gt=0"`
	Date      string          `json:"date" validate:"required,isodate"`
	Plaintiff FeeDTO          `json:"plaintiff"`
	Experts   []FeeDTO        `json:"experts" validate:"max=4,dive"`
	Defendant ChargesDTO      `json:"defendant"`
}

// FeeRowDTO is one computed line of the sheet.
type FeeRowDTO struct {
	Role          string          `json:"role"`
	Number        int             `json:"number,omitempty"`
	Percent       PercentDTO      `json:"percent"`
	Pesos         MoneyDTO        `json:"pesos"`
	JUS           decimal.Decimal `json:"jus"`
	VAT           MoneyDTO        `json:"vat"`
	Contribution  int             `json:"contribution"`
	Contributions MoneyDTO        `json:"contributions"`
	Total         MoneyDTO        `json:"total"`
}

// RegulationResponse is a computed fee sheet.
type RegulationResponse struct {
	Agreement   AgreementDTO    `json:"agreement"`
	Rows        []FeeRowDTO     `json:"rows"`
	Defendant   FeeRowDTO       `json:"defendant"`
	Used        MoneyDTO        `json:"used"`
	UsedPercent PercentDTO      `json:"used_percent"`
	TotalJUS    decimal.Decimal `json:"total_jus"`
	Cap         MoneyDTO        `json:"cap"`
	Available   MoneyDTO        `json:"available"`
	CapJUS      decimal.Decimal `json:"cap_jus"`
	Status      string          `json:"status"`
	MinimumFee  *MoneyDTO       `json:"minimum_fee,omitempty"`
}
