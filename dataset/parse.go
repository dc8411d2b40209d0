package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// RECORDS - Header-keyed CSV rows
// =============================================================================

// record is one data row keyed by normalized header name.
type record struct {
	line   int
	fields map[string]string
}

// get returns the first non-empty field among the candidate column names.
func (r record) get(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(r.fields[n]); v != "" {
			return v
		}
	}
	return ""
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(h, "\ufeff", "")))
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab in the
// header line.
func sniffDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	best, count := ',', bytes.Count(header, []byte{','})
	for _, c := range []rune{';', '\t'} {
		if n := bytes.Count(header, []byte(string(c))); n > count {
			best, count = c, n
		}
	}
	return best
}

func readRecords(r io.Reader) ([]record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	// A tab after an empty cell counts as leading space; get() trims instead.
	cr.TrimLeadingSpace = cr.Comma != '\t'

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = normalizeHeader(h)
	}

	out := make([]record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec := record{line: i + 2, fields: make(map[string]string, len(header))}
		blank := true
		for j, v := range row {
			if j < len(header) {
				rec.fields[header[j]] = v
			}
			if strings.TrimSpace(v) != "" {
				blank = false
			}
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out, nil
}

// =============================================================================
// NUMBERS
// =============================================================================

// ParseNumber reads a decimal written either way: "3,982", "3.982",
// "1.234,56", "1,234.56", with an optional "$" or "%".
func ParseNumber(s string) (decimal.Decimal, error) {
	s = cleanNumber(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty number")
	}
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}

// ParseArgentine reads a number in Argentine notation, where "." only ever
// separates thousands: "$ 12.345,67" -> 12345.67, "12.345" -> 12345.
func ParseArgentine(s string) (decimal.Decimal, error) {
	s = cleanNumber(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty number")
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	return decimal.NewFromString(s)
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("$", "", "%", "", " ", "", "\u00a0", "").Replace(s)
	return s
}

// =============================================================================
// TABLE PARSERS
// =============================================================================

// ParseRIPTE returns the index series and the average-wage series.
// Rows without a usable wage amount still contribute to the index.
func ParseRIPTE(r io.Reader, logger *zap.Logger) (*generic.Series, *generic.Series, error) {
	recs, err := readRecords(r)
	if err != nil {
		return nil, nil, err
	}
	var index, amount []generic.Point
	for _, rec := range recs {
		year, err := strconv.Atoi(rec.get("año", "ano", "anio", "year"))
		if err != nil {
			dropRow(logger, generic.TableRIPTE, rec, "year", err)
			continue
		}
		month, ok := generic.ParseMonth(rec.get("mes", "month"))
		if !ok {
			dropRow(logger, generic.TableRIPTE, rec, "month", fmt.Errorf("unrecognized month %q", rec.get("mes", "month")))
			continue
		}
		at := generic.StartOfMonth(year, month)

		v, err := ParseNumber(rec.get("indice_ripte", "ripte", "indice"))
		if err != nil {
			dropRow(logger, generic.TableRIPTE, rec, "indice_ripte", err)
			continue
		}
		index = append(index, generic.Point{At: at, Value: v})

		if raw := rec.get("monto_en_pesos"); raw != "" {
			if m, err := ParseArgentine(raw); err == nil {
				amount = append(amount, generic.Point{At: at, Value: m})
			}
		}
	}
	return generic.NewSeries(generic.TableRIPTE, index), generic.NewSeries(generic.TableRIPTEAmount, amount), nil
}

// ParseIPC returns the monthly inflation series (percent change).
func ParseIPC(r io.Reader, logger *zap.Logger) (*generic.Series, error) {
	recs, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	var points []generic.Point
	for _, rec := range recs {
		at, err := generic.ParseDate(rec.get("periodo", "fecha"))
		if err != nil {
			dropRow(logger, generic.TableIPC, rec, "periodo", err)
			continue
		}
		v, err := ParseNumber(rec.get("variacion_mensual", "variacion", "ipc"))
		if err != nil {
			dropRow(logger, generic.TableIPC, rec, "variacion_mensual", err)
			continue
		}
		points = append(points, generic.Point{At: at.FirstOfMonth(), Value: v})
	}
	return generic.NewSeries(generic.TableIPC, points), nil
}

// ParseActiveRate returns the Tasa Activa intervals. A row without an end
// date is valid until the end of its start month.
func ParseActiveRate(r io.Reader, logger *zap.Logger) (*generic.RateTable, error) {
	recs, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	var intervals []generic.RateInterval
	for _, rec := range recs {
		from, err := generic.ParseDate(rec.get("desde"))
		if err != nil {
			dropRow(logger, generic.TableActiveRate, rec, "desde", err)
			continue
		}
		to := from.LastOfMonth()
		if raw := rec.get("hasta"); raw != "" {
			if to, err = generic.ParseDate(raw); err != nil {
				dropRow(logger, generic.TableActiveRate, rec, "hasta", err)
				continue
			}
		}
		rate, err := ParseNumber(rec.get("valor", "porcentaje", "tasa"))
		if err != nil {
			dropRow(logger, generic.TableActiveRate, rec, "valor", err)
			continue
		}
		intervals = append(intervals, generic.RateInterval{From: from, To: to, Rate: rate})
	}
	return generic.NewRateTable(generic.TableActiveRate, intervals), nil
}

// ParseJUS returns the JUS unit values with their agreement citation.
func ParseJUS(r io.Reader, logger *zap.Logger) (*generic.ThresholdTable, error) {
	recs, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	var rows []generic.Threshold
	for _, rec := range recs {
		from, err := generic.ParseDate(rec.get("fecha entrada en vigencia"))
		if err != nil {
			dropRow(logger, generic.TableJUS, rec, "fecha entrada en vigencia", err)
			continue
		}
		to, err := optionalDate(rec.get("fecha de finalizacion", "fecha de finalización"))
		if err != nil {
			dropRow(logger, generic.TableJUS, rec, "fecha de finalizacion", err)
			continue
		}
		v, err := ParseArgentine(rec.get("valor ius", "valor jus"))
		if err != nil {
			dropRow(logger, generic.TableJUS, rec, "valor ius", err)
			continue
		}
		rows = append(rows, generic.Threshold{From: from, To: to, Value: v, Citation: rec.get("acuerdo")})
	}
	return generic.NewThresholdTable(generic.TableJUS, rows), nil
}

// ParseFloors returns the LRT minimum amounts with the regulation that set them.
func ParseFloors(r io.Reader, logger *zap.Logger) (*generic.ThresholdTable, error) {
	recs, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	var rows []generic.Threshold
	for _, rec := range recs {
		from, err := generic.ParseDate(rec.get("fecha_inicio", "desde"))
		if err != nil {
			dropRow(logger, generic.TableFloors, rec, "fecha_inicio", err)
			continue
		}
		to, err := optionalDate(rec.get("fecha_fin", "hasta"))
		if err != nil {
			dropRow(logger, generic.TableFloors, rec, "fecha_fin", err)
			continue
		}
		v, err := ParseNumber(rec.get("monto_minimo", "piso"))
		if err != nil {
			dropRow(logger, generic.TableFloors, rec, "monto_minimo", err)
			continue
		}
		link := rec.get("enlace")
		if strings.EqualFold(link, "nan") {
			link = ""
		}
		rows = append(rows, generic.Threshold{
			From:     from,
			To:       to,
			Value:    v,
			Citation: rec.get("norma"),
			Link:     link,
		})
	}
	return generic.NewThresholdTable(generic.TableFloors, rows), nil
}

// =============================================================================
// HELPERS
// =============================================================================

func optionalDate(s string) (*generic.Date, error) {
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "nat") {
		return nil, nil
	}
	d, err := generic.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func dropRow(logger *zap.Logger, table string, rec record, column string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("dropping unparseable reference row",
		zap.String("table", table),
		zap.Int("line", rec.line),
		zap.String("column", column),
		zap.Error(err),
	)
}
