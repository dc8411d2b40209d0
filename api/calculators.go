package api

import (
	"net/http"

	"github.com/warp/settlement-engine/fees"
	"github.com/warp/settlement-engine/format"
	"github.com/warp/settlement-engine/indexation"
	"github.com/warp/settlement-engine/injury"
	"github.com/warp/settlement-engine/report"
	"github.com/warp/settlement-engine/severance"
	"github.com/warp/settlement-engine/wagebase"
)

// =============================================================================
// CLAIM CALCULATORS
// =============================================================================

// CalculateInjury computes a Ley 24.557 indemnity.
// POST /api/calculators/injury
func (h *Handler) CalculateInjury(w http.ResponseWriter, r *http.Request) {
	var req InjuryRequest
	if !decode(w, r, &req) {
		return
	}

	tables, _ := h.Tables()
	res, err := injury.Calculate(tables, injury.Input{
		PMI:        parseDate(req.PMIDate),
		Final:      parseDate(req.FinalDate),
		IBM:        req.IBM,
		Age:        req.Age,
		Disability: req.Disability,
		Additional: req.Additional,
	})
	if err != nil {
		h.writeCalcError(w, "injury", err)
		return
	}
	if wantsText(r) {
		writeText(w, http.StatusOK, report.Injury(res))
		return
	}

	writeJSON(w, http.StatusOK, InjuryResponse{
		Formula: money(res.Formula),
		Floor: FloorDTO{
			Found:        res.Floor.Found,
			Applied:      res.Floor.Applied,
			Amount:       money(res.Floor.Amount),
			Proportional: money(res.Floor.Proportional),
			Citation:     res.Floor.Citation,
			Link:         res.Floor.Link,
			Info:         res.Floor.Info,
		},
		Capital:          money(res.Capital),
		Additional:       money(res.Additional),
		Base:             money(res.Base),
		RIPTE:            toRIPTEDTO(res.RIPTE),
		ActiveRate:       toActiveRateDTO(res.ActiveRate),
		InflationPercent: percent(res.InflationPercent),
		Favourable:       string(res.Favourable),
		FavourableTotal:  money(res.FavourableTotal()),
	})
}

// CalculateSeverance computes a Ley 20.744 dismissal settlement.
// POST /api/calculators/severance
func (h *Handler) CalculateSeverance(w http.ResponseWriter, r *http.Request) {
	var req SeveranceRequest
	if !decode(w, r, &req) {
		return
	}

	tables, _ := h.Tables()
	res, err := severance.Calculate(tables, severance.Input{
		Hire:        parseDate(req.HireDate),
		Dismissal:   parseDate(req.DismissalDate),
		Settlement:  parseDate(req.SettlementDate),
		Salary:      req.Salary,
		NoticeGiven: req.NoticeGiven,
	})
	if err != nil {
		h.writeCalcError(w, "severance", err)
		return
	}
	if wantsText(r) {
		writeText(w, http.StatusOK, report.Severance(res))
		return
	}

	items := make([]ItemDTO, 0, 9)
	for _, it := range res.Items() {
		items = append(items, ItemDTO{Concept: it.Concept, Amount: money(it.Amount)})
	}

	writeJSON(w, http.StatusOK, SeveranceResponse{
		Years:            res.Years,
		Months:           res.Months,
		VacationDays:     res.VacationDays,
		SACDays:          res.SACDays,
		Items:            items,
		Total:            money(res.Total),
		Words:            format.Words(res.Total),
		RIPTE:            toRIPTEDTO(res.RIPTE),
		ActiveRate:       toActiveRateDTO(res.ActiveRate),
		InflationPercent: percent(res.InflationPercent),
	})
}

// CalculateIndexation updates an amount by RIPTE, Tasa Activa and IPC.
// POST /api/calculators/indexation
func (h *Handler) CalculateIndexation(w http.ResponseWriter, r *http.Request) {
	var req IndexationRequest
	if !decode(w, r, &req) {
		return
	}

	tables, _ := h.Tables()
	res, err := indexation.Calculate(tables, indexation.Input{
		Amount:    req.Amount,
		From:      parseDate(req.From),
		To:        parseDate(req.To),
		RIPTERate: req.RIPTERate,
		IPCRate:   req.IPCRate,
	})
	if err != nil {
		h.writeCalcError(w, "indexation", err)
		return
	}
	if wantsText(r) {
		writeText(w, http.StatusOK, report.Indexation(res))
		return
	}

	highest, _ := res.Highest()
	writeJSON(w, http.StatusOK, IndexationResponse{
		Amount:     money(req.Amount),
		From:       req.From,
		To:         req.To,
		RIPTE:      toRIPTEDTO(res.RIPTE),
		ActiveRate: toActiveRateDTO(res.ActiveRate),
		IPC: IPCDTO{
			Percent:      percent(res.IPC.Percent),
			Updated:      money(res.IPC.Updated),
			InterestRate: res.IPC.InterestRate,
			Interest:     money(res.IPC.Interest),
			Total:        money(res.IPC.Total),
		},
		Highest: string(highest),
	})
}

// CalculateWageBase computes the IBM from monthly salaries.
// POST /api/calculators/wage-base
func (h *Handler) CalculateWageBase(w http.ResponseWriter, r *http.Request) {
	var req WageBaseRequest
	if !decode(w, r, &req) {
		return
	}

	in := wagebase.Input{PMI: parseDate(req.PMIDate)}
	for _, s := range req.Salaries {
		in.Salaries = append(in.Salaries, wagebase.Salary{Month: parseMonth(s.Month), Amount: s.Amount})
	}

	tables, _ := h.Tables()
	res, err := wagebase.Calculate(tables.RIPTE, in)
	if err != nil {
		h.writeCalcError(w, "wage-base", err)
		return
	}
	if wantsText(r) {
		writeText(w, http.StatusOK, report.WageBase(res))
		return
	}

	lines := make([]WageBaseLineDTO, 0, len(res.Lines))
	for _, l := range res.Lines {
		dto := WageBaseLineDTO{
			Month:    l.Month.Time.Format("2006-01"),
			Period:   format.ShortPeriod(l.Month),
			Salary:   money(l.Salary),
			Updated:  money(l.Updated),
			Days:     l.Days,
			Included: l.Included,
		}
		if l.HasIndex {
			index := l.Index
			dto.Index = &index
		}
		if l.HasVariation {
			variation := l.Variation
			dto.Variation = &variation
		}
		lines = append(lines, dto)
	}

	writeJSON(w, http.StatusOK, WageBaseResponse{
		PMIDate:      req.PMIDate,
		Lines:        lines,
		Count:        res.Count,
		TotalSalary:  money(res.TotalSalary),
		TotalUpdated: money(res.TotalUpdated),
		TotalDays:    res.TotalDays,
		IBM:          money(res.IBM),
		Words:        res.Words,
	})
}

// =============================================================================
// FEE CALCULATORS
// =============================================================================

// ConvertJUS expresses an amount in JUS and values it again at a later date.
// POST /api/calculators/fees/jus
func (h *Handler) ConvertJUS(w http.ResponseWriter, r *http.Request) {
	var req JUSRequest
	if !decode(w, r, &req) {
		return
	}

	tables, _ := h.Tables()
	c, err := fees.ConvertToJUS(tables.JUS, req.Amount, parseDate(req.Date), parseDate(req.AsOf))
	if err != nil {
		h.writeCalcError(w, "jus", err)
		return
	}
	if wantsText(r) {
		writeText(w, http.StatusOK, report.JUSConversion(c))
		return
	}

	writeJSON(w, http.StatusOK, JUSResponse{
		Amount:  money(c.Amount),
		Date:    c.Date.String(),
		AsOf:    c.AsOf.String(),
		At:      toAgreementDTO(c.At),
		JUS:     c.JUS,
		Current: toAgreementDTO(c.Current),
		Updated: money(c.Updated),
	})
}

// RegulateFees computes a Ley 24.432 fee sheet.
// POST /api/calculators/fees/regulation
func (h *Handler) RegulateFees(w http.ResponseWriter, r *http.Request) {
	var req RegulationRequest
	if !decode(w, r, &req) {
		return
	}

	in := fees.RegulationInput{
		Amount:    req.Amount,
		Date:      parseDate(req.Date),
		Plaintiff: toFee(req.Plaintiff),
		Defendant: fees.Charges{VAT: req.Defendant.VAT, Contribution: req.Defendant.Contribution},
	}
	for _, e := range req.Experts {
		in.Experts = append(in.Experts, toFee(e))
	}

	tables, _ := h.Tables()
	reg, err := fees.Regulate(tables, in)
	if err != nil {
		h.writeCalcError(w, "regulation", err)
		return
	}
	if wantsText(r) {
		writeText(w, http.StatusOK, report.Regulation(reg))
		return
	}

	rows := make([]FeeRowDTO, 0, len(reg.Rows))
	for _, rw := range reg.Rows {
		rows = append(rows, toFeeRowDTO(rw))
	}
	resp := RegulationResponse{
		Agreement:   toAgreementDTO(reg.Agreement),
		Rows:        rows,
		Defendant:   toFeeRowDTO(reg.Defendant),
		Used:        money(reg.Used),
		UsedPercent: percent(reg.UsedPercent),
		TotalJUS:    reg.TotalJUS,
		Cap:         money(reg.Cap),
		Available:   money(reg.Available),
		CapJUS:      reg.CapJUS,
		Status:      string(reg.Status),
	}
	if reg.HasMinimumFee {
		minimum := money(reg.MinimumFee)
		resp.MinimumFee = &minimum
	}

	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toRIPTEDTO(u indexation.RIPTEUpdate) RIPTEDTO {
	return RIPTEDTO{
		Coefficient:  u.Coefficient,
		IndexFrom:    u.IndexFrom.Value,
		IndexTo:      u.IndexTo.Value,
		Updated:      money(u.Updated),
		InterestRate: u.InterestRate,
		Days:         u.Days,
		Interest:     money(u.Interest),
		Total:        money(u.Total),
	}
}

func toActiveRateDTO(u indexation.RateUpdate) ActiveRateDTO {
	return ActiveRateDTO{
		Percent:  percent(u.Percent),
		Interest: money(u.Interest),
		Total:    money(u.Total),
	}
}

func toAgreementDTO(a fees.Agreement) AgreementDTO {
	until := fees.OpenEnded
	if a.To != nil {
		until = a.To.String()
	}
	return AgreementDTO{
		Value:    money(a.Value),
		Citation: a.Citation,
		From:     dateString(a.From),
		Until:    until,
	}
}

func toFee(f FeeDTO) fees.Fee {
	return fees.Fee{
		Percent: f.Percent,
		Charges: fees.Charges{VAT: f.VAT, Contribution: f.Contribution},
	}
}

func toFeeRowDTO(rw fees.Row) FeeRowDTO {
	return FeeRowDTO{
		Role:          string(rw.Role),
		Number:        rw.Number,
		Percent:       percent(rw.Percent),
		Pesos:         money(rw.Pesos),
		JUS:           rw.JUS,
		VAT:           money(rw.VAT),
		Contribution:  rw.Contribution,
		Contributions: money(rw.Contributions),
		Total:         money(rw.Total),
	}
}
