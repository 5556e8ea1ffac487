package taxform

import (
	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
	"github.com/shopspring/decimal"
)

var displayNames = []dto.FormTypeInfo{
	{Type: dto.FormW2, DisplayName: "W-2"},
	{Type: dto.Form1099INT, DisplayName: "1099-INT"},
	{Type: dto.Form1098T, DisplayName: "1098-T"},
	{Type: dto.Form1098, DisplayName: "1098"},
	{Type: dto.Form3922, DisplayName: "3922"},
	{Type: dto.Form1099Consolidated, DisplayName: "1099 Consolidated"},
	{Type: dto.Form1099R, DisplayName: "1099-R"},
	{Type: dto.FormSSA1099, DisplayName: "SSA-1099"},
	{Type: dto.Form1099SA, DisplayName: "1099-SA"},
}

// FormTypes lists the supported forms in display order.
func FormTypes() []dto.FormTypeInfo {
	out := make([]dto.FormTypeInfo, len(displayNames))
	copy(out, displayNames)
	return out
}

type headline struct {
	label  string
	key    string
	shares bool
}

var headlines = map[dto.FormType]headline{
	dto.FormW2:               {label: "Wages", key: "wages"},
	dto.Form1099INT:          {label: "Interest", key: "interest_income"},
	dto.Form1098T:            {label: "Tuition Paid", key: "tuition_paid"},
	dto.Form1098:             {label: "Mortgage Interest", key: "mortgage_interest"},
	dto.Form3922:             {label: "Shares", key: "shares_transferred", shares: true},
	dto.Form1099Consolidated: {label: "Net Gain/Loss", key: "net_gain_loss"},
	dto.Form1099R:            {label: "Gross Distribution", key: "gross_distribution"},
	dto.FormSSA1099:          {label: "Net Benefits", key: "net_benefits"},
	dto.Form1099SA:           {label: "HSA Distributions", key: "total_distributions"},
}

// KeyFigure returns the headline number of a scanned form. A missing value
// shows as zero, an unparseable one as "-".
func KeyFigure(res dto.TaxFormResult) dto.KeyFigure {
	h, ok := headlines[res.FormType]
	if !ok {
		return dto.KeyFigure{Label: string(res.FormType), Value: "-"}
	}
	d := decimal.Zero
	if v, ok := res.Get(h.key); ok {
		parsed := utils.ParseAmount(v)
		if parsed == nil {
			return dto.KeyFigure{Label: h.label, Value: "-"}
		}
		d = *parsed
	}
	if h.shares {
		return dto.KeyFigure{Label: h.label, Value: utils.FormatGrouped(d, 4)}
	}
	return dto.KeyFigure{Label: h.label, Value: utils.FormatCurrency(d)}
}

// Summarize totals the results of every form filed for a tax year. Results
// carrying an error are skipped.
func Summarize(results []dto.TaxFormResult) dto.TaxYearSummary {
	var s dto.TaxYearSummary
	for _, r := range results {
		if r.Error != "" {
			continue
		}
		switch r.FormType {
		case dto.FormW2:
			s.TotalWages = s.TotalWages.Add(r.Decimal("wages"))
			s.TotalFederalWithheld = s.TotalFederalWithheld.Add(r.Decimal("federal_withheld"))
			s.TotalStateWithheld = s.TotalStateWithheld.Add(r.Decimal("state_withheld"))
			s.TotalSSWithheld = s.TotalSSWithheld.Add(r.Decimal("ss_withheld"))
			s.TotalMedicareWithheld = s.TotalMedicareWithheld.Add(r.Decimal("medicare_withheld"))
		case dto.Form1099INT:
			s.TotalInterest = s.TotalInterest.Add(r.Decimal("interest_income"))
			s.TotalFederalWithheld = s.TotalFederalWithheld.Add(r.Decimal("federal_withheld"))
		case dto.Form1098T:
			s.TuitionPaid = s.TuitionPaid.Add(r.Decimal("tuition_paid"))
		case dto.Form1098:
			s.MortgageInterest = s.MortgageInterest.Add(r.Decimal("mortgage_interest"))
		case dto.Form1099Consolidated:
			s.TotalDividends = s.TotalDividends.Add(r.Decimal("ordinary_dividends"))
			s.TotalQualifiedDiv = s.TotalQualifiedDiv.Add(r.Decimal("qualified_dividends"))
			s.NetCapGain = s.NetCapGain.Add(r.Decimal("net_gain_loss"))
			s.TotalInterest = s.TotalInterest.Add(r.Decimal("interest_income"))
			s.TotalFederalWithheld = s.TotalFederalWithheld.Add(r.Decimal("federal_withheld"))
		case dto.Form1099R:
			s.TotalRetirementDist = s.TotalRetirementDist.Add(r.Decimal("gross_distribution"))
			s.TotalFederalWithheld = s.TotalFederalWithheld.Add(r.Decimal("federal_withheld"))
			s.TotalStateWithheld = s.TotalStateWithheld.Add(r.Decimal("state_withheld"))
		case dto.FormSSA1099:
			s.TotalSSBenefits = s.TotalSSBenefits.Add(r.Decimal("net_benefits"))
			s.TotalFederalWithheld = s.TotalFederalWithheld.Add(r.Decimal("voluntary_federal_withheld"))
		case dto.Form1099SA:
			s.HSADistributions = s.HSADistributions.Add(r.Decimal("total_distributions"))
		case dto.Form3922:
			s.ESPPCompensation = s.ESPPCompensation.Add(esppCompensation(r))
		}
	}
	return s
}

// esppCompensation is the bargain element of an ESPP transfer:
// (exercise-date FMV - price paid) per share.
func esppCompensation(r dto.TaxFormResult) decimal.Decimal {
	shares := r.Decimal("shares_transferred")
	fmv := r.Decimal("fmv_on_exercise_date")
	price := r.Decimal("exercise_price")
	if !shares.IsPositive() || !fmv.GreaterThan(price) {
		return decimal.Zero
	}
	return fmv.Sub(price).Mul(shares).Round(2)
}
