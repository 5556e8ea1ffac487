package taxform

import (
	"testing"

	"github.com/Aashish23092/finextract/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mustDec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func result(ft dto.FormType, fields map[string]string) dto.TaxFormResult {
	return dto.TaxFormResult{FormType: ft, Fields: fields}
}

func TestSummarize(t *testing.T) {
	results := []dto.TaxFormResult{
		result(dto.FormW2, map[string]string{"wages": "50000.00", "federal_withheld": "6000.00", "state_withheld": "2000.00", "ss_withheld": "3100.00", "medicare_withheld": "725.00"}),
		result(dto.FormW2, map[string]string{"wages": "40000.00", "federal_withheld": "4000.00"}),
		result(dto.Form1099INT, map[string]string{"interest_income": "120.00"}),
		result(dto.Form1099Consolidated, map[string]string{"ordinary_dividends": "300.00", "qualified_dividends": "200.00", "net_gain_loss": "-1500.00", "interest_income": "5.00"}),
		result(dto.Form1098, map[string]string{"mortgage_interest": "9876.54"}),
		result(dto.Form1098T, map[string]string{"tuition_paid": "4000.00"}),
		result(dto.Form1099R, map[string]string{"gross_distribution": "10000.00", "federal_withheld": "1000.00", "state_withheld": "300.00"}),
		result(dto.FormSSA1099, map[string]string{"net_benefits": "18000.00", "voluntary_federal_withheld": "1800.00"}),
		result(dto.Form1099SA, map[string]string{"total_distributions": "650.00"}),
		result(dto.Form3922, map[string]string{"fmv_on_exercise_date": "120.50", "exercise_price": "85.1234", "shares_transferred": "50"}),
		{FormType: dto.FormW2, Fields: map[string]string{"wages": "99999.00"}, Error: "Extraction failed: boom"},
	}

	s := Summarize(results)

	assertDec := func(want string, got decimal.Decimal) {
		t.Helper()
		assert.True(t, mustDec(want).Equal(got), "want %s, got %s", want, got)
	}
	assertDec("90000", s.TotalWages)
	assertDec("12800", s.TotalFederalWithheld)
	assertDec("2300", s.TotalStateWithheld)
	assertDec("3100", s.TotalSSWithheld)
	assertDec("725", s.TotalMedicareWithheld)
	assertDec("125", s.TotalInterest)
	assertDec("300", s.TotalDividends)
	assertDec("200", s.TotalQualifiedDiv)
	assertDec("-1500", s.NetCapGain)
	assertDec("9876.54", s.MortgageInterest)
	assertDec("4000", s.TuitionPaid)
	assertDec("10000", s.TotalRetirementDist)
	assertDec("18000", s.TotalSSBenefits)
	assertDec("650", s.HSADistributions)
	assertDec("1768.83", s.ESPPCompensation)
}

func TestESPPCompensation_BelowPrice(t *testing.T) {
	r := result(dto.Form3922, map[string]string{"fmv_on_exercise_date": "80.00", "exercise_price": "85.00", "shares_transferred": "10"})
	assert.True(t, esppCompensation(r).IsZero())

	r = result(dto.Form3922, map[string]string{"fmv_on_exercise_date": "120.00", "exercise_price": "85.00"})
	assert.True(t, esppCompensation(r).IsZero())
}

func TestKeyFigure(t *testing.T) {
	tests := []struct {
		name string
		res  dto.TaxFormResult
		want dto.KeyFigure
	}{
		{"wages", result(dto.FormW2, map[string]string{"wages": "85000.00"}), dto.KeyFigure{Label: "Wages", Value: "$85,000.00"}},
		{"missing", result(dto.Form1099INT, map[string]string{}), dto.KeyFigure{Label: "Interest", Value: "$0.00"}},
		{"malformed", result(dto.Form1098, map[string]string{"mortgage_interest": "abc"}), dto.KeyFigure{Label: "Mortgage Interest", Value: "-"}},
		{"loss", result(dto.Form1099Consolidated, map[string]string{"net_gain_loss": "-1500.00"}), dto.KeyFigure{Label: "Net Gain/Loss", Value: "-$1,500.00"}},
		{"shares", result(dto.Form3922, map[string]string{"shares_transferred": "1250.5"}), dto.KeyFigure{Label: "Shares", Value: "1,250.5000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyFigure(tt.res))
		})
	}
}
