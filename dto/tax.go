package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type FormType string

const (
	FormW2               FormType = "W2"
	Form1099INT          FormType = "1099_INT"
	Form1098T            FormType = "1098_T"
	Form1098             FormType = "1098"
	Form3922             FormType = "3922"
	Form1099Consolidated FormType = "1099_CONSOLIDATED"
	Form1099R            FormType = "1099_R"
	FormSSA1099          FormType = "SSA_1099"
	Form1099SA           FormType = "1099_SA"
)

// Reserved keys in the flattened tax result.
const (
	KeyPreview = "_raw_preview"
	KeyError   = "_error"
)

// FormTypeInfo pairs a form type with its display name.
type FormTypeInfo struct {
	Type        FormType `json:"type"`
	DisplayName string   `json:"display_name"`
}

// ParseFormType accepts the canonical tag or its display spelling
// ("1099-INT", "w-2").
func ParseFormType(s string) (FormType, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	norm = strings.ReplaceAll(norm, " ", "_")
	if norm == "W_2" {
		norm = "W2"
	}
	switch ft := FormType(norm); ft {
	case FormW2, Form1099INT, Form1098T, Form1098, Form3922,
		Form1099Consolidated, Form1099R, FormSSA1099, Form1099SA:
		return ft, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormType, s)
}

// TaxFormResult is the outcome of one tax form scan. Fields holds only the
// values that were found; amounts are fixed-point strings and dates ISO.
type TaxFormResult struct {
	FormType FormType
	Fields   map[string]string
	Preview  string
	Error    string
}

// Get returns a field value and whether it was extracted.
func (r TaxFormResult) Get(key string) (string, bool) {
	v, ok := r.Fields[key]
	return v, ok && v != ""
}

// Decimal returns a numeric field, or zero when it is absent or malformed.
func (r TaxFormResult) Decimal(key string) decimal.Decimal {
	v, ok := r.Get(key)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// MarshalJSON flattens the result into a single object so a review form can
// bind each key directly.
func (r TaxFormResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(r.Fields)+3)
	for k, v := range r.Fields {
		out[k] = v
	}
	if r.FormType != "" {
		out["form_type"] = string(r.FormType)
	}
	out[KeyPreview] = r.Preview
	if r.Error != "" {
		out[KeyError] = r.Error
	}
	return json.Marshal(out)
}

func (r *TaxFormResult) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Fields = make(map[string]string, len(raw))
	for k, v := range raw {
		switch k {
		case "form_type":
			r.FormType = FormType(v)
		case KeyPreview:
			r.Preview = v
		case KeyError:
			r.Error = v
		default:
			r.Fields[k] = v
		}
	}
	return nil
}

// TaxYearSummary aggregates the key figures of every form filed for a year.
type TaxYearSummary struct {
	TotalWages            decimal.Decimal `json:"total_wages"`
	TotalFederalWithheld  decimal.Decimal `json:"total_federal_withheld"`
	TotalStateWithheld    decimal.Decimal `json:"total_state_withheld"`
	TotalSSWithheld       decimal.Decimal `json:"total_ss_withheld"`
	TotalMedicareWithheld decimal.Decimal `json:"total_medicare_withheld"`
	TotalInterest         decimal.Decimal `json:"total_interest"`
	TotalDividends        decimal.Decimal `json:"total_dividends"`
	TotalQualifiedDiv     decimal.Decimal `json:"total_qualified_div"`
	NetCapGain            decimal.Decimal `json:"net_cap_gain"`
	TuitionPaid           decimal.Decimal `json:"tuition_paid"`
	MortgageInterest      decimal.Decimal `json:"mortgage_interest"`
	TotalRetirementDist   decimal.Decimal `json:"total_retirement_dist"`
	TotalSSBenefits       decimal.Decimal `json:"total_ss_benefits"`
	ESPPCompensation      decimal.Decimal `json:"espp_compensation"`
	HSADistributions      decimal.Decimal `json:"hsa_distributions"`
}

// KeyFigure is the headline number shown for a scanned form.
type KeyFigure struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
