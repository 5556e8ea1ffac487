package taxform

import (
	"regexp"
)

// simpleSpec describes a form whose boxes are all label anchored.
type simpleSpec struct {
	fields []fieldSpec
	// nameKey receives the issuer line, nameLabels narrow it when present.
	nameKey    string
	nameLabels []string
	extra      func(text string, fields map[string]string)
}

func simpleForm(spec simpleSpec) extractor {
	return func(text string, fields map[string]string) {
		applySpecs(text, spec.fields, labelWindow, false, fields)

		name := ""
		if len(spec.nameLabels) > 0 {
			if lines := linesAfterLabel(text, spec.nameLabels, 1); len(lines) > 0 {
				name = lines[0]
			}
		}
		if name == "" {
			name = issuerName(text)
		}
		if name != "" && spec.nameKey != "" {
			fields[spec.nameKey] = name
		}
		if spec.extra != nil {
			spec.extra(text, fields)
		}
	}
}

var form1099INT = simpleSpec{
	nameKey:    "payer_name",
	nameLabels: []string{"payer's name"},
	fields: []fieldSpec{
		{"interest_income", kindAmount, []string{"1 interest income", "interest income"}},
		{"early_withdrawal_penalty", kindAmount, []string{"2 early withdrawal penalty", "early withdrawal penalty"}},
		{"us_bond_interest", kindAmount, []string{
			"3 interest on u.s. savings bonds and treasury obligations",
			"interest on u.s. savings bonds", "u.s. savings bonds and treasury",
		}},
		{"federal_withheld", kindAmount, []string{"4 federal income tax withheld", "federal income tax withheld"}},
	},
}

var form1098T = simpleSpec{
	nameKey:    "filer_name",
	nameLabels: []string{"filer's name"},
	fields: []fieldSpec{
		{"tuition_paid", kindAmount, []string{
			"1 payments received for qualified tuition and related expenses",
			"payments received for qualified tuition", "qualified tuition and related expenses",
			"amounts billed for qualified tuition",
		}},
		{"adjustments", kindAmount, []string{"4 adjustments made for a prior year", "adjustments made for a prior year"}},
		{"scholarships", kindAmount, []string{"5 scholarships or grants", "scholarships or grants"}},
	},
	extra: func(text string, fields map[string]string) {
		if lines := linesAfterLabel(text, []string{"student's name"}, 1); len(lines) > 0 {
			fields["student_name"] = lines[0]
		}
	},
}

var form3922 = simpleSpec{
	nameKey:    "company_name",
	nameLabels: []string{"transferor's name", "corporation's name"},
	fields: []fieldSpec{
		{"grant_date", kindDate, []string{"1 date option granted", "date option granted"}},
		{"exercise_date", kindDate, []string{"2 date option exercised", "date option exercised"}},
		{"fmv_on_grant_date", kindPrice, []string{
			"3 fair market value per share on grant date",
			"fair market value per share on grant date", "fmv on grant date",
		}},
		{"fmv_on_exercise_date", kindPrice, []string{
			"4 fair market value per share on exercise date",
			"fair market value per share on exercise date", "fmv on exercise date",
		}},
		{"exercise_price", kindPrice, []string{"5 exercise price paid per share", "exercise price paid per share", "exercise price per share"}},
		{"shares_transferred", kindQuantity, []string{"6 no. of shares transferred", "number of shares transferred", "shares transferred"}},
	},
}

var accountLast4 = regexp.MustCompile(`(?i)account\s*(?:number|no\.?|#)?\s*[:\-]?\s*[X*\d\-]*?(\d{4})\b`)

var form1099Consolidated = simpleSpec{
	nameKey: "payer_name",
	fields: []fieldSpec{
		{"ordinary_dividends", kindAmount, []string{"1a total ordinary dividends", "total ordinary dividends", "ordinary dividends"}},
		{"qualified_dividends", kindAmount, []string{"1b qualified dividends", "qualified dividends"}},
		{"total_cap_gain_dist", kindAmount, []string{
			"2a total capital gain distributions", "total capital gain distributions", "capital gain distributions",
		}},
		{"interest_income", kindAmount, []string{"1 interest income", "interest income"}},
		{"gross_proceeds", kindAmount, []string{"total proceeds", "gross proceeds"}},
		{"cost_basis", kindAmount, []string{"total cost basis", "cost or other basis", "cost basis"}},
		{"net_gain_loss", kindSignedAmount, []string{
			"total net gain or loss", "net gain or (loss)", "net gain/loss", "realized gain/loss", "net gain or loss",
		}},
		{"federal_withheld", kindAmount, []string{"4 federal income tax withheld", "federal income tax withheld"}},
	},
	extra: func(text string, fields map[string]string) {
		if m := accountLast4.FindStringSubmatch(text); m != nil {
			fields["account_last4"] = m[1]
		}
	},
}

var stateCodePattern = regexp.MustCompile(`\b([A-Z]{2})\b`)

var form1099R = simpleSpec{
	nameKey:    "payer_name",
	nameLabels: []string{"payer's name"},
	fields: []fieldSpec{
		{"gross_distribution", kindAmount, []string{"1 gross distribution", "gross distribution"}},
		{"taxable_amount", kindAmount, []string{"2a taxable amount", "taxable amount"}},
		{"federal_withheld", kindAmount, []string{"4 federal income tax withheld", "federal income tax withheld"}},
		{"distribution_code", kindCode, []string{"7 distribution code(s)", "distribution code"}},
		{"state_withheld", kindAmount, []string{"14 state tax withheld", "state tax withheld"}},
	},
	extra: func(text string, fields map[string]string) {
		raw := findStateCode(text, []string{"15 state/payer's state no.", "payer's state no", "state/payer's state"})
		if raw == "" {
			raw = stateFromAddress(text)
		}
		if raw != "" {
			fields["state"] = raw
		}
	},
}

// findStateCode returns the first valid state code shortly after a label.
func findStateCode(text string, labels []string) string {
	for _, label := range labels {
		re := compileStateLabel(label)
		for _, loc := range re.FindAllStringIndex(text, -1) {
			rest := text[loc[1]:]
			if len(rest) > 40 {
				rest = rest[:40]
			}
			for _, m := range stateCodePattern.FindAllStringSubmatch(rest, -1) {
				if usStates[m[1]] {
					return m[1]
				}
			}
		}
	}
	return ""
}

func compileStateLabel(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label))
}

var formSSA1099 = simpleSpec{
	fields: []fieldSpec{
		{"gross_benefits", kindAmount, []string{"benefits paid in", "benefits paid"}},
		{"repaid_benefits", kindAmount, []string{"benefits repaid to ssa in", "benefits repaid to ssa", "benefits repaid"}},
		{"net_benefits", kindAmount, []string{"net benefits for", "net benefits"}},
		{"medicare_deducted", kindAmount, []string{
			"medicare part b premiums deducted from your benefits", "medicare part b premiums", "medicare premiums",
		}},
		{"voluntary_federal_withheld", kindAmount, []string{"voluntary federal income tax withheld"}},
	},
}

var form1099SA = simpleSpec{
	nameKey:    "payer_name",
	nameLabels: []string{"trustee's/payer's name", "payer's name", "trustee's name"},
	fields: []fieldSpec{
		{"total_distributions", kindAmount, []string{"1 gross distribution", "gross distribution"}},
		{"earnings_on_excess", kindAmount, []string{"2 earnings on excess cont", "earnings on excess contributions", "earnings on excess"}},
		{"distribution_code", kindCode, []string{"3 distribution code", "distribution code"}},
		{"fair_market_value", kindAmount, []string{"4 fmv on date of death", "fmv on date of death"}},
	},
}
