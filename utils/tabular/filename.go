package tabular

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
)

// AccountInfo is what an upload's file name says about its account.
type AccountInfo = dto.AccountHint

type institutionRule struct {
	keywords    []string
	institution string
	digits      *regexp.Regexp
}

var (
	fourDigits     = regexp.MustCompile(`(\d{4})`)
	fidelityDigits = regexp.MustCompile(`[xX]?(\d{4,8})`)

	institutionRules = []institutionRule{
		{[]string{"usb", "personal checking"}, "USB Bank", fourDigits},
		{[]string{"chase"}, "Chase", fourDigits},
		{[]string{"fidelity"}, "Fidelity", fidelityDigits},
		{[]string{"401k"}, "401k Plan", nil},
		{[]string{"etrade", "e-trade", "e*trade"}, "E*TRADE", fourDigits},
		{[]string{"wave"}, "Wave", nil},
	}

	accountTypeRules = []struct {
		keywords    []string
		accountType string
	}{
		{[]string{"checking"}, "checking"},
		{[]string{"savings"}, "savings"},
		{[]string{"credit", "card"}, "credit_card"},
		{[]string{"401k", "ira", "hsa", "brokerage", "positions"}, "investment"},
	}
)

// AccountInfoFromFilename guesses institution, last four account digits
// and account type from names like "Fidelity_X12345678_positions.csv".
// Last4 is empty when the name carries no account digits.
func AccountInfoFromFilename(filename string) AccountInfo {
	base := filepath.Base(filename)
	lower := strings.ToLower(base)

	info := AccountInfo{Institution: "Other", AccountType: "checking"}
	digits := fourDigits
	for _, rule := range institutionRules {
		if utils.ContainsAny(lower, rule.keywords...) {
			info.Institution = rule.institution
			digits = rule.digits
			break
		}
	}
	if digits != nil {
		if m := digits.FindStringSubmatch(base); m != nil {
			info.Last4 = m[1][len(m[1])-4:]
		}
	}
	for _, rule := range accountTypeRules {
		if utils.ContainsAny(lower, rule.keywords...) {
			info.AccountType = rule.accountType
			break
		}
	}
	return info
}
