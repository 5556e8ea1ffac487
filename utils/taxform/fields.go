package taxform

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Aashish23092/finextract/utils"
	"github.com/shopspring/decimal"
)

// labelWindow is how far past a label a box value may start.
const labelWindow = 100

type fieldKind int

const (
	kindAmount fieldKind = iota
	kindSignedAmount
	kindPrice
	kindQuantity
	kindDate
	kindCode
)

// fieldSpec locates one box: labels are tried in order, official box
// numbers included ("1 interest income" before "interest income").
type fieldSpec struct {
	key    string
	kind   fieldKind
	labels []string
}

var (
	codePattern     = regexp.MustCompile(`(?m)(?:^|\s)([0-9A-Z]{1,2})(?:\s|$)`)
	wholeNumberOnly = regexp.MustCompile(`^[\d\s.,$%()\-/*#]+$`)
	tinPattern      = regexp.MustCompile(`(?i)\btin\b`)
)

func kindPattern(kind fieldKind) *regexp.Regexp {
	switch kind {
	case kindSignedAmount:
		return utils.SignedAmountPattern
	case kindPrice:
		return utils.PriceAmountPattern
	case kindQuantity:
		return utils.QuantityPattern
	case kindDate:
		return utils.AnyDatePattern
	case kindCode:
		return codePattern
	default:
		return utils.AmountPattern
	}
}

// formatValue normalizes a raw match for the result map. Amounts are
// unsigned except where the box itself may be negative.
func formatValue(kind fieldKind, raw string) (string, bool) {
	switch kind {
	case kindDate:
		t := utils.ParseDateFlexible(raw)
		if t == nil {
			return "", false
		}
		return utils.FormatISODate(*t), true
	case kindCode:
		return strings.TrimSpace(raw), raw != ""
	}

	d := utils.ParseAmount(raw)
	if d == nil {
		return "", false
	}
	switch kind {
	case kindSignedAmount:
		return utils.FormatAmount(*d), true
	case kindQuantity:
		return utils.FormatQuantity(d.Abs()), true
	case kindPrice:
		return formatPrice(d.Abs()), true
	default:
		return utils.FormatAmount(d.Abs()), true
	}
}

// formatPrice keeps up to four decimals and at least two.
func formatPrice(d decimal.Decimal) string {
	s := d.StringFixed(4)
	for strings.HasSuffix(s, "0") && len(s)-strings.Index(s, ".") > 3 {
		s = strings.TrimSuffix(s, "0")
	}
	return s
}

// applySpecs fills every spec not already present in fields.
func applySpecs(text string, specs []fieldSpec, window int, last bool, fields map[string]string) {
	for _, spec := range specs {
		if _, ok := fields[spec.key]; ok {
			continue
		}
		find := utils.FindLabelAnchoredValue
		if last {
			find = utils.FindLastLabelAnchoredValue
		}
		raw := find(text, spec.labels, window, kindPattern(spec.kind))
		if raw == nil {
			continue
		}
		if v, ok := formatValue(spec.kind, *raw); ok {
			fields[spec.key] = v
		}
	}
}

// noisePhrases sit next to the name boxes of most forms and are never a name.
var noisePhrases = []string{
	"recipient", "lender", "telephone", "copy a", "copy b", "copy c", "copy 1", "copy 2",
	"omb no", "form 1098", "form 1099", "form w-2", "form 3922", "department of the treasury",
	"internal revenue service", "this information is being furnished", "street address",
	"city or town", "caution", "payer's", "borrower's", "payer/borrower", "void", "corrected",
	"mortgage interest", "outstanding mortgage", "points paid", "mortgage insurance",
	"origination date", "www.irs.gov", "privacy act", "identification number", "zip or foreign",
	"state or province", "for calendar year", "instructions", "keep for your records",
	"important tax", "filer's", "transferor's", "employer's name", "student's", "account number",
	"securing mortgage", "same as",
}

// isNoise reports whether a candidate name line is boilerplate.
func isNoise(line string) bool {
	s := strings.TrimSpace(line)
	if len(s) < 3 {
		return true
	}
	if wholeNumberOnly.MatchString(s) {
		return true
	}
	lower := strings.ToLower(s)
	if utils.ContainsAny(lower, noisePhrases...) || tinPattern.MatchString(s) {
		return true
	}
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters < 2
}

func trimmedLines(text string) []string {
	raw := utils.SplitLines(text)
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// linesAfterLabel returns up to n non-noise lines following the first line
// that contains any label.
func linesAfterLabel(text string, labels []string, n int) []string {
	lines := trimmedLines(text)
	for i, line := range lines {
		if !utils.ContainsAny(strings.ToLower(line), labels...) {
			continue
		}
		var out []string
		for _, next := range lines[i+1:] {
			if len(out) == n {
				break
			}
			if !isNoise(next) {
				out = append(out, utils.CleanCell(next))
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// issuerName is the first substantial, non-numeric line that is not the
// form title.
func issuerName(text string) string {
	for _, line := range trimmedLines(text) {
		if strings.HasPrefix(strings.ToLower(line), "form") {
			continue
		}
		if isNoise(line) || len(line) < 4 || len(line) > 80 {
			continue
		}
		letters, digits := 0, 0
		for _, r := range line {
			switch {
			case unicode.IsLetter(r):
				letters++
			case unicode.IsDigit(r):
				digits++
			}
		}
		if letters >= 3 && digits < letters {
			return utils.CleanCell(line)
		}
	}
	return ""
}

// usStates holds the two-letter codes accepted as a state.
var usStates = map[string]bool{}

func init() {
	for _, s := range strings.Fields(`AL AK AZ AR CA CO CT DE DC FL GA HI ID IL IN IA KS KY LA ME MD
		MA MI MN MS MO MT NE NV NH NJ NM NY NC ND OH OK OR PA RI SC SD TN TX UT VT VA WA WV WI WY
		PR GU VI AS MP`) {
		usStates[s] = true
	}
}

var zipStatePattern = regexp.MustCompile(`\b([A-Z]{2})\s+\d{5}(?:-\d{4})?\b`)

// stateFromAddress returns the first valid state code preceding a ZIP code.
func stateFromAddress(text string) string {
	for _, m := range zipStatePattern.FindAllStringSubmatch(text, -1) {
		if usStates[m[1]] {
			return m[1]
		}
	}
	return ""
}
