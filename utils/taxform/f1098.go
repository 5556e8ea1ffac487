package taxform

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/finextract/utils"
)

var form1098Fields = []fieldSpec{
	{"mortgage_interest", kindAmount, []string{
		"1 mortgage interest received from payer(s)/borrower(s)", "mortgage interest received from payer",
		"mortgage interest received", "mortgage interest",
	}},
	{"outstanding_principal", kindAmount, []string{"2 outstanding mortgage principal", "outstanding mortgage principal", "outstanding principal"}},
	{"origination_date", kindDate, []string{"3 mortgage origination date", "mortgage origination date"}},
	{"mortgage_insurance", kindAmount, []string{"5 mortgage insurance premiums", "mortgage insurance premiums"}},
	{"points", kindAmount, []string{"6 points paid on purchase of principal residence", "points paid on purchase", "points paid"}},
}

var (
	lenderLabels   = []string{"recipient's/lender's name", "lender's name", "recipient's name", "lender name"}
	borrowerLabels = []string{"payer's/borrower's name", "borrower's name", "payer's name", "borrower name"}
	propertyLabels = []string{
		"address or description of property securing mortgage",
		"address of property securing mortgage",
		"property address",
	}
	propertyPatterns = labelPatterns(propertyLabels)
	checkedMark      = regexp.MustCompile(`\[\s*[xX]\s*\]|☒|✓|✔|(?:^|\s)X(?:\s|$)`)
)

// sameAsBorrower reports whether box 7 ("address of property is the same as
// the borrower's") is checked on the line that carries it or the next one.
func sameAsBorrower(text string) bool {
	lines := trimmedLines(text)
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "same as") || !strings.Contains(lower, "borrower") {
			continue
		}
		if checkedMark.MatchString(line) {
			return true
		}
		if i+1 < len(lines) && checkedMark.MatchString(lines[i+1]) && !strings.Contains(strings.ToLower(lines[i+1]), "address") {
			return true
		}
	}
	return false
}

// propertyAddress takes the text after the address label on its own line,
// or the next non-noise line when the label stands alone.
func propertyAddress(text string) string {
	for _, line := range trimmedLines(text) {
		for _, re := range propertyPatterns {
			loc := re.FindStringIndex(line)
			if loc == nil {
				continue
			}
			rest := strings.Trim(line[loc[1]:], " :-\t")
			if rest != "" && !isNoise(rest) {
				return utils.CleanCell(rest)
			}
		}
	}
	if lines := linesAfterLabel(text, propertyLabels, 1); len(lines) > 0 {
		return lines[0]
	}
	return ""
}

func labelPatterns(labels []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(labels))
	for _, l := range labels {
		if re := utils.LabelPattern(l); re != nil {
			res = append(res, re)
		}
	}
	return res
}

// borrowerAddress joins the street and city lines that follow the
// borrower's name.
func borrowerAddress(text string) string {
	lines := linesAfterLabel(text, borrowerLabels, 3)
	if len(lines) < 2 {
		return ""
	}
	return strings.Join(lines[1:], ", ")
}

func extract1098(text string, fields map[string]string) {
	applySpecs(text, form1098Fields, labelWindow, false, fields)

	if name := linesAfterLabel(text, lenderLabels, 1); len(name) > 0 {
		fields["lender_name"] = name[0]
	} else if name := issuerName(text); name != "" {
		fields["lender_name"] = name
	}

	addr := ""
	if sameAsBorrower(text) {
		addr = borrowerAddress(text)
	}
	if addr == "" {
		addr = propertyAddress(text)
	}
	if addr != "" {
		fields["property_address"] = addr
	}
}
