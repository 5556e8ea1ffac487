package taxform

import (
	"regexp"

	"github.com/Aashish23092/finextract/utils"
)

var (
	// the guard keeps SSN-shaped tails of longer numbers ("0123-45-6789")
	// from counting; \b does not work before a masked X or *
	ssnPattern     = regexp.MustCompile(`(?:^|[^\w\-*])((?:\d{3}|[X*]{3})-(?:\d{2}|[X*]{2})-\d{4})\b`)
	ssnLinePattern = regexp.MustCompile(`^\s*(?:\d{3}|[X*]{3})-(?:\d{2}|[X*]{2})-\d{4}\b`)
	einPattern     = regexp.MustCompile(`\b\d{2}-\d{7}\b`)
	copyMarker     = regexp.MustCompile(`(?i)\bcopy\s+(?:2|c)\b`)
	splitDecimal   = regexp.MustCompile(`(\d)\s+\.(\d{2})\b`)
	stateLine      = regexp.MustCompile(`(?m)^\s*([A-Z]{2})\s+([A-Z0-9][A-Z0-9\-]{3,})\s+\$?(\d[\d,]*\.\d{2})\s+\$?(\d[\d,]*\.\d{2})`)
)

var employerLabels = []string{"employer's name", "employer name"}

var w2LabelFields = []fieldSpec{
	{"wages", kindAmount, []string{"wages, tips, other compensation", "wages, tips, other comp", "wages tips other compensation", "1 wages"}},
	{"federal_withheld", kindAmount, []string{"federal income tax withheld", "2 federal income tax"}},
	{"ss_wages", kindAmount, []string{"social security wages", "3 social security wages"}},
	{"ss_withheld", kindAmount, []string{"social security tax withheld", "4 social security tax"}},
	{"medicare_wages", kindAmount, []string{"medicare wages and tips", "5 medicare wages"}},
	{"medicare_withheld", kindAmount, []string{"medicare tax withheld", "6 medicare tax"}},
	{"state_wages", kindAmount, []string{"state wages, tips, etc.", "state wages, tips", "state wages"}},
	{"state_withheld", kindAmount, []string{"state income tax"}},
}

// firstW2Copy cuts the text before the second copy of the form. Digital
// PDFs repeat the employee SSN once per copy; OCR text is cut at the first
// "Copy 2"/"Copy C" marker that follows a box value.
func firstW2Copy(text string) string {
	if locs := ssnPattern.FindAllStringSubmatchIndex(text, 2); len(locs) == 2 {
		return text[:locs[1][2]]
	}
	for _, loc := range copyMarker.FindAllStringIndex(text, -1) {
		if utils.AmountPattern.MatchString(text[:loc[0]]) {
			return text[:loc[0]]
		}
	}
	return text
}

// w2Positional reads the label-free column order of digital W-2 text: the
// SSN line carries wages and federal withholding, the employer EIN follows,
// then the social security and medicare pairs on the next amount lines.
func w2Positional(text string, fields map[string]string) bool {
	lines := utils.SplitLines(text)
	ssnIdx := -1
	var amounts []string
	for i, line := range lines {
		if ssnLinePattern.MatchString(line) {
			if a := utils.LineAmounts(line); len(a) >= 2 {
				ssnIdx, amounts = i, a
				break
			}
		}
	}
	if ssnIdx < 0 {
		return false
	}
	setAmount(fields, "wages", amounts[0])
	setAmount(fields, "federal_withheld", amounts[1])

	next := ssnIdx + 1
	for i := ssnIdx + 1; i < len(lines); i++ {
		if ein := einPattern.FindString(lines[i]); ein != "" {
			fields["employer_ein"] = ein
			next = i + 1
			break
		}
	}

	pairs := [][2]string{{"ss_wages", "ss_withheld"}, {"medicare_wages", "medicare_withheld"}}
	for i := next; i < len(lines) && len(pairs) > 0; i++ {
		a := utils.LineAmounts(lines[i])
		if len(a) < 2 {
			continue
		}
		setAmount(fields, pairs[0][0], a[0])
		setAmount(fields, pairs[0][1], a[1])
		pairs = pairs[1:]
	}
	return true
}

func setAmount(fields map[string]string, key, raw string) {
	if v, ok := formatValue(kindAmount, raw); ok {
		fields[key] = v
	}
}

// w2StateLine reads "CA 123-4567-8 55000.00 2100.00" style state rows.
func w2StateLine(text string, fields map[string]string) {
	for _, m := range stateLine.FindAllStringSubmatch(text, -1) {
		if !usStates[m[1]] {
			continue
		}
		fields["state"] = m[1]
		setAmount(fields, "state_wages", m[3])
		setAmount(fields, "state_withheld", m[4])
		return
	}
}

func extractW2(text string, fields map[string]string) {
	text = firstW2Copy(text)

	w2Positional(text, fields)
	if _, ok := fields["employer_ein"]; !ok {
		if ein := einPattern.FindString(text); ein != "" {
			fields["employer_ein"] = ein
		}
	}
	w2StateLine(text, fields)

	// OCR keeps the printed labels but splits decimals: "4458 .40"
	joined := splitDecimal.ReplaceAllString(text, "$1.$2")
	applySpecs(joined, w2LabelFields, 120, true, fields)

	if _, ok := fields["state"]; !ok {
		if s := stateFromAddress(text); s != "" {
			fields["state"] = s
		}
	}
	if name := linesAfterLabel(text, employerLabels, 1); len(name) > 0 {
		fields["employer_name"] = name[0]
	}
}
