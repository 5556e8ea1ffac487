// Package receipt reads provider, dates, amount and category from the OCR
// text of a medical or pharmacy receipt.
package receipt

import (
	"regexp"
	"strings"
	"time"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
	"github.com/shopspring/decimal"
)

const rawTextLimit = 500

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
		regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),
		regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]* \d{1,2},? \d{4}\b`),
	}
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$\s*(\d+[,\d]*\.?\d{0,2})`),
		regexp.MustCompile(`(?i)(?:total|amount|due|paid)[\s:]*\$?\s*(\d+[,\d]*\.?\d{2})`),
	}
	maxAmount = decimal.NewFromInt(100000)
)

var providerKeywords = []string{
	"medical", "dental", "vision", "pharmacy", "hospital", "clinic",
	"cvs", "walgreens", "rite aid", "urgent care", "doctor", "dr.",
	"optometry", "orthodontics", "pediatrics",
}

// categories are checked in order; the first keyword hit wins.
var categories = []struct {
	name     string
	keywords []string
}{
	{"dental", []string{"dental", "dentist", "orthodont", "teeth", "braces"}},
	{"vision", []string{"vision", "eye", "optometry", "glasses", "contacts", "ophthalmology"}},
	{"pharmacy", []string{"pharmacy", "cvs", "walgreens", "rite aid", "prescription", "rx"}},
	{"medical", []string{"medical", "hospital", "clinic", "doctor", "dr.", "urgent care", "emergency"}},
}

// Extract builds a receipt from OCR text. Empty text yields an error
// receipt; every other field is best effort.
func Extract(text string) dto.Receipt {
	if strings.TrimSpace(text) == "" {
		return dto.Receipt{Error: "Could not extract text from receipt"}
	}

	r := dto.Receipt{
		RawText:  utils.Truncate(text, rawTextLimit),
		Provider: Provider(text),
		Category: Category(text),
		Amount:   Amount(text),
	}
	dates := Dates(text)
	if len(dates) > 0 {
		r.ServiceDate = &dates[0]
		year := dates[0].Year()
		r.TaxYear = &year
	}
	if len(dates) > 1 {
		r.PaidDate = &dates[1]
	}
	return r
}

// Dates returns every parseable date, grouped by pattern: numeric first,
// then ISO, then month-name dates.
func Dates(text string) []time.Time {
	var out []time.Time
	for _, re := range datePatterns {
		for _, m := range re.FindAllString(text, -1) {
			if t := utils.ParseDateFlexible(m); t != nil {
				out = append(out, *t)
			}
		}
	}
	return out
}

// Amount is the largest plausible dollar amount, usually the total.
func Amount(text string) *decimal.Decimal {
	var best *decimal.Decimal
	for _, re := range amountPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			d, err := decimal.NewFromString(strings.TrimSuffix(strings.ReplaceAll(m[1], ",", ""), "."))
			if err != nil || !d.IsPositive() || !d.LessThan(maxAmount) {
				continue
			}
			if best == nil || d.GreaterThan(*best) {
				best = &d
			}
		}
	}
	return best
}

// Provider looks at the first five lines: a line naming a care keyword
// wins, otherwise the first substantial line not starting with '*'.
func Provider(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if utils.ContainsAny(strings.ToLower(line), providerKeywords...) {
			if len(line) > 3 && len(line) < 100 {
				return utils.CleanCell(line)
			}
			continue
		}
		if len(line) > 5 && len(line) < 100 && !strings.HasPrefix(line, "*") {
			return utils.CleanCell(line)
		}
	}
	return ""
}

// Category maps the receipt onto Dental, Vision, Pharmacy or Medical.
func Category(text string) string {
	lower := strings.ToLower(text)
	for _, c := range categories {
		if utils.ContainsAny(lower, c.keywords...) {
			return utils.TitleCase(c.name)
		}
	}
	return ""
}
