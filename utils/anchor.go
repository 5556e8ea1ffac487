package utils

import (
	"regexp"
	"strings"
)

// Value patterns shared by the document extractors.
var (
	AmountPattern       = regexp.MustCompile(`\d[\d,]*\.\d{2}\b`)
	SignedAmountPattern = regexp.MustCompile(`\(\$?\s?\d[\d,]*\.\d{2}\)|-?\$?\s?\d[\d,]*\.\d{2}\b`)
	PriceAmountPattern  = regexp.MustCompile(`\d[\d,]*\.\d{2,4}\b`)
	QuantityPattern     = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?\b`)
	SlashDatePattern    = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	LongDatePattern     = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}\b`)
	AnyDatePattern      = regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b|\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}\b`)
)

var (
	labelWordSplit = regexp.MustCompile(`[\s\-]+`)
	wordStart      = regexp.MustCompile(`^\w`)
)

// labelRegex turns a literal label into a case-insensitive pattern whose
// words may be separated by any run of whitespace or hyphens.
func labelRegex(label string) string {
	words := labelWordSplit.Split(strings.TrimSpace(label), -1)
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	prefix := `(?i)`
	if len(quoted) > 0 && wordStart.MatchString(quoted[0]) {
		prefix += `\b`
	}
	return prefix + strings.Join(quoted, `[\s\-]+`)
}

// LabelPattern compiles a label the way the anchored finders match it.
func LabelPattern(label string) *regexp.Regexp {
	re, err := regexp.Compile(labelRegex(label))
	if err != nil {
		return nil
	}
	return re
}

// valueAt returns the first value match starting within window bytes of pos.
func valueAt(text string, pos, window int, value *regexp.Regexp) (string, bool) {
	rest := text[pos:]
	loc := value.FindStringSubmatchIndex(rest)
	if loc == nil || loc[0] > window {
		return "", false
	}
	if len(loc) >= 4 && loc[2] >= 0 {
		return strings.TrimSpace(rest[loc[2]:loc[3]]), true
	}
	return strings.TrimSpace(rest[loc[0]:loc[1]]), true
}

// FindLabelAnchoredValue searches for each label in order and returns the
// first value that starts within window characters after an occurrence of
// it. Every occurrence of a label is tried before moving to the next label.
// If valuePattern has a capture group, the first group is returned.
func FindLabelAnchoredValue(text string, labels []string, window int, valuePattern *regexp.Regexp) *string {
	for _, label := range labels {
		re := LabelPattern(label)
		if re == nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if v, ok := valueAt(text, loc[1], window, valuePattern); ok {
				return &v
			}
		}
	}
	return nil
}

// FindLastLabelAnchoredValue is FindLabelAnchoredValue with last-match-wins:
// for the first label that yields any value, the value after its bottom-most
// occurrence is returned.
func FindLastLabelAnchoredValue(text string, labels []string, window int, valuePattern *regexp.Regexp) *string {
	for _, label := range labels {
		re := LabelPattern(label)
		if re == nil {
			continue
		}
		var found *string
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if v, ok := valueAt(text, loc[1], window, valuePattern); ok {
				found = &v
			}
		}
		if found != nil {
			return found
		}
	}
	return nil
}

const labelSeparators = `[\s:\-$#]*`

// FindLabeledValue requires the value to follow the label with only
// separator characters (whitespace, ':', '-', '$', '#') in between. Labels
// are tried in order, first match wins.
func FindLabeledValue(text string, labels []string, valuePattern *regexp.Regexp) *string {
	for _, label := range labels {
		re, err := regexp.Compile(labelRegex(label) + labelSeparators + `(` + valuePattern.String() + `)`)
		if err != nil {
			continue
		}
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := m[1]
		// prefer the value pattern's own group when it has one
		if sub := valuePattern.FindStringSubmatch(v); len(sub) > 1 && sub[1] != "" {
			v = sub[1]
		}
		v = strings.TrimSpace(v)
		return &v
	}
	return nil
}

// FindAmount is label-anchored search with the amount pattern, parsed.
func FindAmount(text string, labels []string, window int) (string, bool) {
	v := FindLabelAnchoredValue(text, labels, window, AmountPattern)
	if v == nil {
		return "", false
	}
	d := ParseAmount(*v)
	if d == nil {
		return "", false
	}
	return FormatAmount(*d), true
}

// LineAmounts returns every decimal amount on a line, in order.
func LineAmounts(line string) []string {
	return AmountPattern.FindAllString(line, -1)
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
