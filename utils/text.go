package utils

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanCell strips markup and unprintable characters from text taken out of
// an uploaded file so it can be stored and rendered safely.
func CleanCell(text string) string {
	s := strictPolicy.Sanitize(text)
	// the policy escapes entities, undo the common ones
	s = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`).Replace(s)
	s = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' {
			return ' '
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// TitleCase upper-cases the first letter of every word.
func TitleCase(text string) string {
	// a Caser keeps state, so one per call
	return cases.Title(language.English).String(strings.ToLower(text))
}

// NormalizeKey lower-cases a column header, strips a byte-order mark and
// collapses inner whitespace.
func NormalizeKey(key string) string {
	k := strings.ReplaceAll(key, "\ufeff", "")
	return strings.Join(strings.Fields(strings.ToLower(k)), " ")
}

// ContainsAny reports whether s contains any of the substrings.
func ContainsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// SplitLines splits text on any newline flavour, including form feeds
// emitted between PDF pages.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")
	return strings.Split(text, "\n")
}
