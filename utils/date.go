package utils

import (
	"regexp"
	"strings"
	"time"
)

// DefaultDateLayouts is the order ParseDate tries when no layouts are given.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2006/1/2",
	"1-2-2006",
}

// Layouts tried by ParseDateFlexible after the defaults.
var flexibleLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Jan. 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"1/2/06",
	"1-2-06",
	"2006-01-02T15:04:05",
	"20060102",
}

var ordinalSuffix = regexp.MustCompile(`(?i)(\d)(st|nd|rd|th)\b`)

// ParseDate tries each layout in order and returns the first success, or nil.
func ParseDate(text string, layouts ...string) *time.Time {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseDateFlexible is the catch-all date parser: numeric forms first, then
// month-name forms. Commas, ordinal suffixes and repeated spaces are tolerated.
func ParseDateFlexible(text string) *time.Time {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), " ")
	if t := ParseDate(s, DefaultDateLayouts...); t != nil {
		return t
	}
	if t := ParseDate(s, flexibleLayouts...); t != nil {
		return t
	}
	// "Sept" is common on statements
	if strings.Contains(strings.ToLower(s), "sept") {
		return ParseDate(strings.Replace(strings.Replace(s, "Sept", "Sep", 1), "SEPT", "SEP", 1), flexibleLayouts...)
	}
	return nil
}

// FormatISODate renders a date as "2006-01-02".
func FormatISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
