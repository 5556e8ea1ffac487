package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	numberRegex   = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)$`)
	currencyChars = strings.NewReplacer(
		"$", "", "€", "", "£", "", "¥", "", ",", "", " ", "", " ", "",
		"USD", "", "usd", "", "−", "-",
	)
)

// missing values seen in exports
var emptyValues = map[string]bool{
	"":    true,
	"-":   true,
	"--":  true,
	"n/a": true,
	"na":  true,
	"nil": true,
}

// IsBlank reports whether an exported cell means "no value".
func IsBlank(text string) bool {
	return emptyValues[strings.ToLower(strings.TrimSpace(text))]
}

// ParseAmount converts a currency string into an exact decimal.
// "(1,234.56)" and "1,234.56-" are negative. Returns nil when the text is
// not a number.
func ParseAmount(text string) *decimal.Decimal {
	s := strings.TrimSpace(text)
	if emptyValues[strings.ToLower(s)] {
		return nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = currencyChars.Replace(s)
	if strings.HasSuffix(s, "-") && !strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSuffix(s, "-")
	}
	// "-$5.00" leaves "-5.00", "$-5.00" too
	if !numberRegex.MatchString(s) {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	if negative {
		d = d.Neg()
	}
	return &d
}

// ParseQuantity parses share counts. Precision is never reduced.
func ParseQuantity(text string) *decimal.Decimal {
	return ParseAmount(text)
}

// MustAmount parses text or returns zero.
func MustAmount(text string) decimal.Decimal {
	if d := ParseAmount(text); d != nil {
		return *d
	}
	return decimal.Zero
}

// FormatAmount renders a fixed two-decimal string ("-1234.50").
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatCurrency renders "$1,234.56" or "-$1,234.56".
func FormatCurrency(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(intPart) + "." + frac
}

// FormatQuantity rounds to six places and drops trailing zeros.
func FormatQuantity(d decimal.Decimal) string {
	return d.Round(6).String()
}

// FormatGrouped renders a number with thousands separators and the given
// number of decimals ("1,234.5000").
func FormatGrouped(d decimal.Decimal, places int32) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(places)
	intPart, frac, hasFrac := strings.Cut(fixed, ".")
	out := sign + groupThousands(intPart)
	if hasFrac {
		out += "." + frac
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
