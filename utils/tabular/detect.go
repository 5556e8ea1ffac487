package tabular

import (
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
)

// signature recognises one export layout from its header line. Every group
// must match on that single line and a group matches when any of its
// substrings is present in the lower-cased line.
type signature struct {
	format   dto.TabularFormat
	groups   [][]string
	minLines int // total non-empty lines the file must have
	// head is how many leading lines may hold the header, default 1. Only
	// layouts that ship a preamble above the header widen it.
	head int
}

func (s signature) matches(lines []string) bool {
	if len(lines) < s.minLines {
		return false
	}
	n := s.head
	if n < 1 {
		n = 1
	}
	if n > len(lines) {
		n = len(lines)
	}
	for _, line := range lines[:n] {
		if lineMatches(strings.ToLower(line), s.groups) {
			return true
		}
	}
	return false
}

func lineMatches(lower string, groups [][]string) bool {
	for _, group := range groups {
		if !utils.ContainsAny(lower, group...) {
			return false
		}
	}
	return true
}

// signatures are checked in order, first match wins. Institution layouts come
// before the looser business and holdings layouts.
var signatures = []signature{
	{format: dto.FormatUSBank, groups: [][]string{{`date","transaction","name","memo","amount`}}},
	{format: dto.FormatChase, groups: [][]string{{"details,posting date,description,amount,type,balance"}}},
	{format: dto.FormatFidelityStatement, groups: [][]string{{"account type,account,beginning mkt value"}}},
	{format: dto.FormatFidelityTransactions, groups: [][]string{{"run date,account,action,symbol,security description,quantity"}}},
	{format: dto.Format401k, groups: [][]string{{"plan name:"}}},
	{format: dto.Format401k, groups: [][]string{{"date range"}}, minLines: 3},
	{format: dto.FormatOFX, groups: [][]string{{"ofxheader", "<ofx>", "<?ofx"}}, head: 3},
	{format: dto.FormatWavePnL, groups: [][]string{{"profit and loss", "profit & loss"}}},
	{format: dto.FormatWaveTransactions, groups: [][]string{{"account name"}, {"debit amount", "credit amount", "category"}}},
	{format: dto.FormatEquityAwards, groups: [][]string{{"record type"}, {"symbol"}}},
	{format: dto.FormatHoldings, groups: holdingsHeaderSubs, head: holdingsPreamble + 1},
}

var genericColumns = []string{"date", "amount", "description"}

func contentLines(content string) []string {
	trimmed := strings.TrimSpace(normalizeContent(content))
	if trimmed == "" {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(trimmed, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// DetectFormat classifies a statement export from its header line. It is a
// pure function of the content.
func DetectFormat(content string) dto.TabularFormat {
	lines := contentLines(content)
	if len(lines) == 0 {
		return dto.FormatUnknown
	}
	for _, sig := range signatures {
		if sig.matches(lines) {
			return sig.format
		}
	}
	if utils.ContainsAny(strings.ToLower(lines[0]), genericColumns...) {
		return dto.FormatGeneric
	}
	return dto.FormatUnknown
}
