package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
)

// errSkipRow marks a row that is not data (footer, subtotal, note) and
// should be dropped without an error entry.
var errSkipRow = errors.New("skip row")

var delimiters = []rune{',', '\t', ';', '|'}

// sniffDelimiter picks the candidate that occurs most often outside quotes
// on the header line. Ties go to the earlier candidate.
func sniffDelimiter(line string) rune {
	counts := make(map[rune]int, len(delimiters))
	inQuotes := false
	for _, r := range line {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}
	best := ','
	for _, d := range delimiters {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

// normalizeContent strips a byte-order mark and unifies line endings.
func normalizeContent(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

func firstLine(content string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	return line
}

// readRecords reads every record it can. A malformed record is reported and
// reading continues with the next one.
func readRecords(content string) ([][]string, []string) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = sniffDelimiter(firstLine(content))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	var errs []string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				errs = append(errs, fmt.Sprintf("line %d: %v", perr.StartLine, perr.Err))
				continue
			}
			errs = append(errs, err.Error())
			break
		}
		records = append(records, rec)
	}
	return records, errs
}

// normalizeHeader lower-cases header cells. A blank cell gets a synthetic
// "column_<n>" name so every data cell keeps its position.
func normalizeHeader(cells []string) []string {
	header := make([]string, len(cells))
	seen := make(map[string]int, len(cells))
	for i, c := range cells {
		k := utils.NormalizeKey(c)
		if k == "" {
			k = fmt.Sprintf("column_%d", i+1)
		}
		if n := seen[k]; n > 0 {
			seen[k] = n + 1
			k = fmt.Sprintf("%s_%d", k, n+1)
		} else {
			seen[k] = 1
		}
		header[i] = k
	}
	return header
}

// Row is one data record keyed by normalized header name.
type Row struct {
	Line   int
	header []string
	cells  []string
}

func newRow(header, cells []string, line int) Row {
	return Row{Line: line, header: header, cells: cells}
}

// Cell returns the trimmed value at position i, or "".
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r Row) value(key string) string {
	for i, h := range r.header {
		if h == key {
			return r.Cell(i)
		}
	}
	return ""
}

// Get tries the exact normalized keys in order and returns the first
// non-blank value.
func (r Row) Get(keys ...string) string {
	for _, k := range keys {
		if v := r.value(k); !utils.IsBlank(v) {
			return v
		}
	}
	return ""
}

// GetContaining returns the first non-blank value whose header contains any
// of the substrings, scanning columns left to right.
func (r Row) GetContaining(subs ...string) string {
	for i, h := range r.header {
		if utils.ContainsAny(h, subs...) {
			if v := r.Cell(i); !utils.IsBlank(v) {
				return v
			}
		}
	}
	return ""
}

// GetOr is Get with a positional fallback for exports whose header rows
// drift between versions.
func (r Row) GetOr(pos int, keys ...string) string {
	if v := r.Get(keys...); v != "" {
		return v
	}
	if v := r.Cell(pos); !utils.IsBlank(v) {
		return v
	}
	return ""
}

// Has reports whether the header carries any of the keys.
func (r Row) Has(keys ...string) bool {
	for _, h := range r.header {
		for _, k := range keys {
			if h == k {
				return true
			}
		}
	}
	return false
}

func filledCells(cells []string) int {
	n := 0
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

// eachRow runs fn on every data record after headerIdx. A failing row is
// recorded in doc.Errors and the loop moves on. Records with fewer than two
// filled cells are notes or footers and are skipped.
func eachRow(records [][]string, headerIdx int, doc *dto.ExtractedDocument, fn func(Row) error) {
	if headerIdx < 0 || headerIdx >= len(records) {
		return
	}
	header := normalizeHeader(records[headerIdx])
	for i := headerIdx + 1; i < len(records); i++ {
		if filledCells(records[i]) < 2 {
			continue
		}
		row := newRow(header, records[i], i+1)
		if err := runRow(fn, row); err != nil && !errors.Is(err, errSkipRow) {
			doc.Errors = append(doc.Errors, fmt.Sprintf("row %d: %v", row.Line, err))
		}
	}
}

func runRow(fn func(Row) error, row Row) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn(row)
}
