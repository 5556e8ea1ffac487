package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/Aashish23092/finextract/dto"
)

type parseFunc func(content string, doc *dto.ExtractedDocument)

// parsers is the dispatch table from detected format to its routine.
// FormatUnknown has no entry.
var parsers = map[dto.TabularFormat]parseFunc{
	dto.FormatUSBank:               parseUSBank,
	dto.FormatChase:                parseChase,
	dto.FormatFidelityStatement:    parseFidelityStatement,
	dto.FormatFidelityTransactions: parseFidelityTransactions,
	dto.Format401k:                 parse401k,
	dto.FormatOFX:                  parseOFX,
	dto.FormatWavePnL:              parseWavePnL,
	dto.FormatWaveTransactions:     parseWaveTransactions,
	dto.FormatEquityAwards:         parseEquityAwards,
	dto.FormatHoldings:             parseHoldings,
	dto.FormatGeneric:              parseGeneric,
}

// Parse detects the layout of a statement export and extracts its rows.
// It never fails: problems are reported in the returned document's Errors.
func Parse(content, filename string) (doc *dto.ExtractedDocument) {
	content = normalizeContent(content)
	format := DetectFormat(content)
	doc = dto.NewExtractedDocument(format, filename)
	info := AccountInfoFromFilename(filename)
	doc.Account = &info

	parse, ok := parsers[format]
	if !ok {
		doc.Errors = append(doc.Errors, fmt.Sprintf("Unknown CSV format: %s", filename))
		return doc
	}

	defer func() {
		if r := recover(); r != nil {
			doc.Errors = append(doc.Errors, fmt.Sprintf("Error parsing %s: %v", filename, r))
		}
	}()
	parse(content, doc)
	return doc
}

// Sheet is one worksheet of an uploaded workbook.
type Sheet struct {
	Name string
	Rows [][]string
}

// ParseWorkbook detects and parses every sheet on its own and merges the
// results. Empty sheets are ignored; errors are prefixed with the sheet name.
func ParseWorkbook(sheets []Sheet, filename string) *dto.ExtractedDocument {
	merged := dto.NewExtractedDocument(dto.FormatUnknown, filename)
	// sheet names ("ESPP 2025") say nothing about the account
	info := AccountInfoFromFilename(filename)
	merged.Account = &info
	for _, sheet := range sheets {
		if len(sheet.Rows) == 0 || allBlank(sheet.Rows) {
			continue
		}
		content, err := sheetCSV(sheet.Rows)
		if err != nil {
			merged.Errors = append(merged.Errors, fmt.Sprintf("sheet %s: %v", sheet.Name, err))
			continue
		}
		doc := Parse(content, filename+" ["+sheet.Name+"]")
		if merged.Format == dto.FormatUnknown && doc.Format != dto.FormatUnknown {
			merged.Format = doc.Format
		}
		merged.Merge(doc, "sheet "+sheet.Name)
	}
	if len(sheets) == 0 {
		merged.Errors = append(merged.Errors, fmt.Sprintf("No sheets found in %s", filename))
	}
	return merged
}

func allBlank(rows [][]string) bool {
	for _, r := range rows {
		if filledCells(r) > 0 {
			return false
		}
	}
	return true
}

// sheetCSV renders worksheet rows as CSV text so sheets share the same
// detection and parsing path as uploaded CSV files. Trailing rows are padded
// to the header width.
func sheetCSV(rows [][]string) (string, error) {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, r := range rows {
		if filledCells(r) == 0 {
			continue
		}
		padded := make([]string, width)
		copy(padded, r)
		if err := w.Write(padded); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}
