package service

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils/tabular"
	"github.com/rs/zerolog"
)

// StatementService parses exported statements: CSV and text exports, OFX
// files and spreadsheets.
type StatementService struct {
	log zerolog.Logger
}

func NewStatementService(log zerolog.Logger) *StatementService {
	return &StatementService{log: log}
}

// Parse never fails; problems are listed in the document's Errors.
func (s *StatementService) Parse(filename string, data []byte) *dto.ExtractedDocument {
	var doc *dto.ExtractedDocument
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		doc = s.workbook(filename, func() ([]tabular.Sheet, error) {
			return tabular.ReadXLSX(bytes.NewReader(data))
		})
	case ".xls":
		doc = s.workbook(filename, func() ([]tabular.Sheet, error) {
			return tabular.ReadXLS(bytes.NewReader(data))
		})
	default:
		doc = tabular.Parse(string(data), filename)
	}

	s.log.Info().
		Str("file", filename).
		Str("format", string(doc.Format)).
		Int("transactions", len(doc.Transactions)).
		Int("balances", len(doc.Balances)).
		Int("holdings", len(doc.Holdings)).
		Int("errors", len(doc.Errors)).
		Msg("statement parsed")
	return doc
}

func (s *StatementService) workbook(filename string, read func() ([]tabular.Sheet, error)) *dto.ExtractedDocument {
	sheets, err := read()
	if err != nil {
		doc := dto.NewExtractedDocument(dto.FormatUnknown, filename)
		doc.Errors = append(doc.Errors, fmt.Sprintf("Error parsing %s: %v", filename, err))
		return doc
	}
	return tabular.ParseWorkbook(sheets, filename)
}
