package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils/taxform"
	"github.com/rs/zerolog"
)

// TextSource turns a stored upload into text.
type TextSource interface {
	ExtractText(ctx context.Context, path string) string
}

// TaxService scans year-end tax forms.
type TaxService struct {
	text TextSource
	pool *WorkerPool
	log  zerolog.Logger
}

func NewTaxService(text TextSource, pool *WorkerPool, log zerolog.Logger) *TaxService {
	return &TaxService{text: text, pool: pool, log: log}
}

// Scan extracts the fields of one form. Failures, a timeout included, are
// reported in the result's Error.
func (s *TaxService) Scan(ctx context.Context, path string, formType dto.FormType) dto.TaxFormResult {
	if !taxform.Supported(formType) {
		return dto.TaxFormResult{
			FormType: formType,
			Fields:   map[string]string{},
			Error:    fmt.Sprintf("Unsupported form type: %s", formType),
		}
	}

	v, err := s.pool.Run(ctx, s.Task(path, formType))
	if err != nil {
		s.log.Warn().Err(err).Str("form_type", string(formType)).Msg("tax scan failed")
		return dto.TaxFormResult{
			FormType: formType,
			Fields:   map[string]string{},
			Error:    s.describe(err),
		}
	}
	res := v.(dto.TaxFormResult)
	s.log.Info().Str("form_type", string(formType)).Int("fields", len(res.Fields)).Msg("tax form scanned")
	return res
}

// Task is the unit of work Scan runs, also used for queued jobs.
func (s *TaxService) Task(path string, formType dto.FormType) Task {
	return func(ctx context.Context) (interface{}, error) {
		return taxform.Extract(s.text.ExtractText(ctx, path), formType), nil
	}
}

// Summary totals a tax year and lists the headline figure of every form.
func (s *TaxService) Summary(results []dto.TaxFormResult) dto.TaxSummaryResponse {
	figures := make([]dto.KeyFigure, 0, len(results))
	for _, r := range results {
		figures = append(figures, taxform.KeyFigure(r))
	}
	return dto.TaxSummaryResponse{
		Summary:    taxform.Summarize(results),
		KeyFigures: figures,
	}
}

// FormTypes lists the supported forms.
func (s *TaxService) FormTypes() []dto.FormTypeInfo {
	return taxform.FormTypes()
}

func (s *TaxService) describe(err error) string {
	if errors.Is(err, ErrTimeout) {
		return TimeoutMessage(s.pool.Timeout())
	}
	return err.Error()
}
