package service

import (
	"context"
	"errors"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils/mortgage"
	"github.com/rs/zerolog"
)

// MortgageService reads monthly mortgage statements.
type MortgageService struct {
	text TextSource
	pool *WorkerPool
	log  zerolog.Logger
}

func NewMortgageService(text TextSource, pool *WorkerPool, log zerolog.Logger) *MortgageService {
	return &MortgageService{text: text, pool: pool, log: log}
}

func (s *MortgageService) Scan(ctx context.Context, path string) dto.MortgageStatement {
	v, err := s.pool.Run(ctx, s.Task(path))
	if err != nil {
		s.log.Warn().Err(err).Msg("mortgage scan failed")
		msg := err.Error()
		if errors.Is(err, ErrTimeout) {
			msg = TimeoutMessage(s.pool.Timeout())
		}
		return dto.MortgageStatement{Error: msg}
	}
	return v.(dto.MortgageStatement)
}

func (s *MortgageService) Task(path string) Task {
	return func(ctx context.Context) (interface{}, error) {
		text := s.text.ExtractText(ctx, path)
		st := mortgage.Extract(text)
		if text == "" {
			st.Error = "Could not extract text from statement"
		}
		return st, nil
	}
}
