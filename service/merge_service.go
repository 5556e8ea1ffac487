package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MergeService concatenates uploaded PDFs, e.g. a multi-part statement
// before it is scanned.
type MergeService struct {
	pdf       PDFProcessor
	uploadDir string
	log       zerolog.Logger
}

func NewMergeService(pdf PDFProcessor, uploadDir string, log zerolog.Logger) *MergeService {
	return &MergeService{pdf: pdf, uploadDir: uploadDir, log: log}
}

// Merge writes the concatenation of paths, in order, and returns its bytes.
func (s *MergeService) Merge(paths []string) ([]byte, error) {
	out := filepath.Join(s.uploadDir, "merged-"+uuid.New().String()+".pdf")
	defer os.Remove(out)

	if err := s.pdf.Merge(paths, out); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read merged pdf: %w", err)
	}
	s.log.Info().Int("files", len(paths)).Int("bytes", len(data)).Msg("pdfs merged")
	return data, nil
}
