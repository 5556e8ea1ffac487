package service

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// OCREngine recognizes text in images.
type OCREngine interface {
	ExtractText(filePath string) (string, error)
	ExtractImageText(img image.Image) (string, error)
}

// TextFallback is a second digital-text reader, tried when the embedded
// text layer is too thin.
type TextFallback interface {
	Available() bool
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}

// TextExtractor turns an uploaded document into plain text: the PDF text
// layer first, then pdftotext, then OCR of the page images. Images go
// straight to OCR.
type TextExtractor struct {
	pdf        PDFProcessor
	ocr        OCREngine
	fallback   TextFallback
	minDigital int
	log        zerolog.Logger
}

// NewTextExtractor wires the readers. fallback may be nil.
func NewTextExtractor(pdf PDFProcessor, ocr OCREngine, fallback TextFallback, minDigital int, log zerolog.Logger) *TextExtractor {
	return &TextExtractor{
		pdf:        pdf,
		ocr:        ocr,
		fallback:   fallback,
		minDigital: minDigital,
		log:        log,
	}
}

// ExtractText never fails: unreadable input yields "" and a log line.
func (e *TextExtractor) ExtractText(ctx context.Context, path string) string {
	log := e.log.With().Str("file", filepath.Base(path)).Logger()

	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		text, err := e.ocr.ExtractText(path)
		if err != nil {
			log.Warn().Err(err).Msg("image OCR failed")
			return ""
		}
		return text
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read pdf")
		return ""
	}

	digital, err := e.pdf.ExtractText(data)
	if err != nil {
		log.Warn().Err(err).Msg("pdf text extraction failed")
	}
	if e.substantial(digital) {
		return digital
	}

	if e.fallback != nil && e.fallback.Available() && ctx.Err() == nil {
		text, err := e.fallback.ExtractText(ctx, path)
		if err != nil {
			log.Warn().Err(err).Msg("pdftotext fallback failed")
		} else if e.substantial(text) {
			log.Debug().Msg("using pdftotext output")
			return text
		}
	}

	log.Info().Msg("pdf has little embedded text, running OCR on page images")
	scanned := e.ocrPages(ctx, data, log)
	if strings.TrimSpace(scanned) == "" {
		return digital
	}
	return scanned
}

func (e *TextExtractor) ocrPages(ctx context.Context, data []byte, log zerolog.Logger) string {
	images, err := e.pdf.ExtractImages(data)
	if err != nil || len(images) == 0 {
		log.Warn().Err(err).Msg("failed to extract images from pdf")
		return ""
	}

	var combined strings.Builder
	for i, img := range images {
		if ctx.Err() != nil {
			log.Warn().Int("page", i+1).Msg("OCR abandoned")
			break
		}
		pageText, err := e.ocr.ExtractImageText(img)
		if err != nil {
			log.Warn().Err(err).Int("page", i+1).Msg("OCR failed for page")
			continue
		}
		combined.WriteString(pageText)
		combined.WriteString("\n")
	}
	return combined.String()
}

// substantial reports whether text has at least minDigital non-space runes.
func (e *TextExtractor) substantial(text string) bool {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
			if n >= e.minDigital {
				return true
			}
		}
	}
	return n >= e.minDigital && n > 0
}
