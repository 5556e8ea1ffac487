package service

import (
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils/receipt"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/rs/zerolog"
)

// ReceiptService scans medical and pharmacy receipts.
type ReceiptService struct {
	text TextSource
	pool *WorkerPool
	log  zerolog.Logger
}

func NewReceiptService(text TextSource, pool *WorkerPool, log zerolog.Logger) *ReceiptService {
	return &ReceiptService{text: text, pool: pool, log: log}
}

func (s *ReceiptService) Scan(ctx context.Context, path string) dto.Receipt {
	v, err := s.pool.Run(ctx, s.Task(path))
	if err != nil {
		s.log.Warn().Err(err).Msg("receipt scan failed")
		msg := err.Error()
		if errors.Is(err, ErrTimeout) {
			msg = TimeoutMessage(s.pool.Timeout())
		}
		return dto.Receipt{Error: msg}
	}
	return v.(dto.Receipt)
}

func (s *ReceiptService) Task(path string) Task {
	return func(ctx context.Context) (interface{}, error) {
		r := receipt.Extract(s.text.ExtractText(ctx, path))
		if strings.ToLower(filepath.Ext(path)) != ".pdf" {
			if code, err := decodeQR(path); err == nil {
				r.Barcode = code
			} else {
				s.log.Debug().Err(err).Msg("no QR code on receipt")
			}
		}
		return r, nil
	}
}

// decodeQR reads the first QR code printed on a receipt image.
func decodeQR(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", err
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", err
	}
	return result.GetText(), nil
}
