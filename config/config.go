package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	LogLevel   string

	// OCR
	TesseractDataPath string
	OCRLanguage       string
	OCRTimeout        time.Duration

	// Upload limits
	MaxFileSize int64
	UploadDir   string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration

	// PDF
	MinDigitalTextLength int
	PDFFallbackPdftotext bool
	PdftotextPath        string

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadConfig reads a .env file when present, then the environment.
func LoadConfig() *Config {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	return &Config{
		ServerPort: envOr("SERVER_PORT", "8080"),
		LogLevel:   envOr("LOG_LEVEL", "info"),

		TesseractDataPath: envOr("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		OCRLanguage:       envOr("OCR_LANGUAGE", "eng"),
		OCRTimeout:        envDuration("OCR_TIMEOUT", 60*time.Second),

		MaxFileSize: envInt64("MAX_FILE_SIZE", 10*1024*1024), // 10 MB
		UploadDir:   envOr("UPLOAD_DIR", os.TempDir()),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		JobTTL:       envDuration("JOB_TTL", 1*time.Hour),

		MinDigitalTextLength: envInt("MIN_DIGITAL_TEXT_LENGTH", 20),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
		PdftotextPath:        envOr("PDFTOTEXT_PATH", "pdftotext"),

		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 10),
	}
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.ServerPort == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.MaxFileSize))
	}
	if c.OCRTimeout <= 0 {
		errs = append(errs, fmt.Errorf("OCR_TIMEOUT must be positive, got %s", c.OCRTimeout))
	}
	if c.WorkerCount <= 0 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount))
	}
	if c.MaxQueueSize <= 0 {
		errs = append(errs, fmt.Errorf("MAX_QUEUE_SIZE must be positive, got %d", c.MaxQueueSize))
	}
	if c.JobTTL <= 0 {
		errs = append(errs, fmt.Errorf("JOB_TTL must be positive, got %s", c.JobTTL))
	}
	if c.MinDigitalTextLength < 0 {
		errs = append(errs, fmt.Errorf("MIN_DIGITAL_TEXT_LENGTH must not be negative, got %d", c.MinDigitalTextLength))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	return errors.Join(errs...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
