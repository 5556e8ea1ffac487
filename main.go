package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aashish23092/finextract/client"
	"github.com/Aashish23092/finextract/config"
	"github.com/Aashish23092/finextract/handler"
	"github.com/Aashish23092/finextract/logger"
	"github.com/Aashish23092/finextract/service"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Tesseract v5 reads its models from TESSDATA_PREFIX
	if cfg.TesseractDataPath != "" {
		os.Setenv("TESSDATA_PREFIX", cfg.TesseractDataPath)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("upload dir unavailable")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Clients
	tesseract := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguage)
	var fallback service.TextFallback
	if cfg.PDFFallbackPdftotext {
		pdftotext := client.NewPdftotextClient(cfg.PdftotextPath)
		if pdftotext.Available() {
			fallback = pdftotext
		} else {
			log.Warn().Str("path", cfg.PdftotextPath).Msg("pdftotext not found, fallback disabled")
		}
	}

	// Services
	pdfProcessor := service.NewPDFProcessor()
	extractor := service.NewTextExtractor(pdfProcessor, tesseract, fallback, cfg.MinDigitalTextLength, log)

	pool := service.NewWorkerPool(cfg.WorkerCount, cfg.MaxQueueSize, cfg.OCRTimeout, cfg.JobTTL, log)
	pool.Start(ctx)

	statements := service.NewStatementService(log)
	tax := service.NewTaxService(extractor, pool, log)
	mortgage := service.NewMortgageService(extractor, pool, log)
	receipts := service.NewReceiptService(extractor, pool, log)
	merger := service.NewMergeService(pdfProcessor, cfg.UploadDir, log)

	// Handlers
	router := handler.NewRouter(
		handler.RouterConfig{
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
			MaxFileSize:    cfg.MaxFileSize,
		},
		log,
		handler.NewStatementHandler(statements, cfg.MaxFileSize),
		handler.NewDocumentHandler(tax, mortgage, receipts, merger, pool, cfg.UploadDir, cfg.MaxFileSize),
	)

	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.OCRTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
		pool.Stop()
	}()

	log.Info().Str("port", cfg.ServerPort).Int("workers", cfg.WorkerCount).Msg("starting finextract")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
	<-stopped
}
