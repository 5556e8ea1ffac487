package handler

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/logger"
	"github.com/Aashish23092/finextract/service"
	"github.com/gin-gonic/gin"
)

var mortgageExtensions = map[string]bool{".pdf": true}

// Job kinds accepted by POST /jobs.
const (
	KindTax      = "tax"
	KindMortgage = "mortgage"
	KindReceipt  = "receipt"
)

// DocumentHandler serves the scanned-document endpoints: tax forms,
// mortgage statements, receipts, queued jobs and PDF merging.
type DocumentHandler struct {
	tax         *service.TaxService
	mortgage    *service.MortgageService
	receipts    *service.ReceiptService
	merger      *service.MergeService
	pool        *service.WorkerPool
	uploadDir   string
	maxFileSize int64
}

func NewDocumentHandler(
	tax *service.TaxService,
	mortgage *service.MortgageService,
	receipts *service.ReceiptService,
	merger *service.MergeService,
	pool *service.WorkerPool,
	uploadDir string,
	maxFileSize int64,
) *DocumentHandler {
	return &DocumentHandler{
		tax:         tax,
		mortgage:    mortgage,
		receipts:    receipts,
		merger:      merger,
		pool:        pool,
		uploadDir:   uploadDir,
		maxFileSize: maxFileSize,
	}
}

// upload binds, validates and stores the request's file. On failure the
// error response has already been sent.
func (h *DocumentHandler) upload(c *gin.Context, allowed map[string]bool) (*dto.UploadRequest, string, bool) {
	var req dto.UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "A document file is required", err)
		return nil, "", false
	}
	if err := req.Validate(h.maxFileSize, allowed); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid document file", err)
		return nil, "", false
	}
	path, err := storeUpload(req.File, h.uploadDir)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store upload", err)
		return nil, "", false
	}
	return &req, path, true
}

// ScanTax handles POST /tax/scan. Extraction problems, a timeout included,
// come back inside the result with 200.
func (h *DocumentHandler) ScanTax(c *gin.Context) {
	req, path, ok := h.upload(c, dto.DocumentExtensions)
	if !ok {
		return
	}
	defer os.Remove(path)

	formType, err := dto.ParseFormType(req.FormType)
	if err != nil {
		sendError(c, http.StatusBadRequest, "UNSUPPORTED_FORM_TYPE", "Unsupported form type", err)
		return
	}
	c.JSON(http.StatusOK, h.tax.Scan(c.Request.Context(), path, formType))
}

// FormTypes handles GET /tax/form-types.
func (h *DocumentHandler) FormTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.tax.FormTypes())
}

// TaxSummary handles POST /tax/summary with the results of a year's scans.
func (h *DocumentHandler) TaxSummary(c *gin.Context) {
	var results []dto.TaxFormResult
	if err := c.ShouldBindJSON(&results); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Expected a list of tax form results", err)
		return
	}
	c.JSON(http.StatusOK, h.tax.Summary(results))
}

// ParseMortgage handles POST /mortgage/parse.
func (h *DocumentHandler) ParseMortgage(c *gin.Context) {
	_, path, ok := h.upload(c, mortgageExtensions)
	if !ok {
		return
	}
	defer os.Remove(path)

	c.JSON(http.StatusOK, h.mortgage.Scan(c.Request.Context(), path))
}

// ScanReceipt handles POST /receipts/scan.
func (h *DocumentHandler) ScanReceipt(c *gin.Context) {
	_, path, ok := h.upload(c, dto.DocumentExtensions)
	if !ok {
		return
	}
	defer os.Remove(path)

	c.JSON(http.StatusOK, h.receipts.Scan(c.Request.Context(), path))
}

// SubmitJob handles POST /jobs. The stored upload lives until the queued
// task finishes.
func (h *DocumentHandler) SubmitJob(c *gin.Context) {
	req, path, ok := h.upload(c, dto.DocumentExtensions)
	if !ok {
		return
	}

	var task service.Task
	switch req.Kind {
	case KindTax:
		formType, err := dto.ParseFormType(req.FormType)
		if err != nil {
			os.Remove(path)
			sendError(c, http.StatusBadRequest, "UNSUPPORTED_FORM_TYPE", "Unsupported form type", err)
			return
		}
		task = h.tax.Task(path, formType)
	case KindMortgage:
		task = h.mortgage.Task(path)
	case KindReceipt:
		task = h.receipts.Task(path)
	default:
		os.Remove(path)
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "kind must be tax, mortgage or receipt", nil)
		return
	}

	id, err := h.pool.Submit(req.Kind, req.File.Filename, removeAfter(path, task))
	if err != nil {
		os.Remove(path)
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrQueueFull) {
			status = http.StatusServiceUnavailable
		}
		sendError(c, status, "QUEUE_FULL", "Job queue is full", err)
		return
	}

	log := logger.FromContext(c.Request.Context())
	log.Info().Str("job_id", id).Str("kind", req.Kind).Msg("job queued")
	job, _ := h.pool.Job(id)
	c.JSON(http.StatusAccepted, job)
}

// GetJob handles GET /jobs/:id.
func (h *DocumentHandler) GetJob(c *gin.Context) {
	job, ok := h.pool.Job(c.Param("id"))
	if !ok {
		sendError(c, http.StatusNotFound, "NOT_FOUND", "Job not found or expired", nil)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Merge handles POST /documents/merge and streams back the merged PDF.
func (h *DocumentHandler) Merge(c *gin.Context) {
	var req dto.MergeRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "PDF files are required", err)
		return
	}
	if err := req.Validate(h.maxFileSize); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid merge request", err)
		return
	}

	paths := make([]string, 0, len(req.Files))
	defer func() {
		for _, p := range paths {
			os.Remove(p)
		}
	}()
	for _, fh := range req.Files {
		p, err := storeUpload(fh, h.uploadDir)
		if err != nil {
			sendError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store upload", err)
			return
		}
		paths = append(paths, p)
	}

	data, err := h.merger.Merge(paths)
	if err != nil {
		sendError(c, http.StatusUnprocessableEntity, "MERGE_FAILED", "Failed to merge PDFs", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="merged.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func removeAfter(path string, task service.Task) service.Task {
	return func(ctx context.Context) (interface{}, error) {
		defer os.Remove(path)
		return task(ctx)
	}
}
