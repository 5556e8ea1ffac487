package dto

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// UploadRequest is a single-document upload
type UploadRequest struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	FormType string                `form:"form_type"`
	Kind     string                `form:"kind"`
}

// MergeRequest carries the PDFs to concatenate
type MergeRequest struct {
	Files []*multipart.FileHeader `form:"files[]" binding:"required"`
}

// Validate checks size and extension against the allowed set
func (r *UploadRequest) Validate(maxSize int64, allowed map[string]bool) error {
	if r.File == nil {
		return errors.New("file is required")
	}
	if maxSize > 0 && r.File.Size > maxSize {
		return fmt.Errorf("file %s exceeds %d bytes", r.File.Filename, maxSize)
	}
	ext := strings.ToLower(filepath.Ext(r.File.Filename))
	if len(allowed) > 0 && !allowed[ext] {
		return fmt.Errorf("unsupported file type %q", ext)
	}
	return nil
}

// Validate performs basic validation on the request
func (r *MergeRequest) Validate(maxSize int64) error {
	if len(r.Files) < 2 {
		return errors.New("at least two PDF files are required")
	}
	for _, f := range r.Files {
		if strings.ToLower(filepath.Ext(f.Filename)) != ".pdf" {
			return fmt.Errorf("%s is not a PDF", f.Filename)
		}
		if maxSize > 0 && f.Size > maxSize {
			return fmt.Errorf("file %s exceeds %d bytes", f.Filename, maxSize)
		}
	}
	return nil
}

// Extension sets accepted by each endpoint.
var (
	StatementExtensions = map[string]bool{".csv": true, ".txt": true, ".ofx": true, ".qfx": true, ".xlsx": true, ".xls": true}
	DocumentExtensions  = map[string]bool{".pdf": true, ".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true}
)
