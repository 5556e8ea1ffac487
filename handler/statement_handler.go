package handler

import (
	"net/http"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/service"
	"github.com/gin-gonic/gin"
)

type StatementHandler struct {
	statements  *service.StatementService
	maxFileSize int64
}

func NewStatementHandler(statements *service.StatementService, maxFileSize int64) *StatementHandler {
	return &StatementHandler{statements: statements, maxFileSize: maxFileSize}
}

// Parse handles POST /statements/parse. A document from which nothing could
// be read is returned with 422 so the caller still sees its errors.
func (h *StatementHandler) Parse(c *gin.Context) {
	var req dto.UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "A statement file is required", err)
		return
	}
	if err := req.Validate(h.maxFileSize, dto.StatementExtensions); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid statement file", err)
		return
	}

	data, err := readUpload(req.File)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PARSE_FAILED", "Failed to read statement", err)
		return
	}

	doc := h.statements.Parse(req.File.Filename, data)
	if doc.Failed() {
		c.JSON(http.StatusUnprocessableEntity, doc)
		return
	}
	c.JSON(http.StatusOK, doc)
}
