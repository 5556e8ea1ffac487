package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeText string

func (f fakeText) ExtractText(context.Context, string) string { return string(f) }

type testServer struct {
	router *gin.Engine
	pool   *service.WorkerPool
}

func newTestServer(t *testing.T, text string, rps float64, burst int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()

	pool := service.NewWorkerPool(2, 4, time.Second, time.Minute, log)
	pool.Start(context.Background())
	t.Cleanup(pool.Stop)

	src := fakeText(text)
	documents := NewDocumentHandler(
		service.NewTaxService(src, pool, log),
		service.NewMortgageService(src, pool, log),
		service.NewReceiptService(src, pool, log),
		service.NewMergeService(service.NewPDFProcessor(), t.TempDir(), log),
		pool,
		t.TempDir(),
		1<<20,
	)
	router := NewRouter(
		RouterConfig{RateLimitRPS: rps, RateLimitBurst: burst, MaxFileSize: 1 << 20},
		log,
		NewStatementHandler(service.NewStatementService(log), 1<<20),
		documents,
	)
	return &testServer{router: router, pool: pool}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, url, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

const interestText = "PAYER'S name\nFirst Community Bank\n1 Interest income $ 250.00\n"

func TestHealth(t *testing.T) {
	s := newTestServer(t, "", 100, 100)

	w := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestParseStatement(t *testing.T) {
	s := newTestServer(t, "", 100, 100)
	csv := "Details,Posting Date,Description,Amount,Type,Balance\n" +
		"DEBIT,01/15/2024,COFFEE SHOP,-4.50,DEBIT_CARD,995.50\n"

	w := s.do(uploadRequest(t, "/api/v1/statements/parse", "activity.csv", csv, nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var doc dto.ExtractedDocument
	decode(t, w, &doc)
	assert.Equal(t, dto.FormatChase, doc.Format)
	assert.Len(t, doc.Transactions, 1)
}

func TestParseStatement_Unknown(t *testing.T) {
	s := newTestServer(t, "", 100, 100)

	w := s.do(uploadRequest(t, "/api/v1/statements/parse", "notes.csv", "hello\nworld\n", nil))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var doc dto.ExtractedDocument
	decode(t, w, &doc)
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, "Unknown CSV format: notes.csv", doc.Errors[0])
}

func TestParseStatement_BadExtension(t *testing.T) {
	s := newTestServer(t, "", 100, 100)

	w := s.do(uploadRequest(t, "/api/v1/statements/parse", "virus.exe", "MZ", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "INVALID_REQUEST", resp.Error)
}

func TestScanTax(t *testing.T) {
	s := newTestServer(t, interestText, 100, 100)

	w := s.do(uploadRequest(t, "/api/v1/tax/scan", "1099.pdf", "%PDF", map[string]string{"form_type": "1099-INT"}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res map[string]string
	decode(t, w, &res)
	assert.Equal(t, "1099_INT", res["form_type"])
	assert.Equal(t, "250.00", res["interest_income"])
	assert.Contains(t, res, dto.KeyPreview)
}

func TestScanTax_UnsupportedFormType(t *testing.T) {
	s := newTestServer(t, interestText, 100, 100)

	w := s.do(uploadRequest(t, "/api/v1/tax/scan", "1099.pdf", "%PDF", map[string]string{"form_type": "1040"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFormTypes(t *testing.T) {
	s := newTestServer(t, "", 100, 100)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/tax/form-types", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var types []dto.FormTypeInfo
	decode(t, w, &types)
	require.Len(t, types, 9)
	assert.Equal(t, "W-2", types[0].DisplayName)
}

func TestTaxSummary(t *testing.T) {
	s := newTestServer(t, "", 100, 100)
	body := `[{"form_type":"W2","wages":"1000.00","federal_withheld":"100.00"},` +
		`{"form_type":"1099_INT","interest_income":"25.50"}]`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tax/summary", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.TaxSummaryResponse
	decode(t, w, &resp)
	assert.Equal(t, "1000", resp.Summary.TotalWages.String())
	assert.Equal(t, "25.5", resp.Summary.TotalInterest.String())
	assert.Equal(t, []dto.KeyFigure{
		{Label: "Wages", Value: "$1,000.00"},
		{Label: "Interest", Value: "$25.50"},
	}, resp.KeyFigures)
}

func TestParseMortgage(t *testing.T) {
	s := newTestServer(t, "Loan Number: 77-100\nTotal Amount Due $2,045.10\n", 100, 100)

	w := s.do(uploadRequest(t, "/api/v1/mortgage/parse", "statement.pdf", "%PDF", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var st dto.MortgageStatement
	decode(t, w, &st)
	require.NotNil(t, st.LoanNumber)
	assert.Equal(t, "77-100", *st.LoanNumber)
	require.NotNil(t, st.PaymentAmount)
	assert.Equal(t, "2045.1", st.PaymentAmount.String())
}

func TestParseMortgage_RejectsImages(t *testing.T) {
	s := newTestServer(t, "", 100, 100)

	w := s.do(uploadRequest(t, "/api/v1/mortgage/parse", "statement.png", "png", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanReceipt(t *testing.T) {
	s := newTestServer(t, "Bright Smile Dental\n03/14/2024\nAmount Due: $180.00\n", 100, 100)

	w := s.do(uploadRequest(t, "/api/v1/receipts/scan", "receipt.pdf", "%PDF", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var r dto.Receipt
	decode(t, w, &r)
	assert.Equal(t, "Bright Smile Dental", r.Provider)
	assert.Equal(t, "Dental", r.Category)
	require.NotNil(t, r.Amount)
	assert.Equal(t, "180", r.Amount.String())
}

func TestJobs(t *testing.T) {
	s := newTestServer(t, interestText, 100, 100)

	w := s.do(uploadRequest(t, "/api/v1/jobs", "1099.pdf", "%PDF", map[string]string{"kind": "tax", "form_type": "1099_INT"}))
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	var job dto.JobResponse
	decode(t, w, &job)
	require.NotEmpty(t, job.ID)
	assert.Equal(t, "tax", job.Kind)

	require.Eventually(t, func() bool {
		w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+job.ID, nil))
		var got dto.JobResponse
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			return false
		}
		return got.Status == dto.JobCompleted
	}, time.Second, 10*time.Millisecond)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+job.ID, nil))
	var raw struct {
		Result map[string]string `json:"result"`
	}
	decode(t, w, &raw)
	assert.Equal(t, "250.00", raw.Result["interest_income"])
}

func TestJobs_BadKind(t *testing.T) {
	s := newTestServer(t, "", 100, 100)

	w := s.do(uploadRequest(t, "/api/v1/jobs", "x.pdf", "%PDF", map[string]string{"kind": "payslip"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetJob_NotFound(t *testing.T) {
	s := newTestServer(t, "", 100, 100)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/jobs/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMerge_NeedsTwoPDFs(t *testing.T) {
	s := newTestServer(t, "", 100, 100)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("files[]", "only.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/merge", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := s.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least two PDF files")
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, "", 0.001, 1)

	first := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/tax/form-types", nil))
	second := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/tax/form-types", nil))
	health := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, http.StatusOK, health.Code)
}
