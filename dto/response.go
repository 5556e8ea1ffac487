package dto

import "errors"

// ErrUnsupportedFormType is wrapped by ParseFormType.
var ErrUnsupportedFormType = errors.New("unsupported form type")

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// JobStatus is the lifecycle state of an asynchronous scan.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
	JobTimeout   JobStatus = "timeout"
)

// JobResponse reports an asynchronous scan.
type JobResponse struct {
	ID        string      `json:"job_id"`
	Kind      string      `json:"kind"`
	Filename  string      `json:"filename"`
	Status    JobStatus   `json:"status"`
	Result    interface{} `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

// TaxSummaryResponse is returned by the yearly summary endpoint.
type TaxSummaryResponse struct {
	Summary    TaxYearSummary `json:"summary"`
	KeyFigures []KeyFigure    `json:"key_figures"`
}
