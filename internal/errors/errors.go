package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// Error codes carried by APIError and echoed as the "error_code" extension.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeDatasetNotFound   = "DATASET_NOT_FOUND"
	CodeDatasetUnreadable = "DATASET_UNREADABLE"
	CodeNoTableData       = "NO_TABLE_DATA"
	CodeExportFailed      = "EXPORT_FAILED"
)

// APIError is an error that already knows its HTTP status. Message is shown
// to the client verbatim.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

func badRequest(code, message string, details interface{}) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, ErrorCode: code, Message: message, Details: details}
}

// Messages for these two are part of the public API.
var (
	ErrDatasetNotFound = badRequest(CodeDatasetNotFound, "Dataset not found.", nil)
	ErrNoTableData     = badRequest(CodeNoTableData, "No table data provided", nil)
)

// ValidationError names one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the details payload for VALIDATION_FAILED.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// InvalidRequestWithError reports a body that could not be decoded.
func InvalidRequestWithError(err error) *APIError {
	return badRequest(CodeInvalidRequest, "Invalid request format", err.Error())
}

// ErrValidation reports a single invalid field.
func ErrValidation(field, message string) *APIError {
	return NewValidationErrors([]ValidationError{{Field: field, Message: message}})
}

// NewValidationErrors reports every invalid field at once.
func NewValidationErrors(errs []ValidationError) *APIError {
	return badRequest(CodeValidationFailed, "Request validation failed", ValidationErrors{Errors: errs})
}

// DatasetLoadError is returned when an uploaded or sample workbook cannot
// be read.
func DatasetLoadError(err error) *APIError {
	return badRequest(CodeDatasetUnreadable, "Failed to load Excel: "+err.Error(), nil)
}

// ExportFailedError wraps a failure while building the download workbook.
func ExportFailedError(err error) *APIError {
	return &APIError{StatusCode: http.StatusInternalServerError, ErrorCode: CodeExportFailed, Message: err.Error()}
}
