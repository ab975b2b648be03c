package services

import "errors"

// Analysis and export errors
var (
	// Dataset errors
	ErrDatasetNotFound    = errors.New("dataset not found")
	ErrWorkbookUnreadable = errors.New("workbook unreadable")

	// Export errors
	ErrNoTableData  = errors.New("no table data provided")
	ErrExportFailed = errors.New("export failed")
)

// LoadError reports a dataset that was found but could not be validated or parsed.
// It matches ErrWorkbookUnreadable with errors.Is.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports ErrWorkbookUnreadable as a match.
func (e *LoadError) Is(target error) bool {
	return target == ErrWorkbookUnreadable
}

// ExportError wraps a failure while rendering the download workbook.
// It matches ErrExportFailed with errors.Is.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return e.Err.Error()
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Is reports ErrExportFailed as a match.
func (e *ExportError) Is(target error) bool {
	return target == ErrExportFailed
}
