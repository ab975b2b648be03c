package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
)

// DefaultMaxUploadBytes caps uploaded workbooks at 20 MiB.
const DefaultMaxUploadBytes int64 = 20 << 20

var (
	// ErrInvalidUpload is the parent of every upload rejection.
	ErrInvalidUpload = errors.New("invalid upload")
	// ErrEmptyUpload is returned for zero-byte uploads.
	ErrEmptyUpload = fmt.Errorf("%w: file is empty", ErrInvalidUpload)
	// ErrUploadTooLarge is returned when an upload exceeds the size cap.
	ErrUploadTooLarge = fmt.Errorf("%w: file is too large", ErrInvalidUpload)
)

// UploadValidator checks an uploaded workbook before it is parsed.
type UploadValidator struct {
	logger  *slog.Logger
	maxSize int64
}

// NewUploadValidator creates an upload validator. A non-positive maxSize
// falls back to DefaultMaxUploadBytes.
func NewUploadValidator(logger *slog.Logger, maxSize int64) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadBytes
	}
	return &UploadValidator{
		logger:  logger.With(slog.String("component", "upload_validator")),
		maxSize: maxSize,
	}
}

// MaxSize returns the configured size cap in bytes.
func (v *UploadValidator) MaxSize() int64 {
	return v.maxSize
}

// Validate checks the client-supplied filename and the upload size.
// Every returned error wraps ErrInvalidUpload.
func (v *UploadValidator) Validate(filename string, size int64) error {
	name := filepath.Base(filepath.Clean("/" + filename))
	if err := checkWorkbookName(name); err != nil {
		v.logger.Warn("Upload rejected",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return err
	}

	switch {
	case size <= 0:
		v.logger.Warn("Upload rejected",
			slog.String("filename", filename),
			slog.String("error", ErrEmptyUpload.Error()))
		return fmt.Errorf("%w: %s", ErrEmptyUpload, name)
	case size > v.maxSize:
		v.logger.Warn("Upload rejected",
			slog.String("filename", filename),
			slog.Int64("size", size),
			slog.Int64("max_size", v.maxSize))
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrUploadTooLarge, name, size, v.maxSize)
	}

	v.logger.Debug("Upload validated",
		slog.String("filename", name),
		slog.Int64("size", size))
	return nil
}
