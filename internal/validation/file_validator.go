package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrFileNotFound is returned when a workbook path does not exist.
var ErrFileNotFound = errors.New("file does not exist")

// workbookExtensions lists the extensions the spreadsheet codec can open.
var workbookExtensions = map[string]struct{}{
	".xlsx": {},
	".xlsm": {},
}

// FileValidator checks workbook paths on disk before they are parsed.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Debug("File does not exist",
			slog.String("file", path))
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateWorkbookFile checks that path is an existing, readable workbook
// that is not an Office lock file.
func (v *FileValidator) ValidateWorkbookFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}
	if err := checkWorkbookName(filepath.Base(path)); err != nil {
		v.logger.Warn("Rejected workbook file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// checkWorkbookName applies the extension and lock-file rules to a base name.
func checkWorkbookName(name string) error {
	if strings.HasPrefix(name, "~$") {
		return fmt.Errorf("%w: %s is a temporary Excel file", ErrInvalidUpload, name)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := workbookExtensions[ext]; !ok {
		if ext == "" {
			ext = "none"
		}
		return fmt.Errorf("%w: %s is not an Excel workbook (extension: %s)", ErrInvalidUpload, name, ext)
	}
	return nil
}
