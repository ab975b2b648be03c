package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/shared/testutil"
)

func TestFileValidator_ValidateFile(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       error
		errorContains string
	}{
		{
			name: "existing file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "data.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.xlsx")
			},
			wantErr: ErrFileNotFound,
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			errorContains: "is a directory",
		},
	}

	logger, _ := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFile(tt.setupFunc(t))
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errorContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ValidateWorkbookFile(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteWorkbookFile(t, dir, "sample.xlsx", testutil.SampleHeader, testutil.SampleRows())

	csvPath := filepath.Join(dir, "sample.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n"), 0644))

	lockPath := filepath.Join(dir, "~$sample.xlsx")
	require.NoError(t, os.WriteFile(lockPath, []byte("lock"), 0644))

	v := NewFileValidator(nil)
	assert.NoError(t, v.ValidateWorkbookFile(good))
	assert.ErrorIs(t, v.ValidateWorkbookFile(csvPath), ErrInvalidUpload)
	assert.ErrorIs(t, v.ValidateWorkbookFile(lockPath), ErrInvalidUpload)
	assert.ErrorIs(t, v.ValidateWorkbookFile(filepath.Join(dir, "nope.xlsx")), ErrFileNotFound)
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	logger, _ := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)
	require.NoError(t, v.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(filepath.Join(dir, ".write_test"))
	assert.True(t, os.IsNotExist(err))
}
