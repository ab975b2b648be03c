package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "dataset load",
			err:        DatasetLoadError(fmt.Errorf("unsupported workbook")),
			wantStatus: http.StatusBadRequest,
			wantCode:   "DATASET_UNREADABLE",
			wantMsg:    "Failed to load Excel: unsupported workbook",
		},
		{
			name:       "export failed",
			err:        ExportFailedError(fmt.Errorf("stream closed")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "EXPORT_FAILED",
			wantMsg:    "stream closed",
		},
		{
			name:       "field validation",
			err:        ErrValidation("query", "query is too long"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
			wantMsg:    "Request validation failed",
		},
		{
			name:       "invalid request",
			err:        InvalidRequestWithError(fmt.Errorf("unexpected EOF")),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
			wantMsg:    "Invalid request format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.Equal(t, tt.wantCode, tt.err.ErrorCode)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestErrValidationDetails(t *testing.T) {
	err := ErrValidation("query", "query is too long")

	details, ok := err.Details.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, details.Errors, 1)
	assert.Equal(t, "query", details.Errors[0].Field)
}

func TestAppError(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewStorageError("failed to open workbook", cause).With("path", "data/sample.xlsx")

	assert.Equal(t, "failed to open workbook: permission denied", err.Error())
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "data/sample.xlsx", err.Fields["path"])

	kind, ok := KindOf(fmt.Errorf("load: %w", err))
	require.True(t, ok)
	assert.Equal(t, KindStorage, kind)

	_, ok = KindOf(cause)
	assert.False(t, ok)

	assert.Equal(t, "sample dataset not found", NewNotFoundError("sample dataset").Error())
	assert.Equal(t, "workbook has no sheets", NewParsingError("workbook has no sheets", nil).Error())
}

func TestProblemDetailsMarshal(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "bad input", "/api/analyze/").
		WithExtension("error", "bad input").
		WithExtension("status", 999)

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
	assert.Equal(t, "bad input", body["error"])
	assert.Equal(t, TypeValidation, body["type"])

	empty := &ProblemDetails{}
	empty.WithExtension("k", "v")
	assert.Equal(t, "v", empty.Extensions["k"])
}
