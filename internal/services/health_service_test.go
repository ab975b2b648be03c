package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/shared/testutil"
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts"
	api "github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/api/v1"
)

func TestHealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService("1.2.3", "", false, logger)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, api.StatusHealthy, status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.NotEmpty(t, status.Timestamp)
}

func TestReadinessCheck(t *testing.T) {
	dir := t.TempDir()
	sample := testutil.WriteWorkbookFile(t, dir, "sample.xlsx", testutil.SampleHeader, testutil.SampleRows())

	tests := []struct {
		name          string
		samplePath    string
		llmEnabled    bool
		wantStatus    string
		wantDataset   string
		wantLLMString string
	}{
		{
			name:          "sample present, llm disabled",
			samplePath:    sample,
			wantStatus:    api.StatusHealthy,
			wantDataset:   api.StatusHealthy,
			wantLLMString: "Summary rewriting disabled",
		},
		{
			name:          "sample present, llm enabled",
			samplePath:    sample,
			llmEnabled:    true,
			wantStatus:    api.StatusHealthy,
			wantDataset:   api.StatusHealthy,
			wantLLMString: "Summary rewriting enabled",
		},
		{
			name:          "sample missing",
			samplePath:    filepath.Join(dir, "missing.xlsx"),
			wantStatus:    api.StatusDegraded,
			wantDataset:   api.StatusDegraded,
			wantLLMString: "Summary rewriting disabled",
		},
		{
			name:          "sample path is a directory",
			samplePath:    dir,
			wantStatus:    api.StatusDegraded,
			wantDataset:   api.StatusDegraded,
			wantLLMString: "Summary rewriting disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			hs := NewHealthService("1.0.0", tt.samplePath, tt.llmEnabled, logger)

			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.wantStatus, status.Status)
			require.Contains(t, status.Checks, "dataset")
			require.Contains(t, status.Checks, "llm")
			assert.Equal(t, tt.wantDataset, status.Checks["dataset"].Status)
			assert.Equal(t, tt.wantLLMString, status.Checks["llm"].Message)
		})
	}
}

func TestLivenessCheck(t *testing.T) {
	hs := NewHealthService("1.0.0", "", false, nil)

	status := hs.LivenessCheck(context.Background())
	assert.Equal(t, api.StatusHealthy, status.Status)
	assert.Contains(t, status.Runtime, "goroutines")
	assert.Contains(t, status.Runtime, "uptime_seconds")
}

func TestVersion(t *testing.T) {
	hs := NewHealthService("2.0.0", "", false, nil)
	info := hs.Version()
	assert.Equal(t, "2.0.0", info.Version)
	assert.Equal(t, contracts.APIVersion, info.APIVersion)

	hs = NewHealthService("", "", false, nil)
	assert.Equal(t, contracts.Version, hs.Version().Version)
}
