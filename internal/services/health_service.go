package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/infrastructure"
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts"
	api "github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/api/v1"
)

// HealthService provides health check functionality
type HealthService struct {
	version    string
	samplePath string
	llmEnabled bool
	startTime  time.Time
	logger     *slog.Logger
}

// NewHealthService creates a health service. samplePath is the bundled
// dataset used when a request carries no upload.
func NewHealthService(version, samplePath string, llmEnabled bool, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("sample_path", samplePath),
		slog.Bool("llm_enabled", llmEnabled))

	return &HealthService{
		version:    version,
		samplePath: samplePath,
		llmEnabled: llmEnabled,
		startTime:  time.Now(),
		logger:     logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) api.HealthResponse {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return api.HealthResponse{
		Status:    api.StatusHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   hs.version,
	}
}

// ReadinessCheck reports whether the sample dataset is available and whether
// summary rewriting is enabled. A missing sample only degrades readiness:
// uploads still work.
func (hs *HealthService) ReadinessCheck(ctx context.Context) api.HealthResponse {
	status := api.HealthResponse{
		Status:    api.StatusHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   hs.version,
		Checks: map[string]api.HealthCheck{
			"dataset": hs.checkDataset(),
			"llm":     hs.checkLLM(),
		},
	}

	for _, check := range status.Checks {
		if check.Status != api.StatusHealthy {
			status.Status = api.StatusDegraded
			break
		}
	}

	if status.Status != api.StatusHealthy {
		hs.logger.WarnContext(ctx, "ReadinessCheck: degraded",
			slog.String("dataset", status.Checks["dataset"].Message))
	}
	return status
}

// LivenessCheck returns liveness status with runtime statistics
func (hs *HealthService) LivenessCheck(ctx context.Context) api.HealthResponse {
	return api.HealthResponse{
		Status:    api.StatusHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   hs.version,
		Runtime:   infrastructure.ReadRuntime(hs.startTime).Map(),
	}
}

// Version returns build information
func (hs *HealthService) Version() contracts.VersionInfo {
	info := contracts.GetVersionInfo()
	if hs.version != "" {
		info.Version = hs.version
	}
	return info
}

func (hs *HealthService) checkDataset() api.HealthCheck {
	info, err := os.Stat(hs.samplePath)
	switch {
	case err != nil:
		return api.HealthCheck{
			Status:  api.StatusDegraded,
			Message: fmt.Sprintf("Sample dataset unavailable: %s", hs.samplePath),
		}
	case info.IsDir():
		return api.HealthCheck{
			Status:  api.StatusDegraded,
			Message: fmt.Sprintf("Sample dataset path is a directory: %s", hs.samplePath),
		}
	}
	return api.HealthCheck{Status: api.StatusHealthy, Message: "Sample dataset available"}
}

func (hs *HealthService) checkLLM() api.HealthCheck {
	if !hs.llmEnabled {
		return api.HealthCheck{Status: api.StatusHealthy, Message: "Summary rewriting disabled"}
	}
	return api.HealthCheck{Status: api.StatusHealthy, Message: "Summary rewriting enabled"}
}
