package http

import (
	"context"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/services"
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts"
	api "github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/api/v1"
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

// AnalysisServiceInterface defines the analysis pipeline used by AnalysisHandler
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, in services.AnalyzeInput) (*domain.AnalysisResult, error)
}

// ExportServiceInterface defines the spreadsheet export used by ExportHandler
type ExportServiceInterface interface {
	Export(ctx context.Context, rows []domain.Row) ([]byte, error)
}

// HealthServiceInterface defines the checks used by HealthHandler
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) api.HealthResponse
	ReadinessCheck(ctx context.Context) api.HealthResponse
	LivenessCheck(ctx context.Context) api.HealthResponse
	Version() contracts.VersionInfo
}
