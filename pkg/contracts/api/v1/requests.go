// Package api contains the HTTP request and response contracts of the
// real estate analysis API. Version v1 is the current API version.
package api

import (
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

// MaxQueryLength bounds the free-text query.
const MaxQueryLength = 2000

// MaxExportRows bounds the rows accepted by the export endpoint.
const MaxExportRows = 100000

// AnalyzeRequest is the JSON form of an analysis request. Multipart requests
// carry the same query in a form field plus an optional "file" part.
type AnalyzeRequest struct {
	Query string `json:"query" validate:"max=2000"`
}

// ExportRequest echoes table rows back for spreadsheet export.
type ExportRequest struct {
	TableData []domain.Row `json:"table_data" validate:"max=100000"`
}

// AnalyzeResponse is the body of a successful analysis.
type AnalyzeResponse = domain.AnalysisResult

// HealthResponse reports liveness or readiness.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Version   string                 `json:"version"`
	Checks    map[string]HealthCheck `json:"checks,omitempty"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
}

// HealthCheck is one dependency check inside a HealthResponse.
type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health statuses
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)
