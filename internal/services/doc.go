// Package services implements the business logic layer of the analysis
// backend. Handlers stay thin: they decode requests, call a service and map
// its errors to API errors.
//
// # Available Services
//
//	- AnalysisService: loads a workbook (upload or bundled sample) and runs
//	  column resolution, area detection, aggregation, summarization,
//	  optional summary rewriting and sanitization
//	- ExportService: renders table rows as xlsx (HTTP download) or csv (CLI)
//	- HealthService: liveness, readiness and version information
//
// # Error Handling
//
// Services return sentinel errors that handlers transform:
//
//	- ErrDatasetNotFound when no upload was given and the sample is missing
//	- ErrWorkbookUnreadable (via *LoadError) when a workbook fails
//	  validation or parsing
//	- ErrNoTableData when an export carries no rows
//	- ErrExportFailed (via *ExportError) when rendering fails
//
// Heuristic misses such as unresolved columns or undetected areas are never
// errors; they produce sparse results.
//
// # Testing
//
// Collaborators are mocked with testify:
//
//	enhancer := &MockEnhancer{}
//	enhancer.On("Enhance", mock.Anything, []string{"Wakad"}, mock.Anything).Return("rewritten")
//	svc := NewAnalysisService(opts, enhancer, nil, logger)
package services
