// Package http implements the HTTP handlers of the analysis API. Handlers
// are a thin layer: they decode the request, call a service and map service
// errors to API errors rendered by the shared ErrorHandler.
//
// # Endpoints
//
//	POST /api/analyze        multipart (query, file), urlencoded or JSON {"query": ...}
//	POST /api/download-xlsx  JSON {"table_data": [...]} -> filtered_data.xlsx
//	GET  /api/health         liveness summary
//	GET  /api/health/live    liveness with runtime statistics
//	GET  /api/health/ready   sample dataset and summary rewriting status
//	GET  /api/version        build information
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details and also carry the plain
// message under "error":
//
//	{
//	    "type": "/errors/dataset/not-found",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "Dataset not found.",
//	    "error": "Dataset not found.",
//	    "instance": "/api/analyze"
//	}
//
// # Testing
//
// Handlers are tested with httptest against testify mocks of the service
// interfaces declared in service_interfaces.go.
package http
