package middleware

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/sahilpilke/RealEstateAnalysis-Project/internal/errors"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/infrastructure"
)

// Problem is the RFC 7807 body written by middleware that rejects a request
// before any handler runs. It has the same shape as apierrors.ProblemDetails
// responses, including the "error" and "trace_id" members.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
	Trace  string `json:"trace_id,omitempty"`
}

// Render implements render.Renderer.
func (p Problem) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	return json.NewEncoder(w).Encode(p)
}

var problemTypes = map[int]string{
	http.StatusBadRequest:            "/errors/bad-request",
	http.StatusNotFound:              apierrors.TypeNotFound,
	http.StatusRequestEntityTooLarge: apierrors.TypePayloadTooLarge,
	http.StatusUnsupportedMediaType:  "/errors/unsupported-media-type",
	http.StatusTooManyRequests:       apierrors.TypeRateLimit,
	http.StatusInternalServerError:   apierrors.TypeInternal,
	http.StatusGatewayTimeout:        apierrors.TypeTimeout,
}

// ProblemFromStatus builds a Problem for status. Unmapped statuses get the
// type "/errors/unknown".
func ProblemFromStatus(status int, detail string, traceID string) Problem {
	problemType, ok := problemTypes[status]
	if !ok {
		problemType = "/errors/unknown"
	}
	title := http.StatusText(status)
	if status == http.StatusGatewayTimeout {
		title = "Request Timeout"
	}

	return Problem{
		Type:   problemType,
		Title:  title,
		Status: status,
		Detail: detail,
		Error:  detail,
		Trace:  traceID,
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	_ = ProblemFromStatus(status, detail, infrastructure.GetTraceID(r.Context())).Render(w, r)
}
