package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "github.com/sahilpilke/RealEstateAnalysis-Project/internal/errors"
	mw "github.com/sahilpilke/RealEstateAnalysis-Project/internal/middleware"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/services"
	api "github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/api/v1"
)

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// AnalysisHandler serves POST /api/analyze
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	validator    *mw.ValidationMiddleware
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalysisHandler creates a new analysis handler with RFC 7807 error handling
func NewAnalysisHandler(service AnalysisServiceInterface, validator *mw.ValidationMiddleware, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Analyze)
	return r
}

// Analyze accepts a multipart form (query, file), a urlencoded form or a JSON
// body and responds with the summary, chart data and table data.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	in, err := h.parseInput(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "analysis requested",
		slog.String("request_id", reqID),
		slog.Int("query_length", len(in.Query)),
		slog.Bool("upload", in.HasUpload()),
	)

	result, err := h.service.Analyze(r.Context(), in)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapAnalysisError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

// parseInput reads the query and optional workbook from the request body.
func (h *AnalysisHandler) parseInput(r *http.Request) (services.AnalyzeInput, error) {
	var in services.AnalyzeInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return in, formError(err)
		}
		defer r.MultipartForm.RemoveAll()

		in.Query = r.FormValue("query")

		file, header, err := r.FormFile("file")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return in, formError(err)
		default:
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return in, formError(err)
			}
			in.Filename = header.Filename
			in.Upload = data
		}

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return in, formError(err)
		}
		in.Query = r.PostFormValue("query")

	default:
		var req api.AnalyzeRequest
		if err := h.validator.DecodeJSON(r, &req); err != nil {
			return in, err
		}
		return services.AnalyzeInput{Query: req.Query}, nil
	}

	if err := h.validator.ValidateStruct(api.AnalyzeRequest{Query: in.Query}); err != nil {
		return in, err
	}
	return in, nil
}

// formError keeps body-size errors intact so they map to 413.
func formError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return apierrors.InvalidRequestWithError(fmt.Errorf("malformed form: %w", err))
}

// mapAnalysisError converts service errors into API errors.
func mapAnalysisError(err error) error {
	switch {
	case errors.Is(err, services.ErrDatasetNotFound):
		return apierrors.ErrDatasetNotFound
	case errors.Is(err, services.ErrWorkbookUnreadable):
		return apierrors.DatasetLoadError(err)
	}
	return err
}
