package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apierrors "github.com/sahilpilke/RealEstateAnalysis-Project/internal/errors"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/exporter"
	mw "github.com/sahilpilke/RealEstateAnalysis-Project/internal/middleware"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/services"
	api "github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/api/v1"
)

// ExportHandler serves POST /api/download-xlsx
type ExportHandler struct {
	service      ExportServiceInterface
	validator    *mw.ValidationMiddleware
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ExportServiceInterface, validator *mw.ValidationMiddleware, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(mw.ContentTypeValidator("application/json"))
	r.Post("/", h.DownloadXLSX)
	return r
}

// DownloadXLSX converts the posted table_data rows into filtered_data.xlsx.
func (h *ExportHandler) DownloadXLSX(w http.ResponseWriter, r *http.Request) {
	var req api.ExportRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if len(req.TableData) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrNoTableData)
		return
	}

	data, err := h.service.Export(r.Context(), req.TableData)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapExportError(err))
		return
	}

	h.logger.InfoContext(r.Context(), "workbook exported",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("rows", len(req.TableData)),
		slog.Int("bytes", len(data)),
	)

	w.Header().Set("Content-Type", exporter.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exporter.DownloadFilename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write workbook response",
			slog.String("error", err.Error()))
	}
}

// mapExportError converts service errors into API errors.
func mapExportError(err error) error {
	switch {
	case errors.Is(err, services.ErrNoTableData):
		return apierrors.ErrNoTableData
	case errors.Is(err, services.ErrExportFailed):
		return apierrors.ExportFailedError(err)
	}
	return err
}
