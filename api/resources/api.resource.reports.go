// FilePath: api/resources/api.resource.reports.go
package resources

import (
	"net/http"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/fleetservice"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

// ReportHandlers encapsulates the reporting HTTP handlers
type ReportHandlers struct {
	service *fleetservice.FleetService
}

// @Summary Product logs report
// @Description Hourly statistics report for one product over a day or date range
// @Tags reports
// @Produce json
// @Param product_id query string true "Product ID or device ID"
// @Param date query string false "Single day (YYYY-MM-DD)"
// @Param start_date query string false "Range start (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "Range end (YYYY-MM-DD or RFC3339)"
// @Param use_last_value query bool false "Report last value per hour instead of the mean (level probes)"
// @Success 200 {object} models.ProductLogsData
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /reports/product-logs [get]
// @Security BearerAuth
func (h *ReportHandlers) ProductLogs(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var q models.ProductLogsQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}

	data, err := h.service.ProductLogsReport(r.Context(), q)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, data)
}

// dailyReportResponse flattens the report payload so the day array marshals
// as a top-level "data" key with "summary" as its sibling. The dashboards
// parse exactly this shape; the generic envelope would bury summary one
// level deep.
type dailyReportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	models.DailyReportData
}

// @Summary Daily production report
// @Description Per-day production summary for every product of a punto de venta
// @Tags reports
// @Produce json
// @Param puntoVentaId query int true "Punto de venta ID"
// @Param dateStart query string false "Range start (YYYY-MM-DD)"
// @Param dateEnd query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} dailyReportResponse
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /reports/mensual [get]
// @Security BearerAuth
func (h *ReportHandlers) Daily(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var q models.DailyReportQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}

	data, err := h.service.DailyReport(r.Context(), q)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, dailyReportResponse{
		Success:         true,
		Message:         "Reporte mensual generado exitosamente",
		DailyReportData: *data,
	})
}

// @Summary Time series aggregates
// @Description Database-side bucket aggregates for one reading field
// @Tags reports
// @Produce json
// @Param product_id query string true "Product ID or device ID"
// @Param field query string true "Reading field"
// @Param start query string false "Range start (YYYY-MM-DD or RFC3339)"
// @Param end query string false "Range end (YYYY-MM-DD or RFC3339)"
// @Param interval query string false "Bucket interval (1 minute .. 1 day)"
// @Success 200 {array} models.FieldAggregate
// @Failure 400 {object} errors.APIError
// @Router /reports/timeseries [get]
// @Security BearerAuth
func (h *ReportHandlers) TimeSeries(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var q models.TimeSeriesQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}

	aggregates, err := h.service.TimeSeries(r.Context(), q)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, aggregates)
}
